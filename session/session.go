// Package session hosts a single game: it owns the board and the offer,
// asks the supplier for batches, scores moves and decides when the game ends.
package session

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
	"github.com/plus3/tenten/puzzle/supply"
)

// Option configures a Game.
type Option func(*options)

type options struct {
	log      *zap.Logger
	renderer puzzle.Renderer
	supply   []supply.Option
	id       uuid.UUID
}

// WithLogger sets the logger for the game and its supplier.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRenderer sets the board's renderer.
func WithRenderer(r puzzle.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithSeed makes the supplier deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.supply = append(o.supply, supply.WithSeed(seed))
	}
}

// WithID fixes the game ID instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(o *options) {
		o.id = id
	}
}

// PlaceResult describes one accepted move.
type PlaceResult struct {
	Shape    *puzzle.Shape  `json:"-"`
	Origin   puzzle.Cell    `json:"origin"`
	Cleared  puzzle.Cleared `json:"cleared"`
	Points   int            `json:"points"`
	Score    int            `json:"score"`
	Refilled bool           `json:"refilled"`
	GameOver bool           `json:"gameOver"`
}

// Snapshot is everything a revive restores.
type Snapshot struct {
	Board puzzle.BoardSnapshot
	Offer []*puzzle.Shape
	Score int
	Moves int
	Lines int
}

// Game is one running game. It is not safe for concurrent use.
type Game struct {
	id       uuid.UUID
	cfg      config.Tuning
	log      *zap.Logger
	board    *puzzle.Board
	supplier *supply.Supplier

	offer      []*puzzle.Shape
	batch      supply.Batch
	checkpoint *Snapshot

	score   int
	moves   int
	lines   int
	revives int
	over    bool
	moving  bool
}

// New starts a game with the first batch already offered.
func New(cfg config.Tuning, opts ...Option) *Game {
	o := options{log: zap.NewNop(), renderer: puzzle.NopRenderer{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == uuid.Nil {
		o.id = uuid.New()
	}

	g := &Game{
		id:  o.id,
		cfg: cfg,
		log: o.log.With(zap.Stringer("session", o.id)),
	}

	boardOpts := append(cfg.BoardOptions(),
		puzzle.WithRenderer(o.renderer),
		puzzle.WithClearHook(g.onClearSettled),
	)
	g.board = puzzle.NewBoard(boardOpts...)

	supplyOpts := append(cfg.SupplyOptions(), o.supply...)
	supplyOpts = append(supplyOpts, supply.WithLogger(g.log))
	g.supplier = supply.New(supplyOpts...)

	g.refill()
	g.log.Info("game started", zap.Stringer("mode", cfg.Mode))
	return g
}

// ID returns the game's identifier.
func (g *Game) ID() uuid.UUID {
	return g.id
}

// Board returns a read-only view of the board.
func (g *Game) Board() puzzle.BoardView {
	return g.board
}

// Offer returns the current slots. Placed slots are nil.
func (g *Game) Offer() []*puzzle.Shape {
	return slices.Clone(g.offer)
}

// Batch returns the metadata of the batch currently offered.
func (g *Game) Batch() supply.Batch {
	return g.batch
}

func (g *Game) Score() int { return g.score }

func (g *Game) Moves() int { return g.moves }

func (g *Game) Lines() int { return g.lines }

func (g *Game) Revives() int { return g.revives }

// Over reports whether no offered shape fits anywhere. It is decided once
// pending clears have finished.
func (g *Game) Over() bool { return g.over }

// CanRevive reports whether a revive would be accepted now.
func (g *Game) CanRevive() bool {
	return g.checkpoint != nil && g.revives < g.cfg.Revive.MaxRevives
}

// SupplyStats returns the supplier's execution statistics.
func (g *Game) SupplyStats() supply.Stats {
	return g.supplier.Stats()
}

// Analyze runs the board analyzer with the game's thresholds.
func (g *Game) Analyze() analysis.Report {
	return analysis.Analyze(g.board, g.supplier.Catalog(), g.cfg.Supply.Thresholds)
}

// Points scores a move placing cells and clearing lines.
func (g *Game) Points(cells, lines int) int {
	return cells*g.cfg.Scoring.CellPoints + g.cfg.Scoring.LinePoints*lines*lines
}

func (g *Game) shapeAt(slot int) (*puzzle.Shape, error) {
	if slot < 0 || slot >= len(g.offer) {
		return nil, fmt.Errorf("slot %d of %d: %w", slot, len(g.offer), ErrInvalidSlot)
	}
	s := g.offer[slot]
	if s == nil {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrSlotEmpty)
	}
	return s, nil
}

// Preview shows the ghost of the shape in slot at origin and returns the
// lines the move would clear. It fails like Place but changes nothing.
func (g *Game) Preview(slot int, origin puzzle.Cell) (analysis.Preview, error) {
	s, err := g.shapeAt(slot)
	if err != nil {
		return analysis.Preview{}, err
	}
	if !g.board.ShowPreview(s, origin) {
		return analysis.Preview{}, fmt.Errorf("%s at %s: %w", s, origin, ErrCannotPlace)
	}
	return analysis.CompletionPreview(g.board, s, origin), nil
}

// Place puts the shape in slot at origin. When the last slot is used a new
// batch is offered. The game ends when no offered shape fits anywhere.
func (g *Game) Place(slot int, origin puzzle.Cell) (PlaceResult, error) {
	if g.over {
		return PlaceResult{}, ErrGameOver
	}
	s, err := g.shapeAt(slot)
	if err != nil {
		return PlaceResult{}, err
	}
	if !g.board.CanPlace(s, origin) {
		return PlaceResult{}, fmt.Errorf("%s at %s: %w", s, origin, ErrCannotPlace)
	}

	g.moving = true
	cleared := g.board.Place(s, origin)
	g.moving = false
	points := g.Points(s.CellCount(), cleared.Lines())
	g.score += points
	g.lines += cleared.Lines()
	g.moves++
	g.offer[slot] = nil

	res := PlaceResult{Shape: s, Origin: origin, Cleared: cleared, Points: points}
	if !slices.ContainsFunc(g.offer, func(s *puzzle.Shape) bool { return s != nil }) {
		g.refill()
		res.Refilled = true
	}
	g.checkOver()

	res.Score = g.score
	res.GameOver = g.over
	return res, nil
}

// refill offers a fresh batch and checkpoints the state for revives.
func (g *Game) refill() {
	g.batch = g.supplier.Next(g.board)
	g.offer = slices.Clone(g.batch.Shapes)
	g.checkpoint = g.snapshotPtr()
}

// checkOver ends the game when no offered shape fits. Cells waiting on a
// clear animation still block placements, so the decision waits until the
// clear finishes.
func (g *Game) checkOver() {
	if g.over || g.board.ClearingInProgress() || !puzzle.IsTerminal(g.offer, g.board) {
		return
	}
	g.over = true
	g.log.Info("game over",
		zap.Int("score", g.score),
		zap.Int("moves", g.moves),
		zap.Int("lines", g.lines),
		zap.Bool("guaranteed", g.batch.Guaranteed),
	)
}

// onClearSettled runs when a clear animation finishes. It scores lines found
// by a re-check and decides game over on the settled board. During Place the
// offer is not updated yet, so Place checks on its own.
func (g *Game) onClearSettled(c puzzle.Cleared) {
	if n := c.Lines(); n > 0 {
		g.score += g.Points(0, n)
		g.lines += n
	}
	if !g.moving {
		g.checkOver()
	}
}

// Snapshot captures the board, the offer and the score.
func (g *Game) Snapshot() Snapshot {
	return *g.snapshotPtr()
}

func (g *Game) snapshotPtr() *Snapshot {
	return &Snapshot{
		Board: g.board.Snapshot(),
		Offer: slices.Clone(g.offer),
		Score: g.score,
		Moves: g.moves,
		Lines: g.lines,
	}
}

// Revive restores the checkpoint taken when the current batch was offered.
// The checkpoint is spent; the next one is taken at the next refill.
func (g *Game) Revive() error {
	cp := g.checkpoint
	if cp == nil {
		return ErrNoSnapshot
	}
	if err := g.ReviveFrom(*cp); err != nil {
		return err
	}
	if g.checkpoint == cp {
		g.checkpoint = nil
	}
	return nil
}

// ReviveFrom restores snap and arms the post-revive window. A restored offer
// that is empty or unplayable is replaced by a post-revive batch.
func (g *Game) ReviveFrom(snap Snapshot) error {
	if g.revives >= g.cfg.Revive.MaxRevives {
		return fmt.Errorf("%d of %d used: %w", g.revives, g.cfg.Revive.MaxRevives, ErrReviveLimit)
	}

	g.board.Restore(snap.Board)
	g.offer = slices.Clone(snap.Offer)
	g.score = snap.Score
	g.moves = snap.Moves
	g.lines = snap.Lines
	g.revives++
	g.over = false
	g.supplier.ArmPostRevive(g.cfg.Revive.Batches)

	replaced := false
	if puzzle.IsTerminal(g.offer, g.board) {
		g.refill()
		replaced = true
	}
	g.checkOver()

	g.log.Info("revive",
		zap.Int("revives", g.revives),
		zap.Int("score", g.score),
		zap.Bool("offer_replaced", replaced),
		zap.Int("post_revive_batches", g.supplier.PostReviveRemaining()),
	)
	return nil
}

// Restart empties the board and starts over with a new batch.
func (g *Game) Restart() {
	g.board.Reset()
	g.score, g.moves, g.lines, g.revives = 0, 0, 0, 0
	g.over = false
	g.supplier.ArmPostRevive(0)
	g.refill()
	g.log.Info("game restarted")
}
