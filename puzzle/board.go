package puzzle

import (
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
)

const (
	Rows    = 8
	Columns = 8
	// CellTotal is the number of cells on the board.
	CellTotal = Rows * Columns
)

// ClearPolicy decides what happens to a completion scan requested while a
// previous clear is still animating.
type ClearPolicy int

const (
	// DropWhileClearing discards the scan. A line that would complete during
	// the animation is picked up by the next placement's scan instead.
	DropWhileClearing ClearPolicy = iota
	// RecheckAfterClear re-runs the scan as soon as the in-flight clear
	// finalizes and reports the result through the clear hook.
	RecheckAfterClear
)

func (p ClearPolicy) String() string {
	if p == RecheckAfterClear {
		return "recheck"
	}
	return "drop"
}

// MarshalText encodes the policy as "drop" or "recheck".
func (p ClearPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes "drop" or "recheck".
func (p *ClearPolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "drop":
		*p = DropWhileClearing
	case "recheck":
		*p = RecheckAfterClear
	default:
		return fmt.Errorf("unknown clear policy %q", text)
	}
	return nil
}

// Cleared describes the lines completed by one scan.
type Cleared struct {
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
	RowIndexes    []int  `json:"rowIndexes,omitempty"`
	ColumnIndexes []int  `json:"columnIndexes,omitempty"`
	Cells         []Cell `json:"cells,omitempty"`
}

// Lines returns the total number of rows and columns completed.
func (c Cleared) Lines() int {
	return c.Rows + c.Columns
}

// BoardSnapshot is a copy of the committed occupancy grid.
type BoardSnapshot struct {
	Grid [Rows][Columns]Color `json:"grid"`
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithRenderer sets the renderer collaborator. The default is NopRenderer.
func WithRenderer(r Renderer) BoardOption {
	return func(b *Board) {
		b.renderer = r
	}
}

// WithClearPolicy selects how mid-clear completion scans are treated.
func WithClearPolicy(p ClearPolicy) BoardOption {
	return func(b *Board) {
		b.policy = p
	}
}

// WithClearHook registers a callback run each time an in-flight clear
// finalizes. It receives the lines found by the re-check under
// RecheckAfterClear and an empty Cleared otherwise. Scans triggered by Place
// report through its return value.
func WithClearHook(fn func(Cleared)) BoardOption {
	return func(b *Board) {
		b.onSettle = fn
	}
}

// Board is the fixed 8x8 occupancy grid. Cells pending a clear stay occupied
// in the grid until the renderer reports the exit animation finished.
type Board struct {
	grid       [Rows][Columns]Color
	pending    *intmap.Map[int, struct{}]
	clearing   bool
	generation uint64
	policy     ClearPolicy
	renderer   Renderer
	onSettle   func(Cleared)
}

// NewBoard creates an empty board.
func NewBoard(opts ...BoardOption) *Board {
	b := &Board{
		pending:  intmap.New[int, struct{}](CellTotal),
		renderer: NopRenderer{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetRenderer swaps the renderer collaborator.
func (b *Board) SetRenderer(r Renderer) {
	if r == nil {
		r = NopRenderer{}
	}
	b.renderer = r
}

// At returns the occupant of a cell.
func (b *Board) At(c Cell) Color {
	if !c.InBounds() {
		return NoColor
	}
	return b.grid[c.Row][c.Col]
}

// Occupied reports whether a cell holds an occupant, including cells pending a clear.
func (b *Board) Occupied(c Cell) bool {
	return b.At(c) != NoColor
}

// CanPlace reports whether every cell of s translated by origin is on the board and empty.
// Pending-clear cells are still occupied and therefore block.
func (b *Board) CanPlace(s *Shape, origin Cell) bool {
	if s == nil {
		return false
	}
	for o := range s.Offsets() {
		cell := origin.Add(o)
		if !cell.InBounds() || b.grid[cell.Row][cell.Col] != NoColor {
			return false
		}
	}
	return true
}

// CanPlaceAnywhere scans every origin and stops at the first valid placement.
func (b *Board) CanPlaceAnywhere(s *Shape) bool {
	for row := range Rows {
		for col := range Columns {
			if b.CanPlace(s, Cell{Row: row, Col: col}) {
				return true
			}
		}
	}
	return false
}

// Place puts s at origin in its catalog color and scans for completed lines.
// Placing where CanPlace is false is a caller error and leaves the board untouched.
func (b *Board) Place(s *Shape, origin Cell) Cleared {
	if s == nil {
		return Cleared{}
	}
	return b.PlaceColored(s, origin, s.Color)
}

// PlaceColored is Place with an explicit occupant color.
func (b *Board) PlaceColored(s *Shape, origin Cell, color Color) Cleared {
	if !b.CanPlace(s, origin) {
		return Cleared{}
	}
	if color == NoColor {
		color = s.Color
	}

	for o := range s.Offsets() {
		cell := origin.Add(o)
		b.grid[cell.Row][cell.Col] = color
		b.renderer.DrawOccupant(cell, color)
	}

	return b.ClearCompletedLines()
}

// ClearCompletedLines finds every complete row and column, marks their cells
// pending and hands them to the renderer. The counts are returned before the
// cells are physically removed. While a clear is in flight it returns zero
// counts without touching the pending set.
func (b *Board) ClearCompletedLines() Cleared {
	if b.clearing {
		return Cleared{}
	}

	var result Cleared
	for row := range Rows {
		if b.rowComplete(row) {
			result.RowIndexes = append(result.RowIndexes, row)
		}
	}
	for col := range Columns {
		if b.columnComplete(col) {
			result.ColumnIndexes = append(result.ColumnIndexes, col)
		}
	}
	result.Rows = len(result.RowIndexes)
	result.Columns = len(result.ColumnIndexes)

	if result.Lines() == 0 {
		return result
	}

	for _, row := range result.RowIndexes {
		for col := range Columns {
			b.markPending(Cell{Row: row, Col: col}, &result)
		}
	}
	for _, col := range result.ColumnIndexes {
		for row := range Rows {
			b.markPending(Cell{Row: row, Col: col}, &result)
		}
	}

	b.clearing = true
	generation := b.generation
	cells := slices.Clone(result.Cells)
	b.renderer.RunClearAnimation(slices.Clone(cells), func() {
		if generation != b.generation {
			return
		}
		b.OnClearAnimationComplete(cells)
	})

	return result
}

func (b *Board) markPending(cell Cell, result *Cleared) {
	idx := cell.index()
	if b.pending.Has(idx) {
		return
	}
	b.pending.Put(idx, struct{}{})
	result.Cells = append(result.Cells, cell)
}

func (b *Board) rowComplete(row int) bool {
	for col := range Columns {
		if !b.solid(Cell{Row: row, Col: col}) {
			return false
		}
	}
	return true
}

func (b *Board) columnComplete(col int) bool {
	for row := range Rows {
		if !b.solid(Cell{Row: row, Col: col}) {
			return false
		}
	}
	return true
}

// solid is the completion test: occupied and not already on its way out.
func (b *Board) solid(c Cell) bool {
	return b.grid[c.Row][c.Col] != NoColor && !b.pending.Has(c.index())
}

// OnClearAnimationComplete empties the given pending cells, drops them from
// the pending set and ends the clearing state. Cells not pending are ignored.
func (b *Board) OnClearAnimationComplete(cells []Cell) {
	wasClearing := b.clearing
	for _, cell := range cells {
		if !cell.InBounds() || !b.pending.Has(cell.index()) {
			continue
		}
		b.grid[cell.Row][cell.Col] = NoColor
		b.pending.Del(cell.index())
		b.renderer.DrawOccupant(cell, NoColor)
	}
	b.clearing = b.pending.Len() > 0
	if !wasClearing || b.clearing {
		return
	}

	var res Cleared
	if b.policy == RecheckAfterClear {
		res = b.ClearCompletedLines()
	}
	if b.onSettle != nil {
		b.onSettle(res)
	}
}

// ClearingInProgress reports whether a clear animation is in flight.
func (b *Board) ClearingInProgress() bool {
	return b.clearing
}

// PendingClear returns the cells waiting on the renderer, in row-major order.
func (b *Board) PendingClear() []Cell {
	cells := make([]Cell, 0, b.pending.Len())
	b.pending.ForEach(func(idx int, _ struct{}) bool {
		cells = append(cells, cellAt(idx))
		return true
	})
	slices.SortFunc(cells, func(x, y Cell) int {
		return x.index() - y.index()
	})
	return cells
}

// IsPendingClear reports whether c is waiting on the renderer.
func (b *Board) IsPendingClear(c Cell) bool {
	return c.InBounds() && b.pending.Has(c.index())
}

// OccupiedCount returns the number of occupied cells.
func (b *Board) OccupiedCount() int {
	n := 0
	for row := range Rows {
		for col := range Columns {
			if b.grid[row][col] != NoColor {
				n++
			}
		}
	}
	return n
}

// Capacity returns the occupied fraction of the board in [0,1].
func (b *Board) Capacity() float64 {
	return float64(b.OccupiedCount()) / float64(CellTotal)
}

// ShowPreview sends the cells s would cover at origin to the renderer's ghost
// layer. It does nothing and returns false for an invalid placement.
func (b *Board) ShowPreview(s *Shape, origin Cell) bool {
	if !b.CanPlace(s, origin) {
		return false
	}
	b.renderer.ShowGhostPreview(s.At(origin))
	return true
}

// Reset empties the board and abandons any in-flight clear.
func (b *Board) Reset() {
	b.Restore(BoardSnapshot{})
}

// Snapshot copies the committed occupancy. Cells pending a clear are left out.
func (b *Board) Snapshot() BoardSnapshot {
	var snap BoardSnapshot
	snap.Grid = b.grid
	b.pending.ForEach(func(idx int, _ struct{}) bool {
		cell := cellAt(idx)
		snap.Grid[cell.Row][cell.Col] = NoColor
		return true
	})
	return snap
}

// Restore replaces the occupancy with snap. Any in-flight clear is abandoned
// and its late completion callback is ignored.
func (b *Board) Restore(snap BoardSnapshot) {
	b.generation++
	b.pending.Clear()
	b.clearing = false
	b.grid = snap.Grid
	for row := range Rows {
		for col := range Columns {
			b.renderer.DrawOccupant(Cell{Row: row, Col: col}, b.grid[row][col])
		}
	}
}
