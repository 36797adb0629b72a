package session

import (
	"github.com/google/uuid"

	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
)

// Slot is one offered shape as seen by a client.
type Slot struct {
	Index int           `json:"index"`
	Used  bool          `json:"used"`
	ID    int           `json:"id,omitempty"`
	Name  string        `json:"name,omitempty"`
	Color puzzle.Color  `json:"color,omitempty"`
	Cells []puzzle.Cell `json:"cells,omitempty"`
}

// State is a JSON-friendly view of the game.
type State struct {
	ID                  uuid.UUID                                 `json:"id"`
	Grid                [puzzle.Rows][puzzle.Columns]puzzle.Color `json:"grid"`
	Pending             []puzzle.Cell                             `json:"pending,omitempty"`
	Offer               []Slot                                    `json:"offer"`
	Score               int                                       `json:"score"`
	Moves               int                                       `json:"moves"`
	Lines               int                                       `json:"lines"`
	Over                bool                                      `json:"over"`
	Revives             int                                       `json:"revives"`
	CanRevive           bool                                      `json:"canRevive"`
	Capacity            float64                                   `json:"capacity"`
	Difficulty          analysis.Difficulty                       `json:"difficulty"`
	Strategy            string                                    `json:"strategy"`
	Guaranteed          bool                                      `json:"guaranteed"`
	PostReviveRemaining int                                       `json:"postReviveRemaining"`
}

// State captures the game for clients.
func (g *Game) State() State {
	st := State{
		ID:                  g.id,
		Pending:             g.board.PendingClear(),
		Offer:               make([]Slot, len(g.offer)),
		Score:               g.score,
		Moves:               g.moves,
		Lines:               g.lines,
		Over:                g.over,
		Revives:             g.revives,
		CanRevive:           g.CanRevive(),
		Capacity:            g.board.Capacity(),
		Difficulty:          g.cfg.Supply.Thresholds.Level(g.board.Capacity()),
		Strategy:            g.batch.Strategy,
		Guaranteed:          g.batch.Guaranteed,
		PostReviveRemaining: g.supplier.PostReviveRemaining(),
	}

	for row := range puzzle.Rows {
		for col := range puzzle.Columns {
			st.Grid[row][col] = g.board.At(puzzle.Cell{Row: row, Col: col})
		}
	}

	for i, s := range g.offer {
		slot := Slot{Index: i, Used: s == nil}
		if s != nil {
			slot.ID = int(s.ID)
			slot.Name = s.Name
			slot.Color = s.Color
			slot.Cells = s.Cells()
		}
		st.Offer[i] = slot
	}
	return st
}
