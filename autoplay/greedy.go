// Package autoplay picks moves for a game without a human, for the simulator
// and for tests that need many realistic board positions.
package autoplay

import (
	"github.com/plus3/tenten/puzzle"
	"github.com/plus3/tenten/puzzle/analysis"
)

// Move is a placement chosen from the offer.
type Move struct {
	Slot   int
	Shape  *puzzle.Shape
	Origin puzzle.Cell
	Lines  int
	Score  float64
}

// Chooser picks the next move. It reports false when no offered shape fits.
type Chooser interface {
	Choose(view puzzle.BoardView, offer []*puzzle.Shape) (Move, bool)
}

// Greedy scores every valid placement of every offered shape and takes the
// best one. Ties keep the first candidate in slot, row, column order.
type Greedy struct {
	// LineWeight is added per line the move completes.
	LineWeight float64
	// SizeWeight is added per cell the shape covers, so big shapes go down
	// while there is still room for them.
	SizeWeight float64
}

// NewGreedy returns a Greedy with the default weights.
func NewGreedy() Greedy {
	return Greedy{LineWeight: 10, SizeWeight: 0.05}
}

func (g Greedy) Choose(view puzzle.BoardView, offer []*puzzle.Shape) (Move, bool) {
	best := Move{Slot: -1}
	for slot, s := range offer {
		if s == nil {
			continue
		}
		for row := range puzzle.Rows {
			for col := range puzzle.Columns {
				origin := puzzle.Cell{Row: row, Col: col}
				if !view.CanPlace(s, origin) {
					continue
				}
				m := g.score(view, slot, s, origin)
				if best.Slot < 0 || m.Score > best.Score {
					best = m
				}
			}
		}
	}
	return best, best.Slot >= 0
}

func (g Greedy) score(view puzzle.BoardView, slot int, s *puzzle.Shape, origin puzzle.Cell) Move {
	lines := analysis.CompletionPreview(view, s, origin).Lines()
	return Move{
		Slot:   slot,
		Shape:  s,
		Origin: origin,
		Lines:  lines,
		Score: float64(lines)*g.LineWeight +
			analysis.Efficiency(view, s, origin) +
			float64(s.CellCount())*g.SizeWeight,
	}
}
