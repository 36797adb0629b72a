package analysis

import (
	"cmp"
	"slices"

	"github.com/plus3/tenten/puzzle"
)

const (
	// MinStrategicGap is the shortest empty run treated as a strategic gap.
	MinStrategicGap = 4
	// MaxPlacements bounds the ranked placement list.
	MaxPlacements = 10
)

// Axis tells whether a gap runs along a row or a column.
type Axis int

const (
	AxisRow Axis = iota
	AxisColumn
)

func (a Axis) String() string {
	if a == AxisColumn {
		return "column"
	}
	return "row"
}

// Gap is a maximal run of empty cells in one row or column.
type Gap struct {
	Axis   Axis `json:"axis"`
	Line   int  `json:"line"`
	Start  int  `json:"start"`
	Length int  `json:"length"`
}

// Cells returns the cells of the run in order.
func (g Gap) Cells() []puzzle.Cell {
	cells := make([]puzzle.Cell, g.Length)
	for i := range g.Length {
		cells[i] = g.cell(g.Start + i)
	}
	return cells
}

func (g Gap) cell(pos int) puzzle.Cell {
	if g.Axis == AxisColumn {
		return puzzle.Cell{Row: pos, Col: g.Line}
	}
	return puzzle.Cell{Row: g.Line, Col: pos}
}

// span is the shape's extent along the gap.
func (g Gap) span(s *puzzle.Shape) int {
	if g.Axis == AxisColumn {
		return s.Height()
	}
	return s.Width()
}

// Placement is a scored candidate move into a strategic gap.
type Placement struct {
	Shape             *puzzle.Shape `json:"-"`
	Origin            puzzle.Cell   `json:"origin"`
	Gap               Gap           `json:"gap"`
	Efficiency        float64       `json:"efficiency"`
	ClearingPotential int           `json:"clearingPotential"`
}

// StrategicPlacement lists the strategic gaps and the best placements into them.
type StrategicPlacement struct {
	Gaps       []Gap       `json:"gaps"`
	Placements []Placement `json:"placements"`
}

// FindGaps returns every maximal empty run of at least MinStrategicGap cells,
// rows first.
func FindGaps(view puzzle.BoardView) []Gap {
	var gaps []Gap
	scan := func(axis Axis, lines, length int) {
		for line := range lines {
			g := Gap{Axis: axis, Line: line}
			run := 0
			for pos := 0; pos <= length; pos++ {
				if pos < length && !view.Occupied(g.cell(pos)) {
					run++
					continue
				}
				if run >= MinStrategicGap {
					gaps = append(gaps, Gap{Axis: axis, Line: line, Start: pos - run, Length: run})
				}
				run = 0
			}
		}
	}
	scan(AxisRow, puzzle.Rows, puzzle.Columns)
	scan(AxisColumn, puzzle.Columns, puzzle.Rows)
	return gaps
}

// StrategicPlacementAnalysis recommends shapes from cat whose extent along a
// gap is its length or one less, tries every valid position that puts part of
// the shape on the gap, and keeps the top MaxPlacements by clearing potential
// then efficiency.
func StrategicPlacementAnalysis(view puzzle.BoardView, cat *puzzle.Catalog) StrategicPlacement {
	if cat == nil {
		cat = puzzle.DefaultCatalog()
	}

	type key struct {
		id     puzzle.ShapeID
		origin puzzle.Cell
	}

	sp := StrategicPlacement{Gaps: FindGaps(view)}
	seen := make(map[key]struct{})
	shapes := cat.All()

	for _, g := range sp.Gaps {
		for _, s := range shapes {
			span := g.span(s)
			if span < g.Length-1 || span > g.Length {
				continue
			}
			for _, origin := range gapOrigins(g, s) {
				k := key{s.ID, origin}
				if _, dup := seen[k]; dup || !view.CanPlace(s, origin) {
					continue
				}
				seen[k] = struct{}{}
				sp.Placements = append(sp.Placements, Placement{
					Shape:             s,
					Origin:            origin,
					Gap:               g,
					Efficiency:        Efficiency(view, s, origin),
					ClearingPotential: CompletionPreview(view, s, origin).Lines(),
				})
			}
		}
	}

	slices.SortStableFunc(sp.Placements, func(a, b Placement) int {
		if n := cmp.Compare(b.ClearingPotential, a.ClearingPotential); n != 0 {
			return n
		}
		return cmp.Compare(b.Efficiency, a.Efficiency)
	})
	if len(sp.Placements) > MaxPlacements {
		sp.Placements = sp.Placements[:MaxPlacements]
	}

	return sp
}

// gapOrigins returns the origins that keep the shape's bounding box inside the
// gap along its axis and put at least one shape cell on the gap line.
func gapOrigins(g Gap, s *puzzle.Shape) []puzzle.Cell {
	topLeft := s.TopLeft()
	var origins []puzzle.Cell

	span := g.span(s)
	for along := g.Start; along+span <= g.Start+g.Length; along++ {
		for o := range s.Offsets() {
			var origin puzzle.Cell
			if g.Axis == AxisRow {
				origin = puzzle.Cell{Row: g.Line - o.Row, Col: along - topLeft.Col}
			} else {
				origin = puzzle.Cell{Row: along - topLeft.Row, Col: g.Line - o.Col}
			}
			if !slices.Contains(origins, origin) {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}

// Efficiency scores how snugly s sits at origin: the share of its cell edges
// touching occupied cells, plus a size bonus of up to 0.2, capped at 1.
func Efficiency(view puzzle.BoardView, s *puzzle.Shape, origin puzzle.Cell) float64 {
	cells := s.At(origin)
	adjacent := 0
	for _, c := range cells {
		for _, d := range neighbours {
			n := c.Add(d)
			if slices.Contains(cells, n) {
				continue
			}
			if view.Occupied(n) {
				adjacent++
			}
		}
	}

	count := float64(len(cells))
	score := float64(adjacent)/(count*4) + min(count/9, 1)*0.2
	return min(score, 1)
}
