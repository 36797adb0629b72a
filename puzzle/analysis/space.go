package analysis

import (
	"slices"

	"github.com/plus3/tenten/puzzle"
)

// SpacePattern describes the 4-connected empty regions of the board.
type SpacePattern struct {
	// RegionSizes lists every region size, largest first.
	RegionSizes []int   `json:"regionSizes"`
	Largest     int     `json:"largest"`
	TotalEmpty  int     `json:"totalEmpty"`
	AverageSize float64 `json:"averageSize"`
	// Fragmentation is regions per empty cell in [0,1]. An empty board
	// reports 0.
	Fragmentation float64 `json:"fragmentation"`
	Isolated      int     `json:"isolated"`
	SmallClusters int     `json:"smallClusters"`
}

// Regions returns the number of empty regions.
func (sp SpacePattern) Regions() int {
	return len(sp.RegionSizes)
}

var neighbours = [4]puzzle.Cell{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// SpacePatternAnalysis flood-fills every empty cell into regions.
func SpacePatternAnalysis(view puzzle.BoardView) SpacePattern {
	var seen [puzzle.Rows][puzzle.Columns]bool
	var sp SpacePattern
	stack := make([]puzzle.Cell, 0, puzzle.CellTotal)

	for row := range puzzle.Rows {
		for col := range puzzle.Columns {
			start := puzzle.Cell{Row: row, Col: col}
			if seen[row][col] || view.Occupied(start) {
				continue
			}

			size := 0
			seen[row][col] = true
			stack = append(stack[:0], start)
			for len(stack) > 0 {
				cell := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++
				for _, d := range neighbours {
					next := cell.Add(d)
					if !next.InBounds() || seen[next.Row][next.Col] || view.Occupied(next) {
						continue
					}
					seen[next.Row][next.Col] = true
					stack = append(stack, next)
				}
			}

			sp.RegionSizes = append(sp.RegionSizes, size)
			sp.TotalEmpty += size
			switch {
			case size == 1:
				sp.Isolated++
			case size <= 3:
				sp.SmallClusters++
			}
		}
	}

	if n := len(sp.RegionSizes); n > 0 {
		slices.SortFunc(sp.RegionSizes, func(a, b int) int { return b - a })
		sp.Largest = sp.RegionSizes[0]
		sp.AverageSize = float64(sp.TotalEmpty) / float64(n)
		if sp.TotalEmpty < puzzle.CellTotal {
			sp.Fragmentation = float64(n) / float64(max(1, sp.TotalEmpty))
		}
	}

	return sp
}
