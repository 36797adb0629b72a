package analysis

import "github.com/plus3/tenten/puzzle"

// Preview lists the rows and columns a placement would complete.
type Preview struct {
	Rows    []int `json:"rows,omitempty"`
	Columns []int `json:"columns,omitempty"`
}

// Lines returns the number of rows and columns completed.
func (p Preview) Lines() int {
	return len(p.Rows) + len(p.Columns)
}

// CompletionPreview returns the lines that would be full if s were placed at
// origin. An invalid placement yields an empty preview.
func CompletionPreview(view puzzle.BoardView, s *puzzle.Shape, origin puzzle.Cell) Preview {
	var p Preview
	if !view.CanPlace(s, origin) {
		return p
	}

	var own [puzzle.Rows][puzzle.Columns]bool
	var touchedRows [puzzle.Rows]bool
	var touchedCols [puzzle.Columns]bool
	for o := range s.Offsets() {
		cell := origin.Add(o)
		own[cell.Row][cell.Col] = true
		touchedRows[cell.Row] = true
		touchedCols[cell.Col] = true
	}

	filled := func(c puzzle.Cell) bool {
		return own[c.Row][c.Col] || view.Occupied(c)
	}

	for row := range puzzle.Rows {
		if !touchedRows[row] {
			continue
		}
		full := true
		for col := range puzzle.Columns {
			if !filled(puzzle.Cell{Row: row, Col: col}) {
				full = false
				break
			}
		}
		if full {
			p.Rows = append(p.Rows, row)
		}
	}
	for col := range puzzle.Columns {
		if !touchedCols[col] {
			continue
		}
		full := true
		for row := range puzzle.Rows {
			if !filled(puzzle.Cell{Row: row, Col: col}) {
				full = false
				break
			}
		}
		if full {
			p.Columns = append(p.Columns, col)
		}
	}

	return p
}
