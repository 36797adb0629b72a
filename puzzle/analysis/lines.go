package analysis

import "github.com/plus3/tenten/puzzle"

// MaxTrackedGap is the largest empty-cell count a line may have and still be
// reported as near complete.
const MaxTrackedGap = 5

// LineGap is a row or column with a small number of empty cells.
type LineGap struct {
	Index int `json:"index"`
	Empty int `json:"empty"`
}

// LineCompletion summarises how close rows and columns are to clearing.
type LineCompletion struct {
	Rows             []LineGap `json:"rows"`
	Columns          []LineGap `json:"columns"`
	SingleGapRows    int       `json:"singleGapRows"`
	SingleGapColumns int       `json:"singleGapColumns"`
	// NearComplete counts every reported row and column.
	NearComplete int `json:"nearComplete"`
	// PotentialMultiLineClear counts rows and columns with at most two empty
	// cells, plus one for every empty cell where such a row and column cross.
	PotentialMultiLineClear int `json:"potentialMultiLineClear"`
}

// LineCompletionAnalysis counts the empty cells of every row and column and
// keeps the lines with between one and MaxTrackedGap of them.
func LineCompletionAnalysis(view puzzle.BoardView) LineCompletion {
	var rowEmpty [puzzle.Rows]int
	var colEmpty [puzzle.Columns]int
	for row := range puzzle.Rows {
		for col := range puzzle.Columns {
			if !view.Occupied(puzzle.Cell{Row: row, Col: col}) {
				rowEmpty[row]++
				colEmpty[col]++
			}
		}
	}

	var lc LineCompletion
	for row, empty := range rowEmpty {
		if empty < 1 || empty > MaxTrackedGap {
			continue
		}
		lc.Rows = append(lc.Rows, LineGap{Index: row, Empty: empty})
		if empty == 1 {
			lc.SingleGapRows++
		}
		if empty <= 2 {
			lc.PotentialMultiLineClear++
		}
	}
	for col, empty := range colEmpty {
		if empty < 1 || empty > MaxTrackedGap {
			continue
		}
		lc.Columns = append(lc.Columns, LineGap{Index: col, Empty: empty})
		if empty == 1 {
			lc.SingleGapColumns++
		}
		if empty <= 2 {
			lc.PotentialMultiLineClear++
		}
	}
	lc.NearComplete = len(lc.Rows) + len(lc.Columns)

	for row, re := range rowEmpty {
		if re < 1 || re > 2 {
			continue
		}
		for col, ce := range colEmpty {
			if ce < 1 || ce > 2 {
				continue
			}
			if !view.Occupied(puzzle.Cell{Row: row, Col: col}) {
				lc.PotentialMultiLineClear++
			}
		}
	}

	return lc
}
