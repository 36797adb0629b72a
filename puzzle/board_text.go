package puzzle

import "strings"

// ParseSnapshot reads a text grid: '.' is empty, any other rune is occupied.
// Missing rows and columns are empty and extra ones are ignored.
func ParseSnapshot(lines ...string) BoardSnapshot {
	var snap BoardSnapshot
	for row, line := range lines {
		if row >= Rows {
			break
		}
		col := 0
		for _, r := range line {
			if r == ' ' {
				continue
			}
			if col >= Columns {
				break
			}
			if r != '.' {
				snap.Grid[row][col] = ColorGray
			}
			col++
		}
	}
	return snap
}

// String renders the board with '#' for occupied, '*' for pending-clear and '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range Rows {
		for col := range Columns {
			cell := Cell{Row: row, Col: col}
			switch {
			case b.IsPendingClear(cell):
				sb.WriteByte('*')
			case b.Occupied(cell):
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
