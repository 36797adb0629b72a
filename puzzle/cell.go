package puzzle

import "fmt"

// Cell is a (row, column) coordinate on the board or a relative offset within a shape.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add translates c by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// InBounds reports whether c lies on the board.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Columns
}

// index packs an in-bounds cell into a single integer key.
func (c Cell) index() int {
	return c.Row*Columns + c.Col
}

func cellAt(index int) Cell {
	return Cell{Row: index / Columns, Col: index % Columns}
}
