package puzzle

// BoardView is the read-only capability handed to analysis and piece selection.
// *Board implements it; nothing reachable through it mutates the board.
type BoardView interface {
	// At returns the occupant of a cell, NoColor when empty or out of bounds.
	At(c Cell) Color
	// Occupied reports whether a cell holds an occupant. Out-of-bounds cells are not occupied.
	Occupied(c Cell) bool
	CanPlace(s *Shape, origin Cell) bool
	CanPlaceAnywhere(s *Shape) bool
	Capacity() float64
	OccupiedCount() int
}

var _ BoardView = (*Board)(nil)
