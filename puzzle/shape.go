package puzzle

import (
	"iter"
	"slices"
)

// ShapeID identifies a catalog entry. Every orientation is its own ID.
type ShapeID int

// Category groups shapes by silhouette.
type Category int

const (
	CategorySquares Category = iota
	CategoryRectangles
	CategorySticks
	CategoryLShapes
	CategoryCorners
	CategoryElbows
	CategoryTShapes
	CategorySShapes
	CategorySpecial
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategorySquares,
	CategoryRectangles,
	CategorySticks,
	CategoryLShapes,
	CategoryCorners,
	CategoryElbows,
	CategoryTShapes,
	CategorySShapes,
	CategorySpecial,
}

func (c Category) String() string {
	switch c {
	case CategorySquares:
		return "squares"
	case CategoryRectangles:
		return "rectangles"
	case CategorySticks:
		return "sticks"
	case CategoryLShapes:
		return "l-shapes"
	case CategoryCorners:
		return "corners"
	case CategoryElbows:
		return "elbows"
	case CategoryTShapes:
		return "t-shapes"
	case CategorySShapes:
		return "s-shapes"
	case CategorySpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Rarity is the probability tier of a shape.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUseful
	RarityValuable
	RarityPremium
)

// Rarities lists every tier from most to least frequent.
var Rarities = []Rarity{RarityCommon, RarityUseful, RarityValuable, RarityPremium}

// Weight returns the relative draw weight of the tier.
func (r Rarity) Weight() int {
	switch r {
	case RarityCommon:
		return 50
	case RarityUseful:
		return 30
	case RarityValuable:
		return 15
	case RarityPremium:
		return 5
	default:
		return 0
	}
}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUseful:
		return "useful"
	case RarityValuable:
		return "valuable"
	case RarityPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// Utility is the strategic role a shape plays on the board.
type Utility int

const (
	UtilityFiller Utility = iota
	UtilityLineMaker
	UtilitySpaceFiller
	UtilityBulky
	UtilityVersatile
)

// Utilities lists every utility in declaration order.
var Utilities = []Utility{UtilityFiller, UtilityLineMaker, UtilitySpaceFiller, UtilityBulky, UtilityVersatile}

// PreferenceRank orders utilities for tie breaking: versatile first, bulky last.
func (u Utility) PreferenceRank() int {
	switch u {
	case UtilityVersatile:
		return 0
	case UtilityFiller:
		return 1
	case UtilityLineMaker:
		return 2
	case UtilitySpaceFiller:
		return 3
	default:
		return 4
	}
}

func (u Utility) String() string {
	switch u {
	case UtilityFiller:
		return "filler"
	case UtilityLineMaker:
		return "lineMaker"
	case UtilitySpaceFiller:
		return "spaceFiller"
	case UtilityBulky:
		return "bulky"
	case UtilityVersatile:
		return "versatile"
	default:
		return "unknown"
	}
}

// Shape is an immutable polyomino: a fixed list of offsets relative to its origin cell.
type Shape struct {
	ID       ShapeID
	Name     string
	Category Category
	Rarity   Rarity
	Utility  Utility
	Color    Color

	offsets []Cell
	minRow  int
	minCol  int
	maxRow  int
	maxCol  int
}

// NewShape builds a shape from its offsets. The offsets must contain (0,0) and
// must not repeat; violating either is a programming error and panics.
func NewShape(id ShapeID, name string, category Category, rarity Rarity, utility Utility, offsets ...Cell) *Shape {
	if !slices.Contains(offsets, Cell{}) {
		panic("shape " + name + " has no origin cell")
	}

	s := &Shape{
		ID:       id,
		Name:     name,
		Category: category,
		Rarity:   rarity,
		Utility:  utility,
		Color:    categoryColor(category),
		offsets:  make([]Cell, 0, len(offsets)),
	}

	for _, o := range offsets {
		if slices.Contains(s.offsets, o) {
			panic("shape " + name + " repeats offset " + o.String())
		}
		s.offsets = append(s.offsets, o)
		s.minRow = min(s.minRow, o.Row)
		s.minCol = min(s.minCol, o.Col)
		s.maxRow = max(s.maxRow, o.Row)
		s.maxCol = max(s.maxCol, o.Col)
	}

	return s
}

// Offsets iterates the shape's relative cells in declaration order.
func (s *Shape) Offsets() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, o := range s.offsets {
			if !yield(o) {
				return
			}
		}
	}
}

// Cells returns a copy of the shape's relative cells.
func (s *Shape) Cells() []Cell {
	return slices.Clone(s.offsets)
}

// At returns the absolute cells covered when the origin is placed at origin.
func (s *Shape) At(origin Cell) []Cell {
	cells := make([]Cell, len(s.offsets))
	for i, o := range s.offsets {
		cells[i] = origin.Add(o)
	}
	return cells
}

// CellCount returns the number of cells the shape occupies.
func (s *Shape) CellCount() int {
	return len(s.offsets)
}

// Width is the number of columns spanned by the shape's bounding box.
func (s *Shape) Width() int {
	return s.maxCol - s.minCol + 1
}

// Height is the number of rows spanned by the shape's bounding box.
func (s *Shape) Height() int {
	return s.maxRow - s.minRow + 1
}

// TopLeft is the offset of the bounding box's top-left corner relative to the origin.
func (s *Shape) TopLeft() Cell {
	return Cell{Row: s.minRow, Col: s.minCol}
}

func (s *Shape) String() string {
	return s.Name
}
