package puzzle

import (
	"cmp"
	"slices"
)

const (
	ShapeSingle ShapeID = iota
	ShapeSquare2
	ShapeSquare3
	ShapeRect2x3
	ShapeRect3x2
	ShapeDominoH
	ShapeDominoV
	ShapeLine3H
	ShapeLine3V
	ShapeLine4H
	ShapeLine4V
	ShapeLine5H
	ShapeLine5V
	ShapeCornerTL
	ShapeCornerTR
	ShapeCornerBL
	ShapeCornerBR
	ShapeLUp
	ShapeLRight
	ShapeLDown
	ShapeLLeft
	ShapeJUp
	ShapeJRight
	ShapeJDown
	ShapeJLeft
	ShapeElbowTL
	ShapeElbowTR
	ShapeElbowBL
	ShapeElbowBR
	ShapeTUp
	ShapeTDown
	ShapeTLeft
	ShapeTRight
	ShapeSHorizontal
	ShapeSVertical
	ShapeZHorizontal
	ShapeZVertical
	ShapePlus
	ShapeU
)

func o(row, col int) Cell { return Cell{Row: row, Col: col} }

// standardShapes is the fixed 8x8 game library. Offsets that would leave the
// origin empty are shifted so the first filled cell of the top row is (0,0).
func standardShapes() []*Shape {
	return []*Shape{
		NewShape(ShapeSingle, "single", CategorySquares, RarityCommon, UtilityFiller, o(0, 0)),
		NewShape(ShapeSquare2, "square-2", CategorySquares, RarityCommon, UtilityVersatile,
			o(0, 0), o(0, 1), o(1, 0), o(1, 1)),
		NewShape(ShapeSquare3, "square-3", CategorySquares, RarityPremium, UtilityBulky,
			o(0, 0), o(0, 1), o(0, 2), o(1, 0), o(1, 1), o(1, 2), o(2, 0), o(2, 1), o(2, 2)),

		NewShape(ShapeRect2x3, "rect-2x3", CategoryRectangles, RarityUseful, UtilityBulky,
			o(0, 0), o(0, 1), o(0, 2), o(1, 0), o(1, 1), o(1, 2)),
		NewShape(ShapeRect3x2, "rect-3x2", CategoryRectangles, RarityUseful, UtilityBulky,
			o(0, 0), o(0, 1), o(1, 0), o(1, 1), o(2, 0), o(2, 1)),

		NewShape(ShapeDominoH, "domino-h", CategorySticks, RarityCommon, UtilityFiller, o(0, 0), o(0, 1)),
		NewShape(ShapeDominoV, "domino-v", CategorySticks, RarityCommon, UtilityFiller, o(0, 0), o(1, 0)),
		NewShape(ShapeLine3H, "line-3h", CategorySticks, RarityCommon, UtilityLineMaker, o(0, 0), o(0, 1), o(0, 2)),
		NewShape(ShapeLine3V, "line-3v", CategorySticks, RarityCommon, UtilityLineMaker, o(0, 0), o(1, 0), o(2, 0)),
		NewShape(ShapeLine4H, "line-4h", CategorySticks, RarityUseful, UtilityLineMaker,
			o(0, 0), o(0, 1), o(0, 2), o(0, 3)),
		NewShape(ShapeLine4V, "line-4v", CategorySticks, RarityUseful, UtilityLineMaker,
			o(0, 0), o(1, 0), o(2, 0), o(3, 0)),
		NewShape(ShapeLine5H, "line-5h", CategorySticks, RarityValuable, UtilityLineMaker,
			o(0, 0), o(0, 1), o(0, 2), o(0, 3), o(0, 4)),
		NewShape(ShapeLine5V, "line-5v", CategorySticks, RarityValuable, UtilityLineMaker,
			o(0, 0), o(1, 0), o(2, 0), o(3, 0), o(4, 0)),

		NewShape(ShapeCornerTL, "corner-tl", CategoryCorners, RarityCommon, UtilitySpaceFiller, o(0, 0), o(0, 1), o(1, 0)),
		NewShape(ShapeCornerTR, "corner-tr", CategoryCorners, RarityCommon, UtilitySpaceFiller, o(0, 0), o(0, 1), o(1, 1)),
		NewShape(ShapeCornerBL, "corner-bl", CategoryCorners, RarityCommon, UtilitySpaceFiller, o(0, 0), o(1, 0), o(1, 1)),
		NewShape(ShapeCornerBR, "corner-br", CategoryCorners, RarityCommon, UtilitySpaceFiller, o(0, 0), o(1, -1), o(1, 0)),

		NewShape(ShapeLUp, "l-up", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(1, 0), o(2, 0), o(2, 1)),
		NewShape(ShapeLRight, "l-right", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(0, 1), o(0, 2), o(1, 0)),
		NewShape(ShapeLDown, "l-down", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(0, 1), o(1, 1), o(2, 1)),
		NewShape(ShapeLLeft, "l-left", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(1, -2), o(1, -1), o(1, 0)),
		NewShape(ShapeJUp, "j-up", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(1, 0), o(2, -1), o(2, 0)),
		NewShape(ShapeJRight, "j-right", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(1, 0), o(1, 1), o(1, 2)),
		NewShape(ShapeJDown, "j-down", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(0, 1), o(1, 0), o(2, 0)),
		NewShape(ShapeJLeft, "j-left", CategoryLShapes, RarityUseful, UtilitySpaceFiller, o(0, 0), o(0, 1), o(0, 2), o(1, 2)),

		NewShape(ShapeElbowTL, "elbow-tl", CategoryElbows, RarityValuable, UtilityBulky,
			o(0, 0), o(0, 1), o(0, 2), o(1, 0), o(2, 0)),
		NewShape(ShapeElbowTR, "elbow-tr", CategoryElbows, RarityValuable, UtilityBulky,
			o(0, 0), o(0, 1), o(0, 2), o(1, 2), o(2, 2)),
		NewShape(ShapeElbowBL, "elbow-bl", CategoryElbows, RarityValuable, UtilityBulky,
			o(0, 0), o(1, 0), o(2, 0), o(2, 1), o(2, 2)),
		NewShape(ShapeElbowBR, "elbow-br", CategoryElbows, RarityValuable, UtilityBulky,
			o(0, 0), o(1, 0), o(2, -2), o(2, -1), o(2, 0)),

		NewShape(ShapeTUp, "t-up", CategoryTShapes, RarityUseful, UtilityVersatile, o(0, 0), o(1, -1), o(1, 0), o(1, 1)),
		NewShape(ShapeTDown, "t-down", CategoryTShapes, RarityUseful, UtilityVersatile, o(0, 0), o(0, 1), o(0, 2), o(1, 1)),
		NewShape(ShapeTLeft, "t-left", CategoryTShapes, RarityUseful, UtilityVersatile, o(0, 0), o(1, -1), o(1, 0), o(2, 0)),
		NewShape(ShapeTRight, "t-right", CategoryTShapes, RarityUseful, UtilityVersatile, o(0, 0), o(1, 0), o(1, 1), o(2, 0)),

		NewShape(ShapeSHorizontal, "s-h", CategorySShapes, RarityValuable, UtilitySpaceFiller, o(0, 0), o(0, 1), o(1, -1), o(1, 0)),
		NewShape(ShapeSVertical, "s-v", CategorySShapes, RarityValuable, UtilitySpaceFiller, o(0, 0), o(1, 0), o(1, 1), o(2, 1)),
		NewShape(ShapeZHorizontal, "z-h", CategorySShapes, RarityValuable, UtilitySpaceFiller, o(0, 0), o(0, 1), o(1, 1), o(1, 2)),
		NewShape(ShapeZVertical, "z-v", CategorySShapes, RarityValuable, UtilitySpaceFiller, o(0, 0), o(1, -1), o(1, 0), o(2, -1)),

		NewShape(ShapePlus, "plus", CategorySpecial, RarityPremium, UtilityVersatile,
			o(0, 0), o(1, -1), o(1, 0), o(1, 1), o(2, 0)),
		NewShape(ShapeU, "u", CategorySpecial, RarityPremium, UtilitySpaceFiller,
			o(0, 0), o(0, 2), o(1, 0), o(1, 1), o(1, 2)),
	}
}

// Catalog is an immutable, indexed set of shapes.
type Catalog struct {
	shapes     []*Shape
	byID       map[ShapeID]*Shape
	byRarity   map[Rarity][]*Shape
	byCategory map[Category][]*Shape
	byUtility  map[Utility][]*Shape
	bySize     []*Shape
}

// NewCatalog indexes the given shapes. Duplicate IDs panic.
func NewCatalog(shapes ...*Shape) *Catalog {
	cat := &Catalog{
		shapes:     make([]*Shape, 0, len(shapes)),
		byID:       make(map[ShapeID]*Shape, len(shapes)),
		byRarity:   make(map[Rarity][]*Shape),
		byCategory: make(map[Category][]*Shape),
		byUtility:  make(map[Utility][]*Shape),
	}

	for _, s := range shapes {
		if _, dup := cat.byID[s.ID]; dup {
			panic("duplicate shape id for " + s.Name)
		}
		cat.shapes = append(cat.shapes, s)
		cat.byID[s.ID] = s
		cat.byRarity[s.Rarity] = append(cat.byRarity[s.Rarity], s)
		cat.byCategory[s.Category] = append(cat.byCategory[s.Category], s)
		cat.byUtility[s.Utility] = append(cat.byUtility[s.Utility], s)
	}

	cat.bySize = slices.Clone(cat.shapes)
	slices.SortStableFunc(cat.bySize, CompareBySize)

	return cat
}

var defaultCatalog = NewCatalog(standardShapes()...)

// DefaultCatalog returns the shared standard catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// CompareBySize orders shapes by ascending cell count, then more common tiers first.
func CompareBySize(a, b *Shape) int {
	if n := cmp.Compare(a.CellCount(), b.CellCount()); n != 0 {
		return n
	}
	if n := cmp.Compare(b.Rarity.Weight(), a.Rarity.Weight()); n != 0 {
		return n
	}
	return cmp.Compare(a.ID, b.ID)
}

// Len returns the number of shapes in the catalog.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// All returns every shape in declaration order.
func (c *Catalog) All() []*Shape {
	return slices.Clone(c.shapes)
}

// Lookup finds a shape by ID.
func (c *Catalog) Lookup(id ShapeID) (*Shape, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// ByRarity returns the shapes of one tier.
func (c *Catalog) ByRarity(r Rarity) []*Shape {
	return slices.Clone(c.byRarity[r])
}

// ByCategory returns the shapes of one category.
func (c *Catalog) ByCategory(cat Category) []*Shape {
	return slices.Clone(c.byCategory[cat])
}

// ByUtility returns the shapes with one utility.
func (c *Catalog) ByUtility(u Utility) []*Shape {
	return slices.Clone(c.byUtility[u])
}

// BySize returns every shape sorted by CompareBySize.
func (c *Catalog) BySize() []*Shape {
	return slices.Clone(c.bySize)
}

// Smallest returns the n smallest shapes (fewer if the catalog is smaller).
func (c *Catalog) Smallest(n int) []*Shape {
	n = min(n, len(c.bySize))
	return slices.Clone(c.bySize[:n])
}

// MinCellCount returns the cell count of the smallest shape, or 0 for an empty catalog.
func (c *Catalog) MinCellCount() int {
	if len(c.bySize) == 0 {
		return 0
	}
	return c.bySize[0].CellCount()
}
