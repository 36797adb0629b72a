package puzzle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/tenten/puzzle"
)

type deferredRenderer struct {
	drawn     map[puzzle.Cell]puzzle.Color
	ghost     []puzzle.Cell
	animated  [][]puzzle.Cell
	callbacks []func()
}

func newDeferredRenderer() *deferredRenderer {
	return &deferredRenderer{drawn: make(map[puzzle.Cell]puzzle.Color)}
}

func (r *deferredRenderer) DrawOccupant(cell puzzle.Cell, color puzzle.Color) {
	r.drawn[cell] = color
}

func (r *deferredRenderer) RunClearAnimation(cells []puzzle.Cell, onComplete func()) {
	r.animated = append(r.animated, cells)
	r.callbacks = append(r.callbacks, onComplete)
}

func (r *deferredRenderer) ShowGhostPreview(cells []puzzle.Cell) {
	r.ghost = cells
}

func (r *deferredRenderer) finish() {
	callbacks := r.callbacks
	r.callbacks = nil
	for _, fn := range callbacks {
		fn()
	}
}

func shape(t *testing.T, id puzzle.ShapeID) *puzzle.Shape {
	t.Helper()
	s, ok := puzzle.DefaultCatalog().Lookup(id)
	require.True(t, ok, "shape %d missing from catalog", id)
	return s
}

func boardFrom(lines ...string) *puzzle.Board {
	b := puzzle.NewBoard()
	b.Restore(puzzle.ParseSnapshot(lines...))
	return b
}

func TestCanPlace(t *testing.T) {
	b := boardFrom(
		"........",
		"...#....",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
	)

	tests := []struct {
		name   string
		id     puzzle.ShapeID
		origin puzzle.Cell
		want   bool
	}{
		{"single on empty cell", puzzle.ShapeSingle, puzzle.Cell{Row: 0, Col: 0}, true},
		{"single on occupied cell", puzzle.ShapeSingle, puzzle.Cell{Row: 1, Col: 3}, false},
		{"square overlapping occupied cell", puzzle.ShapeSquare2, puzzle.Cell{Row: 0, Col: 2}, false},
		{"square beside occupied cell", puzzle.ShapeSquare2, puzzle.Cell{Row: 0, Col: 4}, true},
		{"line past right edge", puzzle.ShapeLine5H, puzzle.Cell{Row: 4, Col: 4}, false},
		{"line touching right edge", puzzle.ShapeLine5H, puzzle.Cell{Row: 4, Col: 3}, true},
		{"line past bottom edge", puzzle.ShapeLine4V, puzzle.Cell{Row: 5, Col: 0}, false},
		{"negative offset past left edge", puzzle.ShapeTUp, puzzle.Cell{Row: 0, Col: 0}, false},
		{"negative offset inside board", puzzle.ShapeTUp, puzzle.Cell{Row: 0, Col: 1}, true},
		{"origin outside board", puzzle.ShapeSingle, puzzle.Cell{Row: -1, Col: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CanPlace(shape(t, tt.id), tt.origin))
		})
	}

	assert.False(t, b.CanPlace(nil, puzzle.Cell{}))
}

func TestPlaceOccupiesExactlyShapeCells(t *testing.T) {
	b := puzzle.NewBoard()
	l := shape(t, puzzle.ShapeLUp)
	origin := puzzle.Cell{Row: 2, Col: 3}

	require.True(t, b.CanPlace(l, origin))
	cleared := b.Place(l, origin)
	assert.Zero(t, cleared.Lines())

	want := make(map[puzzle.Cell]bool)
	for _, cell := range l.At(origin) {
		want[cell] = true
	}
	for row := range puzzle.Rows {
		for col := range puzzle.Columns {
			cell := puzzle.Cell{Row: row, Col: col}
			assert.Equal(t, want[cell], b.Occupied(cell), "cell %s", cell)
		}
	}
	assert.Equal(t, 4, b.OccupiedCount())
	assert.Equal(t, l.Color, b.At(origin))
}

func TestPlaceInvalidIsNoOp(t *testing.T) {
	b := puzzle.NewBoard()
	before := b.Snapshot()

	cleared := b.Place(shape(t, puzzle.ShapeLine5H), puzzle.Cell{Row: 0, Col: 6})
	assert.Zero(t, cleared.Lines())
	assert.Equal(t, before, b.Snapshot())
	assert.Zero(t, b.Place(nil, puzzle.Cell{}).Lines())
}

func TestPlaceColored(t *testing.T) {
	b := puzzle.NewBoard()
	b.PlaceColored(shape(t, puzzle.ShapeDominoH), puzzle.Cell{Row: 3, Col: 3}, puzzle.ColorPink)
	assert.Equal(t, puzzle.ColorPink, b.At(puzzle.Cell{Row: 3, Col: 4}))
}

func TestClearSingleRow(t *testing.T) {
	b := boardFrom("###.####")

	cleared := b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})

	assert.Equal(t, 1, cleared.Rows)
	assert.Equal(t, 0, cleared.Columns)
	assert.Equal(t, []int{0}, cleared.RowIndexes)
	assert.Len(t, cleared.Cells, puzzle.Columns)
	assert.Zero(t, b.OccupiedCount(), "nop renderer completes the clear immediately")
	assert.False(t, b.ClearingInProgress())
}

func TestClearRowAndColumnTogether(t *testing.T) {
	b := boardFrom(
		"...#....",
		"...#....",
		"...#....",
		"........",
		"...#....",
		"...#....",
		"...#....",
		"...#....",
	)
	b.Place(shape(t, puzzle.ShapeLine3H), puzzle.Cell{Row: 3, Col: 0})
	b.Place(shape(t, puzzle.ShapeLine4H), puzzle.Cell{Row: 3, Col: 4})

	cleared := b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 3, Col: 3})

	assert.Equal(t, 1, cleared.Rows)
	assert.Equal(t, 1, cleared.Columns)
	assert.Len(t, cleared.Cells, puzzle.Rows+puzzle.Columns-1, "shared cell is cleared once")
	assert.Zero(t, b.OccupiedCount())
}

func TestClearGuardWhileAnimating(t *testing.T) {
	r := newDeferredRenderer()
	b := puzzle.NewBoard(puzzle.WithRenderer(r))
	b.Restore(puzzle.ParseSnapshot("###.####"))

	cleared := b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})
	require.Equal(t, 1, cleared.Rows)
	require.True(t, b.ClearingInProgress())

	pending := b.PendingClear()
	assert.Len(t, pending, puzzle.Columns)
	assert.Equal(t, puzzle.Columns, b.OccupiedCount(), "cells stay occupied until the animation ends")
	assert.False(t, b.CanPlace(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 0}))

	again := b.ClearCompletedLines()
	assert.Zero(t, again.Lines())
	assert.Equal(t, pending, b.PendingClear())

	require.Len(t, r.animated, 1)
	assert.ElementsMatch(t, pending, r.animated[0])

	r.finish()
	assert.False(t, b.ClearingInProgress())
	assert.Empty(t, b.PendingClear())
	assert.Zero(t, b.OccupiedCount())
	assert.Equal(t, puzzle.NoColor, r.drawn[puzzle.Cell{Row: 0, Col: 0}])
}

func TestClearDroppedWhileAnimating(t *testing.T) {
	r := newDeferredRenderer()
	b := puzzle.NewBoard(puzzle.WithRenderer(r))
	b.Restore(puzzle.ParseSnapshot(
		"###.####",
		"........",
		"........",
		"........",
		"........",
		"#######.",
	))

	b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})
	require.True(t, b.ClearingInProgress())

	dropped := b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 5, Col: 7})
	assert.Zero(t, dropped.Lines(), "scan is dropped while the first clear animates")

	r.finish()
	assert.Equal(t, puzzle.Columns, b.OccupiedCount(), "row 5 stays full after the drop")

	next := b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 7, Col: 0})
	assert.Equal(t, 1, next.Rows)
	assert.Equal(t, []int{5}, next.RowIndexes)
}

func TestRecheckAfterClear(t *testing.T) {
	r := newDeferredRenderer()
	var rechecked []puzzle.Cleared
	b := puzzle.NewBoard(
		puzzle.WithRenderer(r),
		puzzle.WithClearPolicy(puzzle.RecheckAfterClear),
		puzzle.WithClearHook(func(c puzzle.Cleared) { rechecked = append(rechecked, c) }),
	)
	b.Restore(puzzle.ParseSnapshot(
		"###.####",
		"........",
		"........",
		"........",
		"........",
		"#######.",
	))

	b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})
	b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 5, Col: 7})

	r.finish()
	require.Len(t, rechecked, 1)
	assert.Equal(t, []int{5}, rechecked[0].RowIndexes)
	assert.True(t, b.ClearingInProgress(), "re-check started a second clear")

	r.finish()
	assert.Zero(t, b.OccupiedCount())
	require.Len(t, rechecked, 2, "hook runs again once the board settles")
	assert.Zero(t, rechecked[1].Lines())
}

func TestClearHookRunsWhenClearFinishes(t *testing.T) {
	r := newDeferredRenderer()
	settled := 0
	b := puzzle.NewBoard(
		puzzle.WithRenderer(r),
		puzzle.WithClearHook(func(c puzzle.Cleared) {
			settled++
			assert.Zero(t, c.Lines())
		}),
	)
	b.Restore(puzzle.ParseSnapshot("###.####"))

	b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})
	assert.Zero(t, settled, "nothing settles before the renderer reports back")

	r.finish()
	assert.Equal(t, 1, settled)
	assert.False(t, b.ClearingInProgress())

	b.OnClearAnimationComplete([]puzzle.Cell{{Row: 0, Col: 0}})
	assert.Equal(t, 1, settled, "a stray callback on an idle board is ignored")
}

func TestStaleAnimationIgnoredAfterRestore(t *testing.T) {
	r := newDeferredRenderer()
	b := puzzle.NewBoard(puzzle.WithRenderer(r))
	b.Restore(puzzle.ParseSnapshot("###.####"))
	b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})

	restored := puzzle.ParseSnapshot("##......")
	b.Restore(restored)
	assert.False(t, b.ClearingInProgress())

	r.finish()
	assert.Equal(t, 2, b.OccupiedCount(), "late callback must not erase restored cells")
	assert.Equal(t, restored, b.Snapshot())
}

func TestSnapshotExcludesPendingCells(t *testing.T) {
	r := newDeferredRenderer()
	b := puzzle.NewBoard(puzzle.WithRenderer(r))
	b.Restore(puzzle.ParseSnapshot("###.####", "#......."))
	b.Place(shape(t, puzzle.ShapeSingle), puzzle.Cell{Row: 0, Col: 3})

	snap := b.Snapshot()
	assert.Equal(t, puzzle.ParseSnapshot("........", "#......."), snap)
}

func TestReset(t *testing.T) {
	b := boardFrom("####....", "##......")
	b.Reset()
	assert.Zero(t, b.OccupiedCount())
	assert.Zero(t, b.Capacity())
}

func TestCapacityMonotonic(t *testing.T) {
	b := boardFrom("#######.", "........")
	prev := b.Capacity()

	b.Place(shape(t, puzzle.ShapeSquare2), puzzle.Cell{Row: 3, Col: 3})
	assert.Greater(t, b.Capacity(), prev)
	prev = b.Capacity()

	b.Place(shape(t, puzzle.ShapeDominoV), puzzle.Cell{Row: 0, Col: 7})
	assert.InDelta(t, prev+2.0/puzzle.CellTotal-8.0/puzzle.CellTotal, b.Capacity(), 1e-9)
}

func TestCanPlaceAnywhere(t *testing.T) {
	b := boardFrom(
		"########",
		"########",
		"###..###",
		"########",
		"########",
		"########",
		"########",
		"#######.",
	)
	assert.True(t, b.CanPlaceAnywhere(shape(t, puzzle.ShapeSingle)))
	assert.True(t, b.CanPlaceAnywhere(shape(t, puzzle.ShapeDominoH)))
	assert.False(t, b.CanPlaceAnywhere(shape(t, puzzle.ShapeDominoV)))
	assert.False(t, b.CanPlaceAnywhere(shape(t, puzzle.ShapeLine3H)))
}

func TestShowPreview(t *testing.T) {
	r := newDeferredRenderer()
	b := puzzle.NewBoard(puzzle.WithRenderer(r))
	sq := shape(t, puzzle.ShapeSquare2)

	assert.True(t, b.ShowPreview(sq, puzzle.Cell{Row: 1, Col: 1}))
	assert.ElementsMatch(t, sq.At(puzzle.Cell{Row: 1, Col: 1}), r.ghost)

	r.ghost = nil
	assert.False(t, b.ShowPreview(sq, puzzle.Cell{Row: 7, Col: 7}))
	assert.Nil(t, r.ghost)
}

func TestBoardString(t *testing.T) {
	b := boardFrom("#.......")
	assert.Equal(t, "#.......\n", b.String()[:9])
}

func BenchmarkCanPlaceAnywhere(b *testing.B) {
	board := puzzle.NewBoard()
	board.Restore(puzzle.ParseSnapshot(
		"########",
		"#.#.#.#.",
		".#.#.#.#",
		"########",
		"#.#.#.#.",
		".#.#.#.#",
		"########",
		"#.#.#.#.",
	))
	sq, _ := puzzle.DefaultCatalog().Lookup(puzzle.ShapeSquare3)

	for b.Loop() {
		board.CanPlaceAnywhere(sq)
	}
}
