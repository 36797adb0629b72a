package main

import (
	"image/color"

	"github.com/plus3/tenten/puzzle"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	CellSize = 56
	CellGap  = 4
	BoardX   = 40
	BoardY   = 80

	TrayX     = BoardX + puzzle.Columns*CellSize + 60
	TrayY     = BoardY
	TrayCell  = 24
	TraySlotH = 5*TrayCell + 24
)

var palette = map[puzzle.Color]color.NRGBA{
	puzzle.ColorRed:    {255, 179, 186, 255},
	puzzle.ColorOrange: {255, 223, 186, 255},
	puzzle.ColorYellow: {255, 255, 186, 255},
	puzzle.ColorGreen:  {186, 255, 201, 255},
	puzzle.ColorTeal:   {179, 229, 252, 255},
	puzzle.ColorBlue:   {186, 225, 255, 255},
	puzzle.ColorPurple: {217, 186, 255, 255},
	puzzle.ColorPink:   {255, 200, 221, 255},
	puzzle.ColorGray:   {190, 190, 185, 255},
}

var (
	backgroundColor = color.NRGBA{245, 245, 240, 255}
	emptyCellColor  = color.NRGBA{230, 230, 225, 255}
	ghostColor      = color.NRGBA{120, 160, 220, 110}
	selectedColor   = color.NRGBA{120, 160, 220, 255}
)

func occupantColor(c puzzle.Color, alpha float64) color.NRGBA {
	rgba, ok := palette[c]
	if !ok {
		return emptyCellColor
	}
	rgba.A = uint8(float64(rgba.A) * alpha)
	return rgba
}

// cellRect returns the screen rectangle of a board cell.
func cellRect(c puzzle.Cell) (x, y, size float32) {
	return float32(BoardX + c.Col*CellSize), float32(BoardY + c.Row*CellSize), CellSize - CellGap
}

// cellAt maps a screen point to the board cell under it.
func cellAt(x, y int) (puzzle.Cell, bool) {
	if x < BoardX || y < BoardY {
		return puzzle.Cell{}, false
	}
	c := puzzle.Cell{Row: (y - BoardY) / CellSize, Col: (x - BoardX) / CellSize}
	return c, c.InBounds()
}
