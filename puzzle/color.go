package puzzle

// Color is the opaque occupant token stored in a board cell. NoColor marks an empty cell.
type Color uint8

const (
	NoColor Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorTeal
	ColorBlue
	ColorPurple
	ColorPink
	ColorGray
)

// Palette lists every occupant color in order.
var Palette = []Color{ColorRed, ColorOrange, ColorYellow, ColorGreen, ColorTeal, ColorBlue, ColorPurple, ColorPink, ColorGray}

func categoryColor(c Category) Color {
	return Palette[int(c)%len(Palette)]
}
