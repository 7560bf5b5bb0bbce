package core

// Color is a terminal color slot. The front-end maps each slot to an ANSI
// 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
	ColorPanel // Board background
	ColorBlack
)

// blockRamp walks blue, magenta, red, yellow, green, cyan and back, the
// same hue circle block counts cycle through.
var blockRamp = []Color{
	ColorBlue,
	ColorBrightBlue,
	ColorPurple,
	ColorMagenta,
	ColorBrightMagenta,
	ColorBrightRed,
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorGreen,
	ColorCyan,
	ColorBrightCyan,
}

// bandWidth is how many consecutive counts share one ramp color.
const bandWidth = 4

// RampColor returns the fill color for a block that still needs n hits.
func RampColor(n int) Color {
	if n < 1 {
		return ColorDefault
	}
	return blockRamp[((n-1)/bandWidth)%len(blockRamp)]
}

// Light reports whether text drawn on c should be dark.
func (c Color) Light() bool {
	switch c {
	case ColorYellow, ColorBrightYellow, ColorBrightGreen, ColorGreen,
		ColorCyan, ColorBrightCyan, ColorWhite, ColorBrightWhite, ColorOrange:
		return true
	}
	return false
}
