package render

import "image/color"

type LineStyle int

const (
	Line LineStyle = iota
	Point
)

func (s LineStyle) String() string {
	switch s {
	case Line:
		return "line"
	case Point:
		return "point"
	default:
		return "unknown"
	}
}

// Decoration controls how a curve is drawn. Width is in pixels; for points
// it sets the glyph radius.
type Decoration struct {
	Color     color.RGBA
	LineStyle LineStyle
	Width     int
}

var (
	Black = color.RGBA{0, 0, 0, 255}
	Red   = color.RGBA{224, 64, 64, 255}
	Gray  = color.RGBA{128, 128, 128, 255}
)

// palette cycles through undecorated curves.
var palette = []color.RGBA{
	{31, 119, 180, 255},
	{255, 127, 14, 255},
	{44, 160, 44, 255},
	{214, 39, 40, 255},
	{148, 103, 189, 255},
	{140, 86, 75, 255},
	{227, 119, 194, 255},
}

// heat maps v in [0, 1] onto a dark-blue to yellow gradient.
func heat(v float64) color.RGBA {
	stops := []color.RGBA{
		{13, 8, 135, 255},
		{126, 3, 168, 255},
		{204, 71, 120, 255},
		{248, 149, 64, 255},
		{240, 249, 33, 255},
	}
	if v <= 0 {
		return stops[0]
	}
	if v >= 1 {
		return stops[len(stops)-1]
	}
	pos := v * float64(len(stops)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := stops[i], stops[i+1]
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + f*(float64(y)-float64(x))) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

// heatPalette samples heat at n evenly spaced levels for gonum/plot heat
// maps.
type heatPalette int

func (n heatPalette) Colors() []color.Color {
	colors := make([]color.Color, int(n))
	for i := range colors {
		colors[i] = heat(float64(i) / float64(n-1))
	}
	return colors
}
