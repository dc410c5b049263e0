package viz

import (
	"math"
	"strings"

	"github.com/san-kum/tightbind/internal/array"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// ordered-dither thresholds, one per braille dot
var ditherMap = [4][2]float64{
	{0.5 / 8, 4.5 / 8},
	{6.5 / 8, 2.5 / 8},
	{1.5 / 8, 5.5 / 8},
	{7.5 / 8, 3.5 / 8},
}

const blank = 0x2800

// Canvas is a grid of braille cells, each holding 2×4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates; the canvas is
// 2*Width × 4*Height dots with y growing downwards.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Line lights every dot between (x0, y0) and (x1, y1), taking one step per
// dot along the longer axis.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(absInt(dx), absInt(dy))
	if steps == 0 {
		c.Set(x0, y0)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		c.Set(x0+int(math.Round(f*float64(dx))), y0+int(math.Round(f*float64(dy))))
	}
}

// Curve draws values as a polyline spanning the canvas width, with lo at
// the bottom row and hi at the top. Non-finite samples break the line.
func (c *Canvas) Curve(values []float64, lo, hi float64) {
	dotsX, dotsY := 2*c.Width, 4*c.Height
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	stepX := 0.0
	if len(values) > 1 {
		stepX = float64(dotsX-1) / float64(len(values)-1)
	}

	havePrev := false
	var px, py int
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			havePrev = false
			continue
		}
		level := math.Min(math.Max((v-lo)/span, 0), 1)
		x := int(math.Round(float64(i) * stepX))
		y := dotsY - 1 - int(math.Round(level*float64(dotsY-1)))
		if havePrev {
			c.Line(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// Shade fills the canvas with an ordered-dither rendering of a rank-2
// density. Element [x, y] lands at column x and row y counted from the
// bottom; brighter sites light more dots.
func (c *Canvas) Shade(density *array.Array[float64]) {
	c.Clear()
	shape := density.Shape()
	if len(shape) != 2 || density.Size() == 0 {
		return
	}
	nx, ny := shape[0], shape[1]
	_, peak := array.MinMax(density)
	if peak <= 0 {
		return
	}

	data := density.Data()
	dotsX, dotsY := 2*c.Width, 4*c.Height
	for py := 0; py < dotsY; py++ {
		y := (dotsY - 1 - py) * ny / dotsY
		for px := 0; px < dotsX; px++ {
			x := px * nx / dotsX
			if data[x*ny+y]/peak > ditherMap[py%4][px%2] {
				c.Set(px, py)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
