package render

import (
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/property"
)

func TestPlotter_SavePNG(t *testing.T) {
	p := NewPlotter(WithSize(320, 240))
	p.SetTitle("Chain")
	p.SetLabelX("x")
	p.SetLabelY("E")
	require.NoError(t, p.Plot([]float64{0, 1, 4, 9, 16}, Decoration{Color: Red, LineStyle: Line, Width: 2}))

	path := filepath.Join(t.TempDir(), "nested", "curve.png")
	require.NoError(t, p.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	assert.Greater(t, reddish(img), 100, "curve pixels are drawn")
}

// reddish counts pixels dominated by red, including antialiased edges.
func reddish(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if int(r>>8)-int(g>>8) > 60 && int(r>>8)-int(bl>>8) > 60 {
				n++
			}
		}
	}
	return n
}

func TestPlotter_NonFiniteSamples(t *testing.T) {
	p := NewPlotter(WithSize(320, 240))
	y := []float64{0, 1, math.NaN(), 3, math.Inf(1), 5}
	require.NoError(t, p.Plot(y, Decoration{Color: Red, LineStyle: Line, Width: 2}))

	f := p.frame()
	assert.Equal(t, 0.0, f.xMin)
	assert.Equal(t, 5.0, f.xMax)
	assert.Equal(t, 0.0, f.yMin)
	assert.Equal(t, 5.0, f.yMax)

	runs := finiteRuns(p.curves[0].x, p.curves[0].y)
	require.Len(t, runs, 3)
	assert.Len(t, runs[0], 2)
	assert.Len(t, runs[1], 1)
	assert.Len(t, runs[2], 1)

	dir := t.TempDir()
	require.NoError(t, p.Save(filepath.Join(dir, "gaps.png")))
	require.NoError(t, p.Save(filepath.Join(dir, "gaps.svg")))

	nan := math.NaN()
	assert.True(t, errors.Is(p.Plot([]float64{nan, nan}), ErrNothingToPlot))

	d, err := array.New[float64](2, 2)
	require.NoError(t, err)
	require.NoError(t, d.Set(nan, 0, 0))
	require.NoError(t, d.Set(1, 1, 1))
	require.NoError(t, p.PlotDensity(d))
	assert.Equal(t, 0.0, p.density.MustAt(0, 0))
	require.NoError(t, p.Save(filepath.Join(dir, "density.png")))
}

func TestPlotter_SaveDensity(t *testing.T) {
	d, err := array.New[float64](4, 3)
	require.NoError(t, err)
	require.NoError(t, d.Set(1, 3, 2))

	p := NewPlotter(WithSize(200, 200))
	require.NoError(t, p.PlotDensity(d))

	dir := t.TempDir()
	require.NoError(t, p.Save(filepath.Join(dir, "density.png")))
	require.NoError(t, p.Save(filepath.Join(dir, "density.svg")))

	svg, err := os.ReadFile(filepath.Join(dir, "density.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	flat, _ := array.New[float64](5)
	assert.True(t, errors.Is(p.PlotDensity(flat), array.ErrBadShape))
}

func TestPlotter_Hold(t *testing.T) {
	p := NewPlotter()
	require.NoError(t, p.Plot([]float64{1, 2}))
	require.NoError(t, p.Plot([]float64{3, 4}))
	assert.Len(t, p.curves, 1)

	p.SetHold(true)
	require.NoError(t, p.Plot([]float64{5, 6}))
	assert.Len(t, p.curves, 2)

	f := p.frame()
	assert.Equal(t, 3.0, f.yMin)
	assert.Equal(t, 6.0, f.yMax)

	p.SetBoundsY(-1, 10)
	f = p.frame()
	assert.Equal(t, -1.0, f.yMin)

	p.Clear()
	assert.Empty(t, p.curves)
	assert.False(t, p.hold)
	assert.True(t, errors.Is(p.Save(filepath.Join(t.TempDir(), "x.png")), ErrNothingToPlot))
}

func TestPlotter_Errors(t *testing.T) {
	p := NewPlotter()
	assert.True(t, errors.Is(p.Plot(nil), ErrNothingToPlot))
	assert.True(t, errors.Is(p.PlotXY([]float64{1}, []float64{1, 2}), ErrLengthMismatch))
	assert.True(t, errors.Is(p.PlotDOS(nil, 0.1), ErrNothingToPlot))

	require.NoError(t, p.Plot([]float64{1, 2}))
	assert.True(t, errors.Is(p.Save(filepath.Join(t.TempDir(), "x.jpg")), ErrUnsupportedFormat))
}

func TestPlotter_PlotDOS(t *testing.T) {
	dos, err := property.NewDOS([]float64{-0.5, 0, 0.5}, -1, 1, 100)
	require.NoError(t, err)

	p := NewPlotter()
	require.NoError(t, p.PlotDOS(dos, 0.05))
	require.Len(t, p.curves, 1)
	assert.Len(t, p.curves[0].x, 100)
	assert.InDelta(t, -1, p.curves[0].x[0], 1e-12)

	peak := 0.0
	for _, v := range p.curves[0].y {
		peak = max(peak, v)
	}
	assert.Less(t, peak, 1/dos.Step(), "smoothing lowers the delta peaks")
}

func TestASCII(t *testing.T) {
	out := ASCII("bands", 5, 30, []float64{1, 2, 3, 2, 1}, nil, []float64{0, 1, 0})
	assert.Contains(t, out, "bands")
	assert.Greater(t, strings.Count(out, "\n"), 3)
	assert.Empty(t, ASCII("empty", 5, 30))
}

func TestHeat(t *testing.T) {
	assert.Equal(t, heat(0), heat(-1))
	assert.Equal(t, heat(1), heat(2))
	assert.NotEqual(t, heat(0), heat(1))

	colors := heatPalette(8).Colors()
	require.Len(t, colors, 8)
	assert.Equal(t, heat(0), colors[0])
	assert.Equal(t, heat(1), colors[7])
}

func TestTicks(t *testing.T) {
	assert.Equal(t, "0", TickLabel(1e-15))
	assert.Equal(t, "3.14", TickLabel(3.14159))
	assert.Equal(t, "-1e+03", TickLabel(-1000))

	ticks := evenTicks(4).Ticks(-2, 2)
	require.Len(t, ticks, 5)
	assert.Equal(t, -2.0, ticks[0].Value)
	assert.Equal(t, "0", ticks[2].Label)
	assert.Equal(t, "2", ticks[4].Label)
}
