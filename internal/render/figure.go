package render

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/export"
)

const heatLevels = 256

var (
	fontOnce sync.Once
	fontErr  error
)

// useGoFont registers Go Regular with gonum/plot and makes it the default
// face for every figure.
func useGoFont() error {
	fontOnce.Do(func() {
		ttf, err := opentype.Parse(goregular.TTF)
		if err != nil {
			fontErr = fmt.Errorf("load font: %w", err)
			return
		}
		goFont := font.Font{Typeface: "Go"}
		font.DefaultCache.Add([]font.Face{{Font: goFont, Face: ttf}})
		plot.DefaultFont = goFont
		plotter.DefaultFont = goFont
	})
	return fontErr
}

// evenTicks labels n+1 evenly spaced values across an axis.
type evenTicks int

func (n evenTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, int(n)+1)
	for i := 0; i <= int(n); i++ {
		v := lo + float64(i)/float64(n)*(hi-lo)
		ticks = append(ticks, plot.Tick{Value: v, Label: TickLabel(v)})
	}
	return ticks
}

// TickLabel formats an axis value compactly.
func TickLabel(v float64) string {
	if math.Abs(v) < 1e-12 {
		v = 0
	}
	return fmt.Sprintf("%.3g", v)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finiteRuns splits a curve into the stretches where both coordinates are
// finite.
func finiteRuns(x, y []float64) []plotter.XYs {
	var runs []plotter.XYs
	var run plotter.XYs
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			if len(run) > 0 {
				runs = append(runs, run)
				run = nil
			}
			continue
		}
		run = append(run, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(run) > 0 {
		runs = append(runs, run)
	}
	return runs
}

// densityGrid presents a rank-2 array to plotter.HeatMap with cell [x, y]
// centered on (x+½, y+½).
type densityGrid struct {
	a *array.Array[float64]
}

func (g densityGrid) Dims() (c, r int) {
	shape := g.a.Shape()
	return shape[0], shape[1]
}

func (g densityGrid) Z(c, r int) float64 { return g.a.MustAt(c, r) }
func (g densityGrid) X(c int) float64    { return float64(c) + 0.5 }
func (g densityGrid) Y(r int) float64    { return float64(r) + 0.5 }

func (p *Plotter) figure() (*plot.Plot, error) {
	if err := useGoFont(); err != nil {
		return nil, err
	}

	fig := plot.New()
	fig.Title.Text = p.title
	fig.X.Label.Text = p.labelX
	fig.Y.Label.Text = p.labelY
	fig.X.Tick.Marker = evenTicks(4)
	fig.Y.Tick.Marker = evenTicks(4)

	if p.density != nil {
		hm := plotter.NewHeatMap(densityGrid{p.density}, heatPalette(heatLevels))
		if hm.Max <= hm.Min {
			hm.Max = hm.Min + 1
		}
		fig.Add(hm)
	}

	for _, c := range p.curves {
		for _, run := range finiteRuns(c.x, c.y) {
			if c.deco.LineStyle == Point || len(run) == 1 {
				s, err := plotter.NewScatter(run)
				if err != nil {
					return nil, err
				}
				s.GlyphStyle = draw.GlyphStyle{
					Color:  c.deco.Color,
					Radius: export.Pixels(float64(c.deco.Width + 1)),
					Shape:  draw.CircleGlyph{},
				}
				fig.Add(s)
				continue
			}
			l, err := plotter.NewLine(run)
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = c.deco.Color
			l.LineStyle.Width = export.Pixels(float64(c.deco.Width))
			fig.Add(l)
		}
	}

	f := p.frame()
	fig.X.Min, fig.X.Max = f.xMin, f.xMax
	fig.Y.Min, fig.Y.Max = f.yMin, f.yMax
	return fig, nil
}
