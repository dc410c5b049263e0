// Package render draws line plots and density maps to PNG or SVG files, and
// curves to the terminal.
package render

import (
	"fmt"
	"math"

	"github.com/san-kum/tightbind/internal/analysis"
	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/export"
	"github.com/san-kum/tightbind/internal/property"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

type curve struct {
	x, y []float64
	deco Decoration
}

type bound struct {
	lo, hi float64
	set    bool
}

// Plotter accumulates curves or a density map and saves them as an image.
// Without hold, every Plot call replaces what was drawn before.
type Plotter struct {
	width, height int

	title, labelX, labelY string
	boundsX, boundsY      bound
	hold                  bool

	curves  []curve
	density *array.Array[float64]
}

type Option func(*Plotter)

func WithSize(width, height int) Option {
	return func(p *Plotter) {
		if width > 0 && height > 0 {
			p.width, p.height = width, height
		}
	}
}

func NewPlotter(opts ...Option) *Plotter {
	p := &Plotter{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Plotter) SetTitle(title string) { p.title = title }
func (p *Plotter) SetLabelX(label string) { p.labelX = label }
func (p *Plotter) SetLabelY(label string) { p.labelY = label }
func (p *Plotter) SetHold(hold bool)      { p.hold = hold }

func (p *Plotter) SetBoundsX(lo, hi float64) { p.boundsX = bound{lo, hi, true} }
func (p *Plotter) SetBoundsY(lo, hi float64) { p.boundsY = bound{lo, hi, true} }

// Clear drops everything except the image size.
func (p *Plotter) Clear() {
	*p = Plotter{width: p.width, height: p.height}
}

func (p *Plotter) prepare() {
	if !p.hold {
		p.curves = p.curves[:0]
		p.density = nil
	}
}

// Plot draws y against its sample number.
func (p *Plotter) Plot(y []float64, deco ...Decoration) error {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return p.PlotXY(x, y, deco...)
}

// PlotXY draws y against x. Points with a non-finite coordinate are left
// out and break the line.
func (p *Plotter) PlotXY(x, y []float64, deco ...Decoration) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d x, %d y", ErrLengthMismatch, len(x), len(y))
	}
	if len(finiteRuns(x, y)) == 0 {
		return ErrNothingToPlot
	}
	p.prepare()

	d := Decoration{Color: palette[len(p.curves)%len(palette)], LineStyle: Line, Width: 1}
	if len(deco) > 0 {
		d = deco[0]
		if d.Width <= 0 {
			d.Width = 1
		}
	}
	p.curves = append(p.curves, curve{
		x:    append([]float64(nil), x...),
		y:    append([]float64(nil), y...),
		deco: d,
	})
	return nil
}

// PlotDOS draws the DOS against energy, Gaussian-smoothed with width sigma
// (in energy units) when sigma is positive.
func (p *Plotter) PlotDOS(dos *property.DOS, sigma float64, deco ...Decoration) error {
	if dos == nil || dos.Resolution() == 0 {
		return ErrNothingToPlot
	}
	if sigma > 0 {
		window := 2*int(math.Ceil(5*sigma/dos.Step())) + 1
		if limit := dos.Resolution() | 1; window > limit {
			window = limit
		}
		smoothed, err := analysis.SmoothDOS(dos, sigma, window)
		if err != nil {
			return err
		}
		dos = smoothed
	}
	return p.PlotXY(dos.Energies(), dos.Data, deco...)
}

// PlotDensity draws a rank-2 array as a heat map; element [x, y] is drawn at
// column x, row y from the bottom. Non-finite elements are drawn as zero.
func (p *Plotter) PlotDensity(density *array.Array[float64]) error {
	if density == nil || density.Size() == 0 {
		return ErrNothingToPlot
	}
	if density.Rank() != 2 {
		return fmt.Errorf("%w: density map needs rank 2, got shape %v", array.ErrBadShape, density.Shape())
	}
	p.prepare()
	p.density = density.Clone()
	data := p.density.Data()
	for i, v := range data {
		if !finite(v) {
			data[i] = 0
		}
	}
	return nil
}

type frame struct {
	xMin, xMax float64
	yMin, yMax float64
}

// frame resolves automatic bounds from the finite plotted data.
func (p *Plotter) frame() frame {
	var f frame
	if p.density != nil {
		shape := p.density.Shape()
		f = frame{0, float64(shape[0]), 0, float64(shape[1])}
	} else {
		f = frame{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
		for _, c := range p.curves {
			for _, run := range finiteRuns(c.x, c.y) {
				for _, pt := range run {
					f.xMin, f.xMax = math.Min(f.xMin, pt.X), math.Max(f.xMax, pt.X)
					f.yMin, f.yMax = math.Min(f.yMin, pt.Y), math.Max(f.yMax, pt.Y)
				}
			}
		}
		if f.yMax == f.yMin {
			f.yMin, f.yMax = f.yMin-1, f.yMax+1
		}
		if f.xMax == f.xMin {
			f.xMin, f.xMax = f.xMin-1, f.xMax+1
		}
	}

	if p.boundsX.set {
		f.xMin, f.xMax = p.boundsX.lo, p.boundsX.hi
	}
	if p.boundsY.set {
		f.yMin, f.yMax = p.boundsY.lo, p.boundsY.hi
	}
	return f
}

// Save writes the figure, creating parent directories. The format follows
// the extension: .png or .svg.
func (p *Plotter) Save(path string) error {
	if len(p.curves) == 0 && p.density == nil {
		return ErrNothingToPlot
	}
	fig, err := p.figure()
	if err != nil {
		return err
	}
	return export.WriteFigure(path, p.width, p.height, fig)
}
