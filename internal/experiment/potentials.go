package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/tightbind/internal/analysis"
	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/potential"
	"github.com/san-kum/tightbind/internal/property"
	"github.com/san-kum/tightbind/internal/render"
)

// PotentialsExample draws the lowest states of a chain in each of the
// reference potentials, stacked at their energies.
type PotentialsExample struct{}

func (PotentialsExample) Name() string { return "potentials" }

func (PotentialsExample) Description() string {
	return "lowest eigenstates of a chain in six reference potentials"
}

// chainOptions discretizes -t d²/dx² + V(x) on the chain.
func chainOptions(cfg config.PotentialsConfig, v potential.Func) []model.BuilderOption {
	t := cfg.Hopping
	onSite := potential.AsAmplitude(v)
	return []model.BuilderOption{
		model.WithOnSiteFunc(func(to, from index.Index) complex128 {
			return complex(2*t, 0) + onSite(to, from)
		}),
		model.WithHopping(complex(t, 0)),
	}
}

func (ex PotentialsExample) Run(ctx context.Context, env Env) (*Result, error) {
	cfg := env.config().Potentials
	res := newResult(ex.Name())

	for _, pot := range potential.Defaults(cfg.Size) {
		if err := ex.runOne(ctx, env, cfg, pot, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (ex PotentialsExample) runOne(ctx context.Context, env Env, cfg config.PotentialsConfig, pot potential.Named, res *Result) error {
	stage := func(s string) string { return fmt.Sprintf("%s/%s", pot.Name, s) }

	m, e, err := solveLattice(ctx, env, ex.Name(), []int{cfg.Size}, chainOptions(cfg, pot.Func)...)
	if err != nil {
		return err
	}

	values, err := e.EigenValues()
	if err != nil {
		return stageError(ex.Name(), stage("extract"), err)
	}
	// the level above the last drawn state bounds the figure
	top, err := e.EigenValue(cfg.NumStates)
	if err != nil {
		return stageError(ex.Name(), stage("extract"), err)
	}

	densities, err := stateDensities(m, e, cfg.Size, cfg.NumStates)
	if err != nil {
		return stageError(ex.Name(), stage("extract"), err)
	}

	v := potential.Sample(pot.Func, cfg.Size)
	bottom, _ := analysis.Bounds(v)
	if err := analysis.StackDensities(densities, values[:cfg.NumStates], bottom, top); err != nil {
		return stageError(ex.Name(), stage("stack"), err)
	}

	p := render.NewPlotter()
	p.SetTitle(pot.Name)
	p.SetLabelX("x")
	p.SetLabelY("Energy")
	p.SetHold(true)
	p.SetBoundsY(bottom, top)
	if err := p.Plot(v, render.Decoration{Color: render.Red, LineStyle: render.Line, Width: 2}); err != nil {
		return stageError(ex.Name(), stage("plot"), err)
	}
	for s := 0; s < cfg.NumStates; s++ {
		row, err := densities.Slice(1, s)
		if err != nil {
			return stageError(ex.Name(), stage("plot"), err)
		}
		if err := p.Plot(row, render.Decoration{Color: render.Black, LineStyle: render.Line, Width: 1}); err != nil {
			return stageError(ex.Name(), stage("plot"), err)
		}
	}
	if err := res.saveFigure(env, p, pot.Name+".png"); err != nil {
		return stageError(ex.Name(), stage("plot"), err)
	}

	res.Series[pot.Name] = append([]float64(nil), values[:cfg.NumStates]...)
	res.Scalars[pot.Name+"_ground"] = values[0]
	return nil
}

// stateDensities returns a [state, x] array of the lowest count densities.
func stateDensities(m *model.Model, e *property.Extractor, size, count int) (*array.Array[float64], error) {
	out, err := array.New[float64](count, size)
	if err != nil {
		return nil, err
	}
	data := out.Data()
	for s := 0; s < count; s++ {
		row, err := latticeDensity(m, e, []int{size}, s)
		if err != nil {
			return nil, err
		}
		copy(data[s*size:(s+1)*size], row.Data())
	}
	return out, nil
}
