package experiment

import (
	"context"

	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/render"
)

// DensityExample plots one eigenstate of a rectangular square lattice.
type DensityExample struct{}

func (DensityExample) Name() string { return "density" }

func (DensityExample) Description() string {
	return "probability density of one eigenstate on a square lattice"
}

func (ex DensityExample) Run(ctx context.Context, env Env) (*Result, error) {
	cfg := env.config().Density
	res := newResult(ex.Name())
	shape := []int{cfg.SizeX, cfg.SizeY}

	m, e, err := solveLattice(ctx, env, ex.Name(), shape, model.WithHopping(complex(cfg.Hopping, 0)))
	if err != nil {
		return nil, err
	}

	energy, err := e.EigenValue(cfg.State)
	if err != nil {
		return nil, stageError(ex.Name(), "extract", err)
	}
	res.printf(env, "The energy of state %d is %g", cfg.State, energy)
	res.Scalars["energy"] = energy

	values, err := e.EigenValues()
	if err != nil {
		return nil, stageError(ex.Name(), "extract", err)
	}
	res.Series["eigenvalues"] = values

	density, err := latticeDensity(m, e, shape, cfg.State)
	if err != nil {
		return nil, stageError(ex.Name(), "extract", err)
	}

	p := render.NewPlotter()
	p.SetTitle("Probability density")
	if err := p.PlotDensity(density); err != nil {
		return nil, stageError(ex.Name(), "plot", err)
	}
	if err := res.saveFigure(env, p, "ProbabilityDensity.png"); err != nil {
		return nil, stageError(ex.Name(), "plot", err)
	}
	return res, nil
}
