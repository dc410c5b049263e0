package experiment

import (
	"context"
	"math"

	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/render"
)

// Annulus keeps the sites strictly between two radii around a center site.
type Annulus struct {
	CenterX, CenterY int
	Inner, Outer     float64
}

func (a Annulus) Included(idx index.Index) bool {
	if len(idx) < 2 {
		return false
	}
	dx := float64(idx[0] - a.CenterX)
	dy := float64(idx[1] - a.CenterY)
	r := math.Sqrt(dx*dx + dy*dy)
	return r > a.Inner && r < a.Outer
}

// newAnnulus centers the ring on the middle site of the lattice.
func newAnnulus(cfg config.AnnulusConfig) Annulus {
	return Annulus{
		CenterX: cfg.Size / 2,
		CenterY: cfg.Size / 2,
		Inner:   cfg.InnerRadius,
		Outer:   cfg.OuterRadius,
	}
}

// AnnulusExample solves a square lattice cut to an annulus.
type AnnulusExample struct{}

func (AnnulusExample) Name() string { return "annulus" }

func (AnnulusExample) Description() string {
	return "eigenstate of a square lattice restricted to an annulus"
}

func (ex AnnulusExample) Run(ctx context.Context, env Env) (*Result, error) {
	cfg := env.config().Annulus
	res := newResult(ex.Name())
	shape := []int{cfg.Size, cfg.Size}
	ring := newAnnulus(cfg)

	m, e, err := solveLattice(ctx, env, ex.Name(), shape,
		model.WithHopping(complex(cfg.Hopping, 0)),
		model.WithSiteFilter(ring),
	)
	if err != nil {
		return nil, err
	}
	res.Scalars["basis_size"] = float64(m.BasisSize())

	energy, err := e.EigenValue(cfg.State)
	if err != nil {
		return nil, stageError(ex.Name(), "extract", err)
	}
	res.printf(env, "The energy of state %d is %g", cfg.State, energy)
	res.Scalars["energy"] = energy

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
