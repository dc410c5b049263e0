package experiment

import (
	"context"
	"time"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/property"
	"github.com/san-kum/tightbind/internal/solver"
)

// solveLattice builds a real-space lattice and fully diagonalizes it.
func solveLattice(ctx context.Context, env Env, example string, extent []int, opts ...model.BuilderOption) (*model.Model, *property.Extractor, error) {
	b, err := model.NewLatticeBuilder(extent, opts...)
	if err != nil {
		return nil, nil, stageError(example, "model", err)
	}
	m, err := b.Build()
	if err != nil {
		return nil, nil, stageError(example, "model", err)
	}
	log := env.log()
	log.Info("model.constructed", "example", example, "extent", extent, "basis_size", m.BasisSize())

	start := time.Now()
	d := solver.NewDiagonalizer(m)
	if err := d.Run(ctx); err != nil {
		return nil, nil, stageError(example, "solve", err)
	}
	log.Info("solver.finished", "example", example, "basis_size", m.BasisSize(), "elapsed", time.Since(start))

	return m, property.NewExtractor(d), nil
}

// latticeDensity returns |ψ_state|² on an array shaped like the lattice.
// Sites outside the model's basis are never queried and stay zero.
func latticeDensity(m *model.Model, e *property.Extractor, shape []int, state int) (*array.Array[float64], error) {
	density, err := array.New[float64](shape...)
	if err != nil {
		return nil, err
	}
	site := make(index.Index, len(shape))
	data := density.Data()
	for flat := range data {
		rem := flat
		for d := len(shape) - 1; d >= 0; d-- {
			site[d] = rem % shape[d]
			rem /= shape[d]
		}
		if !m.Contains(site) {
			continue
		}
		p, err := e.ProbabilityDensity(state, site)
		if err != nil {
			return nil, err
		}
		data[flat] = p
	}
	return density, nil
}
