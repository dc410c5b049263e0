package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/tightbind/internal/analysis"
	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/property"
	"github.com/san-kum/tightbind/internal/render"
	"github.com/san-kum/tightbind/internal/solver"
)

// DOSExample computes the density of states of the nearest-neighbor cubic
// lattice in one, two and three dimensions.
type DOSExample struct{}

func (DOSExample) Name() string { return "dos" }

func (DOSExample) Description() string {
	return "density of states of 1-D, 2-D and 3-D cubic lattices"
}

// bandModel puts ε(k) = -2t Σ cos k_i on every point of a size^dim
// momentum mesh. Each k is its own block.
func bandModel(dim, size int, t float64) (*model.Model, error) {
	m := model.New()
	total := 1
	for d := 0; d < dim; d++ {
		total *= size
	}

	k := make(index.Index, dim)
	for n := 0; n < total; n++ {
		e := 0.0
		for _, ki := range k {
			e -= 2 * t * math.Cos(2*math.Pi*float64(ki)/float64(size))
		}
		if err := m.Add(model.NewHopping(complex(e, 0), k.Clone(), k.Clone())); err != nil {
			return nil, err
		}
		for d := dim - 1; d >= 0; d-- {
			k[d]++
			if k[d] < size {
				break
			}
			k[d] = 0
		}
	}
	return m, m.Construct()
}

func (ex DOSExample) Run(ctx context.Context, env Env) (*Result, error) {
	cfg := env.config().DOS
	res := newResult(ex.Name())
	log := env.log()

	for dim, size := range []int{cfg.Size1D, cfg.Size2D, cfg.Size3D} {
		dim++
		stage := func(s string) string { return fmt.Sprintf("%dD/%s", dim, s) }

		m, err := bandModel(dim, size, cfg.Hopping)
		if err != nil {
			return nil, stageError(ex.Name(), stage("model"), err)
		}
		log.Info("model.constructed", "example", ex.Name(), "dimension", dim, "basis_size", m.BasisSize())

		start := time.Now()
		b := solver.NewBlockDiagonalizer(m)
		if err := b.Run(ctx); err != nil {
			return nil, stageError(ex.Name(), stage("solve"), err)
		}
		log.Info("solver.finished", "example", ex.Name(), "dimension", dim, "blocks", b.NumBlocks(), "elapsed", time.Since(start))

		e := property.NewBlockExtractor(b)
		if err := e.SetEnergyWindow(cfg.Energy.Lower, cfg.Energy.Upper, cfg.Energy.Resolution); err != nil {
			return nil, stageError(ex.Name(), stage("extract"), err)
		}
		dos, err := e.DOS()
		if err != nil {
			return nil, stageError(ex.Name(), stage("extract"), err)
		}
		analysis.NormalizeDOS(dos, m.BasisSize())
		smoothed, err := analysis.SmoothDOS(dos, cfg.Smoothing.Sigma, cfg.Smoothing.Window)
		if err != nil {
			return nil, stageError(ex.Name(), stage("smooth"), err)
		}

		p := render.NewPlotter()
		p.SetTitle(fmt.Sprintf("%dD", dim))
		p.SetLabelX("Energy")
		p.SetLabelY("DOS")
		if err := p.PlotDOS(smoothed, 0); err != nil {
			return nil, stageError(ex.Name(), stage("plot"), err)
		}
		if err := res.saveFigure(env, p, fmt.Sprintf("DOS_%dD.png", dim)); err != nil {
			return nil, stageError(ex.Name(), stage("plot"), err)
		}

		key := fmt.Sprintf("dos_%dd", dim)
		res.Series[key] = smoothed.Data
		res.Scalars[key+"_integral"] = smoothed.Integral()
		if dim == 1 {
			res.Series["energy"] = smoothed.Energies()
		}
	}
	return res, nil
}
