package experiment

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/san-kum/tightbind/internal/analysis"
	"github.com/san-kum/tightbind/internal/brillouin"
	"github.com/san-kum/tightbind/internal/config"
	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/kpath"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/property"
	"github.com/san-kum/tightbind/internal/render"
	"github.com/san-kum/tightbind/internal/solver"
)

// GrapheneExample computes the DOS and band structure of the honeycomb
// lattice in momentum space.
type GrapheneExample struct{}

func (GrapheneExample) Name() string { return "graphene" }

func (GrapheneExample) Description() string {
	return "graphene DOS and band structure along Γ-M-K-Γ"
}

// Honeycomb is the geometry of a graphene sheet with lattice constant A.
type Honeycomb struct {
	A       float64
	Lattice [3]brillouin.Vector3
	// NN holds the three vectors from an A site to its B neighbors.
	NN [3]brillouin.Vector3
}

func NewHoneycomb(a float64) Honeycomb {
	r0 := brillouin.V(a, 0, 0)
	r1 := brillouin.V(-a/2, a*math.Sqrt(3)/2, 0)
	r2 := brillouin.V(0, 0, a)

	ab0 := r0.Add(r1.Scale(2)).Scale(1.0 / 3)
	return Honeycomb{
		A:       a,
		Lattice: [3]brillouin.Vector3{r0, r1, r2},
		NN: [3]brillouin.Vector3{
			ab0,
			r1.Neg().Add(ab0),
			r0.Neg().Sub(r1).Add(ab0),
		},
	}
}

// Zone returns the 2-D Brillouin zone spanned by the in-plane reciprocal
// vectors.
func (h Honeycomb) Zone() (*brillouin.Zone, error) {
	k, err := brillouin.ReciprocalBasis(h.Lattice)
	if err != nil {
		return nil, err
	}
	return brillouin.New([][]float64{k[0].XY(), k[1].XY()}, brillouin.Nodal)
}

// Coupling is the A←B Bloch amplitude -t Σ_j exp(-i k·δ_j).
func (h Honeycomb) Coupling(t float64, k []float64) complex128 {
	kv := brillouin.V(k[0], k[1], 0)
	var sum complex128
	for _, d := range h.NN {
		sum += cmplx.Exp(complex(0, -kv.Dot(d)))
	}
	return complex(-t, 0) * sum
}

// Path returns Γ → M → K → Γ.
func (h Honeycomb) Path() kpath.Path {
	a := h.A
	return kpath.Path{
		{Name: "Γ", K: []float64{0, 0}},
		{Name: "M", K: []float64{math.Pi / a, -math.Pi / (math.Sqrt(3) * a)}},
		{Name: "K", K: []float64{4 * math.Pi / (3 * a), 0}},
		{Name: "Γ", K: []float64{0, 0}},
	}
}

// grapheneModel puts one 2×2 Bloch block {kx, ky, sublattice} on every
// mesh cell.
func grapheneModel(h Honeycomb, zone *brillouin.Zone, cfg config.GrapheneConfig) (*model.Model, error) {
	res := []int{cfg.MeshResolution, cfg.MeshResolution}
	mesh, err := zone.Mesh(res)
	if err != nil {
		return nil, err
	}

	m := model.New(model.WithBounds(cfg.MeshResolution, cfg.MeshResolution, 2))
	for _, p := range mesh {
		c := p.Cell
		to := index.New(c[0], c[1], 0)
		from := index.New(c[0], c[1], 1)
		if err := m.AddHC(model.NewHopping(h.Coupling(cfg.Hopping, p.K), to, from)); err != nil {
			return nil, err
		}
	}
	return m, m.Construct()
}

func (ex GrapheneExample) Run(ctx context.Context, env Env) (*Result, error) {
	cfg := env.config().Graphene
	res := newResult(ex.Name())
	log := env.log()

	h := NewHoneycomb(cfg.LatticeConstant)
	zone, err := h.Zone()
	if err != nil {
		return nil, stageError(ex.Name(), "zone", err)
	}
	m, err := grapheneModel(h, zone, cfg)
	if err != nil {
		return nil, stageError(ex.Name(), "model", err)
	}
	log.Info("model.constructed", "example", ex.Name(), "mesh", cfg.MeshResolution, "basis_size", m.BasisSize())

	start := time.Now()
	b := solver.NewBlockDiagonalizer(m)
	if err := b.Run(ctx); err != nil {
		return nil, stageError(ex.Name(), "solve", err)
	}
	log.Info("solver.finished", "example", ex.Name(), "blocks", b.NumBlocks(), "elapsed", time.Since(start))

	e := property.NewBlockExtractor(b)
	if err := ex.plotDOS(env, cfg, e, res); err != nil {
		return nil, err
	}
	if err := ex.plotBands(env, cfg, h, zone, e, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (ex GrapheneExample) plotDOS(env Env, cfg config.GrapheneConfig, e *property.BlockExtractor, res *Result) error {
	if err := e.SetEnergyWindow(cfg.Energy.Lower, cfg.Energy.Upper, cfg.Energy.Resolution); err != nil {
		return stageError(ex.Name(), "dos", err)
	}
	dos, err := e.DOS()
	if err != nil {
		return stageError(ex.Name(), "dos", err)
	}
	smoothed, err := analysis.SmoothDOS(dos, cfg.Smoothing.Sigma, cfg.Smoothing.Window)
	if err != nil {
		return stageError(ex.Name(), "dos", err)
	}

	p := render.NewPlotter()
	p.SetLabelX("Energy")
	p.SetLabelY("DOS")
	if err := p.PlotDOS(smoothed, 0); err != nil {
		return stageError(ex.Name(), "dos", err)
	}
	if err := res.saveFigure(env, p, "DOS.png"); err != nil {
		return stageError(ex.Name(), "dos", err)
	}
	res.Series["dos"] = smoothed.Data
	res.Series["dos_energy"] = smoothed.Energies()
	return nil
}

func (ex GrapheneExample) plotBands(env Env, cfg config.GrapheneConfig, h Honeycomb, zone *brillouin.Zone, e *property.BlockExtractor, res *Result) error {
	samples, err := h.Path().SampleClosed(cfg.PointsPerSegment)
	if err != nil {
		return stageError(ex.Name(), "bands", err)
	}

	mesh := []int{cfg.MeshResolution, cfg.MeshResolution}
	bands := [2][]float64{
		make([]float64, len(samples.Points)),
		make([]float64, len(samples.Points)),
	}
	for n, k := range samples.Points {
		cell, err := zone.MinorCellIndex(k, mesh)
		if err != nil {
			return stageError(ex.Name(), "bands", err)
		}
		for band := range bands {
			v, err := e.EigenValue(cell, band)
			if err != nil {
				return stageError(ex.Name(), "bands", fmt.Errorf("k=%v: %w", k, err))
			}
			bands[band][n] = v
		}
	}

	lo, _ := analysis.Bounds(bands[0])
	_, hi := analysis.Bounds(bands[1])

	p := render.NewPlotter()
	p.SetLabelX("k")
	p.SetLabelY("Energy")
	p.SetHold(true)
	for _, band := range bands {
		if err := p.Plot(band, render.Decoration{Color: render.Black, LineStyle: render.Line, Width: 2}); err != nil {
			return stageError(ex.Name(), "bands", err)
		}
	}
	// markers at the interior high-symmetry points
	for _, tick := range samples.Ticks[1 : len(samples.Ticks)-1] {
		x := float64(tick)
		if err := p.PlotXY([]float64{x, x}, []float64{lo, hi}, render.Decoration{Color: render.Gray, LineStyle: render.Line, Width: 1}); err != nil {
			return stageError(ex.Name(), "bands", err)
		}
	}
	if err := res.saveFigure(env, p, "BandStructure.png"); err != nil {
		return stageError(ex.Name(), "bands", err)
	}

	res.Series["band_lower"] = bands[0]
	res.Series["band_upper"] = bands[1]
	res.Scalars["bandwidth"] = hi - lo
	return nil
}
