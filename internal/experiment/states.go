package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/potential"
	"github.com/san-kum/tightbind/internal/property"
)

// States is a solved real-space lattice whose eigenstates can be browsed one
// at a time.
type States struct {
	title     string
	shape     []int
	model     *model.Model
	extractor *property.Extractor
	count     int
}

func (s *States) Title() string  { return s.title }
func (s *States) NumStates() int { return s.count }

func (s *States) EigenValue(n int) (float64, error) {
	return s.extractor.EigenValue(n)
}

// Density returns |ψ_n|² shaped like the lattice.
func (s *States) Density(n int) (*array.Array[float64], error) {
	return latticeDensity(s.model, s.extractor, s.shape, n)
}

// BrowsableExamples lists the examples SolveStates accepts.
func BrowsableExamples() []string {
	return []string{"density", "annulus", "potentials"}
}

// SolveStates solves the lattice of a real-space example. For potentials,
// potentialName picks which chain to solve.
func SolveStates(ctx context.Context, env Env, example, potentialName string) (*States, error) {
	cfg := env.config()
	s := &States{}
	var opts []model.BuilderOption

	switch example {
	case "density":
		c := cfg.Density
		s.title = fmt.Sprintf("%d×%d square lattice", c.SizeX, c.SizeY)
		s.shape = []int{c.SizeX, c.SizeY}
		opts = []model.BuilderOption{model.WithHopping(complex(c.Hopping, 0))}
	case "annulus":
		c := cfg.Annulus
		ring := newAnnulus(c)
		s.title = fmt.Sprintf("annulus %g < r < %g", c.InnerRadius, c.OuterRadius)
		s.shape = []int{c.Size, c.Size}
		opts = []model.BuilderOption{model.WithHopping(complex(c.Hopping, 0)), model.WithSiteFilter(ring)}
	case "potentials":
		c := cfg.Potentials
		pot, err := potential.ByName(potentialName, c.Size)
		if err != nil {
			return nil, err
		}
		s.title = pot.Name
		s.shape = []int{c.Size}
		opts = chainOptions(c, pot.Func)
	default:
		return nil, fmt.Errorf("%w: %s cannot be browsed", ErrUnknownExample, example)
	}

	m, e, err := solveLattice(ctx, env, example, s.shape, opts...)
	if err != nil {
		return nil, err
	}
	s.model = m
	s.extractor = e
	s.count = m.BasisSize()
	return s, nil
}
