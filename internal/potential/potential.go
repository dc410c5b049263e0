// Package potential provides one-dimensional on-site potentials for chain
// models. Each constructor captures its parameters, so several potentials
// can coexist without shared state.
package potential

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
)

var ErrUnknownPotential = errors.New("potential: unknown potential")

// Func gives the potential energy at site x.
type Func func(x int) float64

// Named pairs a potential with the name used for its figure.
type Named struct {
	Name string
	Func Func
}

// InfiniteSquareWell is zero inside the chain; the open chain ends act as
// the walls.
func InfiniteSquareWell() Func {
	return func(int) float64 { return 0 }
}

// SquareWell is depth on [left, right] and zero elsewhere.
func SquareWell(depth float64, left, right int) Func {
	return func(x int) float64 {
		if x < left || x > right {
			return 0
		}
		return depth
	}
}

func Harmonic(curvature float64, center int) Func {
	return func(x int) float64 {
		d := float64(x - center)
		return curvature * d * d
	}
}

func DoubleWell(quadratic, quartic float64, center int) Func {
	return func(x int) float64 {
		d := float64(x - center)
		return quadratic*d*d + quartic*math.Pow(d, 4)
	}
}

// Step is zero below at and height from at onwards.
func Step(height float64, at int) Func {
	return func(x int) float64 {
		if x < at {
			return 0
		}
		return height
	}
}

// Barrier is left below from, barrier on [from, to) and right from to onwards.
func Barrier(left, barrier, right float64, from, to int) Func {
	return func(x int) float64 {
		switch {
		case x < from:
			return left
		case x < to:
			return barrier
		default:
			return right
		}
	}
}

// Defaults returns the six reference potentials for a chain of the given
// size. Boundaries scale with size; for 500 sites they sit at the sites
// 200/300 (well) and 225/275 (barrier).
func Defaults(size int) []Named {
	center := size / 2
	return []Named{
		{"InfiniteSquareWell", InfiniteSquareWell()},
		{"SquareWell", SquareWell(-5e-3, 2*size/5, 3*size/5)},
		{"HarmonicOscillator", Harmonic(1e-6, center)},
		{"DoubleWell", DoubleWell(-1e-6, 3e-11, center)},
		{"Step", Step(3e-3, center)},
		{"Barrier", Barrier(0, 4e-3, 2e-3, 9*size/20, 11*size/20)},
	}
}

// Names lists the names accepted by ByName.
func Names() []string {
	defaults := Defaults(1)
	names := make([]string, len(defaults))
	for i, p := range defaults {
		names[i] = p.Name
	}
	return names
}

// ByName looks up a default potential. Matching ignores case.
func ByName(name string, size int) (Named, error) {
	for _, p := range Defaults(size) {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Named{}, fmt.Errorf("%w: %q", ErrUnknownPotential, name)
}

// Sample evaluates f on sites [0, size).
func Sample(f Func, size int) []float64 {
	out := make([]float64, size)
	for x := range out {
		out[x] = f(x)
	}
	return out
}

// AsAmplitude adapts f to an on-site amplitude reading the first subindex of
// the source site.
func AsAmplitude(f Func) model.AmplitudeFunc {
	return func(_, from index.Index) complex128 {
		return complex(f(from[0]), 0)
	}
}
