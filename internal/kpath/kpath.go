// Package kpath samples straight segments between momentum points, as used
// for band-structure plots along high-symmetry paths.
package kpath

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPointCount indicates a request for zero (or fewer) samples.
	ErrInvalidPointCount = errors.New("kpath: point count must be positive")

	// ErrDimensionMismatch indicates segment endpoints of different dimension.
	ErrDimensionMismatch = errors.New("kpath: dimension mismatch")

	// ErrShortPath indicates a path with fewer than two points.
	ErrShortPath = errors.New("kpath: path needs at least two points")
)

// Range is n evenly spaced values from lower towards upper. A half-open
// range stops one step short of upper; a closed range ends on it.
type Range struct {
	lower, upper float64
	n            int
	closed       bool
}

func NewRange(lower, upper float64, n int) (Range, error) {
	if n <= 0 {
		return Range{}, fmt.Errorf("%w: got %d", ErrInvalidPointCount, n)
	}
	return Range{lower: lower, upper: upper, n: n}, nil
}

func NewClosedRange(lower, upper float64, n int) (Range, error) {
	if n <= 0 {
		return Range{}, fmt.Errorf("%w: got %d", ErrInvalidPointCount, n)
	}
	return Range{lower: lower, upper: upper, n: n, closed: true}, nil
}

func (r Range) Len() int { return r.n }

func (r Range) At(i int) float64 {
	steps := r.n
	if r.closed {
		if r.n == 1 {
			return r.lower
		}
		steps = r.n - 1
	}
	return r.lower + float64(i)*(r.upper-r.lower)/float64(steps)
}

func (r Range) Values() []float64 {
	out := make([]float64, r.n)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Lerp returns (1-t)*start + t*end.
func Lerp(start, end []float64, t float64) []float64 {
	p := make([]float64, len(start))
	for d := range start {
		p[d] = (1-t)*start[d] + t*end[d]
	}
	return p
}

// Interpolate samples n points on the half-open segment [start, end).
func Interpolate(start, end []float64, n int) ([][]float64, error) {
	if len(start) != len(end) {
		return nil, fmt.Errorf("%w: %d and %d", ErrDimensionMismatch, len(start), len(end))
	}
	r, err := NewRange(0, 1, n)
	if err != nil {
		return nil, err
	}
	points := make([][]float64, n)
	for i := range points {
		points[i] = Lerp(start, end, r.At(i))
	}
	return points, nil
}
