// Package array provides dense N-dimensional arrays with an explicit shape
// and bounds-checked indexing.
package array

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a shape has no dimensions or a non-positive extent.
	ErrBadShape = errors.New("array: invalid shape")

	// ErrOutOfRange indicates a coordinate outside the shape or a rank mismatch.
	ErrOutOfRange = errors.New("array: index out of range")
)

// Array stores elements in row-major order.
type Array[T any] struct {
	shape   []int
	strides []int
	data    []T
}

func New[T any](shape ...int) (*Array[T], error) {
	if len(shape) == 0 {
		return nil, ErrBadShape
	}
	size := 1
	for _, n := range shape {
		if n <= 0 {
			return nil, fmt.Errorf("%w: %v", ErrBadShape, shape)
		}
		size *= n
	}

	s := make([]int, len(shape))
	copy(s, shape)
	strides := make([]int, len(shape))
	stride := 1
	for d := len(s) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= s[d]
	}

	return &Array[T]{shape: s, strides: strides, data: make([]T, size)}, nil
}

func (a *Array[T]) Shape() []int {
	s := make([]int, len(a.shape))
	copy(s, a.shape)
	return s
}

func (a *Array[T]) Rank() int { return len(a.shape) }
func (a *Array[T]) Size() int { return len(a.data) }

// Data exposes the backing row-major storage.
func (a *Array[T]) Data() []T { return a.data }

func (a *Array[T]) Fill(v T) {
	for i := range a.data {
		a.data[i] = v
	}
}

func (a *Array[T]) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: rank %d, got %d coordinates", ErrOutOfRange, len(a.shape), len(idx))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			return 0, fmt.Errorf("%w: %v not within %v", ErrOutOfRange, idx, a.shape)
		}
		off += i * a.strides[d]
	}
	return off, nil
}

func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.offset(idx)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[off], nil
}

// MustAt is At for coordinates already known to be valid. It panics otherwise.
func (a *Array[T]) MustAt(idx ...int) T {
	v, err := a.At(idx...)
	if err != nil {
		panic(err)
	}
	return v
}

func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.offset(idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Slice returns a copy of the line along dim, with every other dimension
// pinned to the coordinates in fixed (given in dimension order, skipping dim).
func (a *Array[T]) Slice(dim int, fixed ...int) ([]T, error) {
	if dim < 0 || dim >= len(a.shape) {
		return nil, fmt.Errorf("%w: dimension %d", ErrOutOfRange, dim)
	}
	if len(fixed) != len(a.shape)-1 {
		return nil, fmt.Errorf("%w: need %d fixed coordinates, got %d", ErrOutOfRange, len(a.shape)-1, len(fixed))
	}

	idx := make([]int, len(a.shape))
	for d, k := 0, 0; d < len(a.shape); d++ {
		if d == dim {
			continue
		}
		idx[d] = fixed[k]
		k++
	}

	out := make([]T, a.shape[dim])
	for i := range out {
		idx[dim] = i
		off, err := a.offset(idx)
		if err != nil {
			return nil, err
		}
		out[i] = a.data[off]
	}
	return out, nil
}

func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{
		shape:   make([]int, len(a.shape)),
		strides: make([]int, len(a.strides)),
		data:    make([]T, len(a.data)),
	}
	copy(c.shape, a.shape)
	copy(c.strides, a.strides)
	copy(c.data, a.data)
	return c
}

// MinMax returns the smallest and largest element of a float array.
func MinMax(a *Array[float64]) (float64, float64) {
	if a == nil || len(a.data) == 0 {
		return 0, 0
	}
	lo, hi := a.data[0], a.data[0]
	for _, v := range a.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
