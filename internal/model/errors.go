package model

import "errors"

// Domain errors for model construction and lookups.
var (
	// ErrOutOfBounds indicates an amplitude referencing a site outside the declared extent.
	ErrOutOfBounds = errors.New("model: index out of bounds")

	// ErrEmptyIndex indicates an amplitude with a zero-length index.
	ErrEmptyIndex = errors.New("model: empty index")

	// ErrEmptyModel indicates Construct was called without any amplitudes.
	ErrEmptyModel = errors.New("model: no hopping amplitudes")

	// ErrConstructed indicates an amplitude added after Construct.
	ErrConstructed = errors.New("model: already constructed")

	// ErrNotConstructed indicates a basis lookup before Construct.
	ErrNotConstructed = errors.New("model: not constructed")

	// ErrUnknownIndex indicates an index that is not part of the basis.
	ErrUnknownIndex = errors.New("model: index not in basis")

	// ErrInvalidExtent indicates a lattice extent with bad rank or sizes.
	ErrInvalidExtent = errors.New("model: invalid lattice extent")
)
