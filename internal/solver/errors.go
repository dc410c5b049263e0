package solver

import "errors"

var (
	// ErrNotHermitian indicates a Hamiltonian with H != H† beyond tolerance.
	ErrNotHermitian = errors.New("solver: hamiltonian is not hermitian")

	// ErrEigenFailed indicates the eigen-decomposition did not converge.
	ErrEigenFailed = errors.New("solver: eigen decomposition failed")

	// ErrNotSolved indicates a result query before Run completed.
	ErrNotSolved = errors.New("solver: not solved")

	// ErrStateOutOfRange indicates a state ordinal outside the basis.
	ErrStateOutOfRange = errors.New("solver: state out of range")

	// ErrUnknownBlock indicates a block index the model does not contain.
	ErrUnknownBlock = errors.New("solver: unknown block")
)
