package solver

import (
	"context"
	"fmt"

	"github.com/san-kum/tightbind/internal/model"
)

// Diagonalizer solves the full Hamiltonian of a model at once.
type Diagonalizer struct {
	model   *model.Model
	values  []float64
	vectors []complex128
	solved  bool
}

func NewDiagonalizer(m *model.Model) *Diagonalizer {
	return &Diagonalizer{model: m}
}

func (d *Diagonalizer) Model() *model.Model { return d.model }

// Run assembles and diagonalizes the Hamiltonian. Amplitude callbacks are
// evaluated here, so a Run after changing a model's inputs sees the change.
func (d *Diagonalizer) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !d.model.IsConstructed() {
		return model.ErrNotConstructed
	}

	h, err := d.model.Hamiltonian()
	if err != nil {
		return err
	}
	values, vectors, err := eigenHermitian(h.Data(), d.model.BasisSize())
	if err != nil {
		return err
	}

	d.values, d.vectors, d.solved = values, vectors, true
	return nil
}

func (d *Diagonalizer) Solved() bool { return d.solved }

func (d *Diagonalizer) BasisSize() int { return d.model.BasisSize() }

func (d *Diagonalizer) checkState(state int) error {
	if !d.solved {
		return ErrNotSolved
	}
	if state < 0 || state >= len(d.values) {
		return fmt.Errorf("%w: state %d, basis size %d", ErrStateOutOfRange, state, len(d.values))
	}
	return nil
}

func (d *Diagonalizer) EigenValue(state int) (float64, error) {
	if err := d.checkState(state); err != nil {
		return 0, err
	}
	return d.values[state], nil
}

// EigenValues returns a copy of the ascending spectrum.
func (d *Diagonalizer) EigenValues() ([]float64, error) {
	if !d.solved {
		return nil, ErrNotSolved
	}
	return append([]float64(nil), d.values...), nil
}

// Amplitude returns component basisIndex of the eigenvector for state.
func (d *Diagonalizer) Amplitude(state, basisIndex int) (complex128, error) {
	if err := d.checkState(state); err != nil {
		return 0, err
	}
	n := len(d.values)
	if basisIndex < 0 || basisIndex >= n {
		return 0, fmt.Errorf("%w: basis index %d", model.ErrUnknownIndex, basisIndex)
	}
	return d.vectors[state*n+basisIndex], nil
}
