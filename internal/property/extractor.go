// Package property translates solver output into physical quantities:
// eigenvalues, wave function amplitudes, probability densities and the
// density of states.
package property

import (
	"fmt"

	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/solver"
)

const (
	DefaultLower      = -1.0
	DefaultUpper      = 1.0
	DefaultResolution = 1000
)

type window struct {
	lower, upper float64
	resolution   int
}

func defaultWindow() window {
	return window{lower: DefaultLower, upper: DefaultUpper, resolution: DefaultResolution}
}

func (w *window) set(lower, upper float64, resolution int) error {
	if err := checkWindow(lower, upper, resolution); err != nil {
		return err
	}
	w.lower, w.upper, w.resolution = lower, upper, resolution
	return nil
}

// Extractor reads properties from a full diagonalization.
type Extractor struct {
	solver *solver.Diagonalizer
	window window
}

func NewExtractor(d *solver.Diagonalizer) *Extractor {
	return &Extractor{solver: d, window: defaultWindow()}
}

// SetEnergyWindow sets the range and bin count used by DOS.
func (e *Extractor) SetEnergyWindow(lower, upper float64, resolution int) error {
	return e.window.set(lower, upper, resolution)
}

func (e *Extractor) EigenValue(state int) (float64, error) {
	return e.solver.EigenValue(state)
}

func (e *Extractor) EigenValues() (EigenValues, error) {
	v, err := e.solver.EigenValues()
	if err != nil {
		return nil, err
	}
	return EigenValues(v), nil
}

// Amplitude returns ψ_state(idx).
func (e *Extractor) Amplitude(state int, idx index.Index) (complex128, error) {
	n, err := e.solver.Model().BasisIndex(idx)
	if err != nil {
		return 0, err
	}
	return e.solver.Amplitude(state, n)
}

// ProbabilityDensity returns |ψ_state(idx)|².
func (e *Extractor) ProbabilityDensity(state int, idx index.Index) (float64, error) {
	a, err := e.Amplitude(state, idx)
	if err != nil {
		return 0, err
	}
	return real(a)*real(a) + imag(a)*imag(a), nil
}

func (e *Extractor) DOS() (*DOS, error) {
	v, err := e.solver.EigenValues()
	if err != nil {
		return nil, err
	}
	return NewDOS(v, e.window.lower, e.window.upper, e.window.resolution)
}

// BlockExtractor reads properties from a block diagonalization. Blocks are
// addressed by their conserved index prefix.
type BlockExtractor struct {
	solver *solver.BlockDiagonalizer
	window window
}

func NewBlockExtractor(b *solver.BlockDiagonalizer) *BlockExtractor {
	return &BlockExtractor{solver: b, window: defaultWindow()}
}

func (e *BlockExtractor) SetEnergyWindow(lower, upper float64, resolution int) error {
	return e.window.set(lower, upper, resolution)
}

func (e *BlockExtractor) NumBlocks() int { return e.solver.NumBlocks() }

func (e *BlockExtractor) EigenValue(block index.Index, state int) (float64, error) {
	return e.solver.EigenValue(block, state)
}

// EigenValues returns every eigenvalue of every block.
func (e *BlockExtractor) EigenValues() (EigenValues, error) {
	v, err := e.solver.EigenValues()
	if err != nil {
		return nil, err
	}
	return EigenValues(v), nil
}

// Amplitude returns ψ_state(idx) for the given block. idx must carry the
// block prefix.
func (e *BlockExtractor) Amplitude(block index.Index, state int, idx index.Index) (complex128, error) {
	if !idx.HasPrefix(block) {
		return 0, fmt.Errorf("%w: %v is not in block %v", ErrUnknownIndex, idx, block)
	}
	n, err := e.solver.Model().BasisIndex(idx)
	if err != nil {
		return 0, err
	}
	return e.solver.Amplitude(block, state, n)
}

func (e *BlockExtractor) DOS() (*DOS, error) {
	v, err := e.solver.EigenValues()
	if err != nil {
		return nil, err
	}
	return NewDOS(v, e.window.lower, e.window.upper, e.window.resolution)
}
