package property

import (
	"fmt"
	"math"
)

// DOS is a density of states histogram over [Lower, Upper].
type DOS struct {
	Lower float64
	Upper float64
	Data  []float64
}

// NewDOS bins the eigenvalues inside [lower, upper] into resolution bins.
// Each eigenvalue contributes 1/dE, so the histogram integrates to the number
// of states in the window.
func NewDOS(values []float64, lower, upper float64, resolution int) (*DOS, error) {
	if err := checkWindow(lower, upper, resolution); err != nil {
		return nil, err
	}
	d := &DOS{Lower: lower, Upper: upper, Data: make([]float64, resolution)}
	dE := d.Step()
	for _, e := range values {
		if e < lower || e > upper {
			continue
		}
		bin := int(math.Floor((e - lower) / dE))
		if bin >= resolution {
			bin = resolution - 1
		}
		d.Data[bin] += 1 / dE
	}
	return d, nil
}

func checkWindow(lower, upper float64, resolution int) error {
	if resolution < 1 {
		return fmt.Errorf("%w: resolution %d", ErrInvalidWindow, resolution)
	}
	if !(upper > lower) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidWindow, lower, upper)
	}
	return nil
}

func (d *DOS) Resolution() int { return len(d.Data) }

// Step is the bin width dE.
func (d *DOS) Step() float64 { return (d.Upper - d.Lower) / float64(len(d.Data)) }

// Energy returns the lower edge of bin i.
func (d *DOS) Energy(i int) float64 { return d.Lower + float64(i)*d.Step() }

// Energies returns the lower edge of every bin, for use as a plot axis.
func (d *DOS) Energies() []float64 {
	e := make([]float64, len(d.Data))
	for i := range e {
		e[i] = d.Energy(i)
	}
	return e
}

func (d *DOS) At(i int) (float64, error) {
	if i < 0 || i >= len(d.Data) {
		return 0, fmt.Errorf("%w: bin %d of %d", ErrStateOutOfRange, i, len(d.Data))
	}
	return d.Data[i], nil
}

// Integral is Σ Data·dE.
func (d *DOS) Integral() float64 {
	s := 0.0
	for _, v := range d.Data {
		s += v
	}
	return s * d.Step()
}

func (d *DOS) Clone() *DOS {
	return &DOS{Lower: d.Lower, Upper: d.Upper, Data: append([]float64(nil), d.Data...)}
}

// EigenValues is an ascending list of energies.
type EigenValues []float64

func (e EigenValues) Len() int { return len(e) }

func (e EigenValues) At(state int) (float64, error) {
	if state < 0 || state >= len(e) {
		return 0, fmt.Errorf("%w: state %d, %d values", ErrStateOutOfRange, state, len(e))
	}
	return e[state], nil
}

// Bounds returns the smallest and largest eigenvalue.
func (e EigenValues) Bounds() (float64, float64) {
	if len(e) == 0 {
		return 0, 0
	}
	lo, hi := e[0], e[0]
	for _, v := range e[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
