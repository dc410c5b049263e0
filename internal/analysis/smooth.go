package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/tightbind/internal/property"
)

var (
	ErrInvalidWindow = errors.New("analysis: smoothing window must be odd and positive")
	ErrInvalidSigma  = errors.New("analysis: sigma must be positive")
)

// GaussianSmooth convolves data, sampled at spacing dx, with a Gaussian of
// standard deviation sigma truncated to window samples. Near the edges the
// kernel is renormalized over the samples that exist, so a constant input
// stays constant.
func GaussianSmooth(data []float64, dx, sigma float64, window int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	if sigma <= 0 || dx <= 0 {
		return nil, fmt.Errorf("%w: sigma=%v dx=%v", ErrInvalidSigma, sigma, dx)
	}

	half := window / 2
	kernel := make([]float64, window)
	s := sigma / dx
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-x * x / (2 * s * s))
	}

	out := make([]float64, len(data))
	for i := range data {
		sum, weight := 0.0, 0.0
		for j, w := range kernel {
			k := i + j - half
			if k < 0 || k >= len(data) {
				continue
			}
			sum += w * data[k]
			weight += w
		}
		out[i] = sum / weight
	}
	return out, nil
}

// SmoothDOS returns a Gaussian-smoothed copy of d. sigma is in energy units.
func SmoothDOS(d *property.DOS, sigma float64, window int) (*property.DOS, error) {
	data, err := GaussianSmooth(d.Data, d.Step(), sigma, window)
	if err != nil {
		return nil, err
	}
	out := d.Clone()
	out.Data = data
	return out, nil
}

// NormalizeDOS divides every bin by the basis size, so a DOS with all states
// inside the window integrates to one.
func NormalizeDOS(d *property.DOS, basisSize int) {
	if basisSize <= 0 {
		return
	}
	for i := range d.Data {
		d.Data[i] /= float64(basisSize)
	}
}
