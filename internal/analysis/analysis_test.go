package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/property"
)

func TestGaussianSmooth_PreservesConstant(t *testing.T) {
	data := make([]float64, 50)
	for i := range data {
		data[i] = 3.5
	}
	out, err := GaussianSmooth(data, 0.1, 0.3, 11)
	require.NoError(t, err)
	for i, v := range out {
		assert.InDelta(t, 3.5, v, 1e-12, "sample %d", i)
	}
}

func TestGaussianSmooth_SpreadsPeak(t *testing.T) {
	data := make([]float64, 41)
	data[20] = 1
	out, err := GaussianSmooth(data, 1, 2, 21)
	require.NoError(t, err)

	assert.Less(t, out[20], 1.0)
	assert.Greater(t, out[18], 0.0)
	assert.InDelta(t, out[17], out[23], 1e-12, "kernel is symmetric")

	sum := 0.0
	for _, v := range out {
		sum += v
	}
	assert.InDelta(t, 1, sum, 1e-3)
}

func TestGaussianSmooth_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		sigma  float64
		window int
		err    error
	}{
		{"even window", 1, 10, ErrInvalidWindow},
		{"zero window", 1, 0, ErrInvalidWindow},
		{"zero sigma", 0, 11, ErrInvalidSigma},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GaussianSmooth([]float64{1, 2, 3}, 1, tt.sigma, tt.window)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestNormalizeAndSmoothDOS(t *testing.T) {
	values := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		values = append(values, -2*math.Cos(2*math.Pi*float64(i)/100))
	}
	dos, err := property.NewDOS(values, -3, 3, 300)
	require.NoError(t, err)

	NormalizeDOS(dos, len(values))
	assert.InDelta(t, 1, dos.Integral(), 1e-9)

	smoothed, err := SmoothDOS(dos, 0.05, 31)
	require.NoError(t, err)
	assert.InDelta(t, 1, smoothed.Integral(), 1e-3)
	assert.Equal(t, dos.Lower, smoothed.Lower)
	assert.NotSame(t, &dos.Data[0], &smoothed.Data[0])
}

func TestStackDensities(t *testing.T) {
	d, err := array.New[float64](2, 3)
	require.NoError(t, err)
	copy(d.Data(), []float64{0.5, 1, 0.5, 0.25, 0.5, 0.25})

	require.NoError(t, StackDensities(d, property.EigenValues{1, 2, 3}, 0, 4))

	// scale = (4-0) / (1*2) / 2 = 1
	assert.InDelta(t, 2.0, d.MustAt(0, 1), 1e-12)
	assert.InDelta(t, 1.5, d.MustAt(0, 0), 1e-12)
	assert.InDelta(t, 2.5, d.MustAt(1, 1), 1e-12)

	flat, _ := array.New[float64](3)
	assert.True(t, errors.Is(StackDensities(flat, property.EigenValues{1, 2, 3}, 0, 1), array.ErrBadShape))

	short, _ := array.New[float64](4, 2)
	assert.True(t, errors.Is(StackDensities(short, property.EigenValues{1}, 0, 1), property.ErrStateOutOfRange))
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 7.0, hi)

	lo, hi = Bounds(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}
