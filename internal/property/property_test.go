package property

import (
	"context"
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
	"github.com/san-kum/tightbind/internal/solver"
)

func solvedSquare(t *testing.T, opts ...model.BuilderOption) (*model.Model, *Extractor) {
	t.Helper()
	b, err := model.NewLatticeBuilder([]int{5, 5}, append([]model.BuilderOption{model.WithHopping(1)}, opts...)...)
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)

	d := solver.NewDiagonalizer(m)
	require.NoError(t, d.Run(context.Background()))
	return m, NewExtractor(d)
}

func TestNewDOS(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{"interior", []float64{-0.9, 0.1, 0.2}, []float64{1, 0, 2, 0}},
		{"upper edge in last bin", []float64{1}, []float64{0, 0, 0, 1}},
		{"lower edge in first bin", []float64{-1}, []float64{1, 0, 0, 0}},
		{"outside ignored", []float64{-1.5, 2}, []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDOS(tt.values, -1, 1, 4)
			require.NoError(t, err)
			dE := d.Step()
			require.InDelta(t, 0.5, dE, 1e-12)
			for i, w := range tt.want {
				assert.InDelta(t, w/dE, d.Data[i], 1e-12, "bin %d", i)
			}
		})
	}
}

func TestNewDOS_InvalidWindow(t *testing.T) {
	for _, w := range []struct {
		lower, upper float64
		res          int
	}{
		{1, -1, 10},
		{0, 0, 10},
		{-1, 1, 0},
		{math.Inf(-1), 1, 10},
	} {
		_, err := NewDOS(nil, w.lower, w.upper, w.res)
		assert.True(t, errors.Is(err, ErrInvalidWindow), "%+v", w)
	}
}

func TestExtractor_DOSIntegratesToStateCount(t *testing.T) {
	m, e := solvedSquare(t)
	require.NoError(t, e.SetEnergyWindow(-5, 5, 200))

	d, err := e.DOS()
	require.NoError(t, err)
	assert.Equal(t, 200, d.Resolution())
	assert.InDelta(t, float64(m.BasisSize()), d.Integral(), 1e-9)
	assert.InDelta(t, -5, d.Energy(0), 1e-12)
	assert.Len(t, d.Energies(), 200)

	_, err = d.At(200)
	assert.True(t, errors.Is(err, ErrStateOutOfRange))
}

func TestExtractor_ProbabilityDensityNormalized(t *testing.T) {
	m, e := solvedSquare(t)

	for _, state := range []int{0, 7, m.BasisSize() - 1} {
		sum := 0.0
		for n := 0; n < m.BasisSize(); n++ {
			idx, err := m.PhysicalIndex(n)
			require.NoError(t, err)
			p, err := e.ProbabilityDensity(state, idx)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1, sum, 1e-9, "state %d", state)
	}

	values, err := e.EigenValues()
	require.NoError(t, err)
	lo, hi := values.Bounds()
	assert.Less(t, lo, hi)
	e0, err := e.EigenValue(0)
	require.NoError(t, err)
	assert.Equal(t, lo, e0)
}

func TestExtractor_FilteredSitesSkipped(t *testing.T) {
	center := model.FilterFunc(func(idx index.Index) bool {
		return !(idx[0] == 2 && idx[1] == 2)
	})
	m, e := solvedSquare(t, model.WithSiteFilter(center))
	assert.Equal(t, 24, m.BasisSize())

	_, err := e.ProbabilityDensity(0, index.New(2, 2))
	assert.True(t, errors.Is(err, ErrUnknownIndex))

	_, err = e.ProbabilityDensity(0, index.New(2, 1))
	assert.NoError(t, err)
}

func TestExtractor_StateOutOfRange(t *testing.T) {
	m, e := solvedSquare(t)
	_, err := e.EigenValue(m.BasisSize())
	assert.True(t, errors.Is(err, ErrStateOutOfRange))
	_, err = e.Amplitude(-1, index.New(0, 0))
	assert.True(t, errors.Is(err, ErrStateOutOfRange))
}

func TestExtractor_NotSolved(t *testing.T) {
	b, err := model.NewLatticeBuilder([]int{3}, model.WithHopping(1))
	require.NoError(t, err)
	m, err := b.Build()
	require.NoError(t, err)

	e := NewExtractor(solver.NewDiagonalizer(m))
	_, err = e.DOS()
	assert.True(t, errors.Is(err, ErrNotSolved))
	_, err = e.EigenValues()
	assert.True(t, errors.Is(err, ErrNotSolved))
}

func TestBlockExtractor(t *testing.T) {
	// one-band ring in momentum space: each k is its own 1×1 block
	const n = 8
	m := model.New()
	for k := 0; k < n; k++ {
		e := -2 * math.Cos(2*math.Pi*float64(k)/n)
		require.NoError(t, m.Add(model.NewHopping(complex(e, 0), index.New(k), index.New(k))))
	}
	require.NoError(t, m.Construct())

	b := solver.NewBlockDiagonalizer(m)
	require.NoError(t, b.Run(context.Background()))
	e := NewBlockExtractor(b)
	assert.Equal(t, n, e.NumBlocks())

	v, err := e.EigenValue(index.New(2), 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, v, 1e-12)

	a, err := e.Amplitude(index.New(2), 0, index.New(2))
	require.NoError(t, err)
	assert.InDelta(t, 1, cmplx.Abs(a), 1e-12)

	_, err = e.Amplitude(index.New(2), 0, index.New(3))
	assert.True(t, errors.Is(err, ErrUnknownIndex))
	_, err = e.EigenValue(index.New(2), 1)
	assert.True(t, errors.Is(err, ErrStateOutOfRange))
	_, err = e.EigenValue(index.New(n), 0)
	assert.True(t, errors.Is(err, ErrUnknownBlock))

	require.NoError(t, e.SetEnergyWindow(-3, 3, 60))
	d, err := e.DOS()
	require.NoError(t, err)
	assert.InDelta(t, n, d.Integral(), 1e-9)

	assert.True(t, errors.Is(e.SetEnergyWindow(3, -3, 60), ErrInvalidWindow))
}
