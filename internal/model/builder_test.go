package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/tightbind/internal/index"
)

func TestLatticeBuilder_SquareGridCouplings(t *testing.T) {
	b, err := NewLatticeBuilder([]int{2, 2}, WithHopping(1))
	require.NoError(t, err)

	m, err := b.Build()
	require.NoError(t, err)

	// 4 undirected bonds, both directions
	require.Len(t, m.Amplitudes(), 8)
	for _, h := range m.Amplitudes() {
		assert.Equal(t, complex(-1, 0), h.Amplitude())
	}
	assert.Equal(t, 4, m.BasisSize())
}

func TestLatticeBuilder_OnSiteTerms(t *testing.T) {
	b, err := NewLatticeBuilder([]int{4, 3}, WithHopping(1), WithOnSite(4))
	require.NoError(t, err)

	m, err := b.Build()
	require.NoError(t, err)

	// 12 on-site + 2*(3*3 + 4*2) hoppings
	assert.Len(t, m.Amplitudes(), 12+34)

	h, err := m.Hamiltonian()
	require.NoError(t, err)
	assert.Equal(t, complex(4, 0), h.MustAt(0, 0))
}

func TestLatticeBuilder_WithoutHC(t *testing.T) {
	b, err := NewLatticeBuilder([]int{3}, WithHopping(1), WithoutHC())
	require.NoError(t, err)

	m, err := b.Build()
	require.NoError(t, err)
	require.Len(t, m.Amplitudes(), 2)

	h, err := m.Hamiltonian()
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), h.MustAt(1, 0))
	assert.Equal(t, complex(0, 0), h.MustAt(0, 1))
}

func TestLatticeBuilder_Periodic(t *testing.T) {
	b, err := NewLatticeBuilder([]int{4}, WithHopping(1), WithPeriodic(0))
	require.NoError(t, err)

	m, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, m.Amplitudes(), 8)

	h, err := m.Hamiltonian()
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), h.MustAt(0, 3))
}

func TestLatticeBuilder_FilterDropsSites(t *testing.T) {
	excludeCenter := FilterFunc(func(idx index.Index) bool {
		return !(idx[0] == 1 && idx[1] == 1)
	})
	b, err := NewLatticeBuilder([]int{3, 3}, WithHopping(1), WithSiteFilter(excludeCenter))
	require.NoError(t, err)

	m, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 8, m.BasisSize())
	assert.False(t, m.Contains(index.New(1, 1)))
	for _, h := range m.Amplitudes() {
		assert.False(t, h.To.Equal(index.New(1, 1)))
		assert.False(t, h.From.Equal(index.New(1, 1)))
	}
	// ring of 8 sites: 8 bonds
	assert.Len(t, m.Amplitudes(), 16)
}

func TestNewLatticeBuilder_InvalidExtent(t *testing.T) {
	for _, extent := range [][]int{nil, {0}, {2, -1}, {1, 1, 1, 1}} {
		_, err := NewLatticeBuilder(extent)
		assert.True(t, errors.Is(err, ErrInvalidExtent), "extent %v", extent)
	}
}

func TestLatticeBuilder_Sites(t *testing.T) {
	b, err := NewLatticeBuilder([]int{2, 3})
	require.NoError(t, err)

	sites := b.Sites()
	require.Len(t, sites, 6)
	assert.True(t, sites[0].Equal(index.New(0, 0)))
	assert.True(t, sites[1].Equal(index.New(0, 1)))
	assert.True(t, sites[5].Equal(index.New(1, 2)))
}
