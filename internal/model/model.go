package model

import (
	"fmt"
	"sort"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/index"
)

// Model collects hopping amplitudes and, once constructed, maps every
// physical index that appears in them onto a linear basis.
type Model struct {
	amplitudes []HoppingAmplitude
	filter     IndexFilter
	bounds     []int

	constructed bool
	basis       map[string]int
	indices     []index.Index
}

type Option func(*Model)

// WithFilter drops every amplitude touching an excluded index.
func WithFilter(f IndexFilter) Option {
	return func(m *Model) { m.filter = f }
}

// WithBounds declares the lattice extent. Subindex d of every index must lie
// in [0, extent[d]); trailing subindices beyond the extent are unchecked.
func WithBounds(extent ...int) Option {
	return func(m *Model) {
		m.bounds = make([]int, len(extent))
		copy(m.bounds, extent)
	}
}

func New(opts ...Option) *Model {
	m := &Model{amplitudes: make([]HoppingAmplitude, 0)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Add(h HoppingAmplitude) error {
	if m.constructed {
		return ErrConstructed
	}
	if len(h.To) == 0 || len(h.From) == 0 {
		return ErrEmptyIndex
	}
	if m.filter != nil && (!m.filter.Included(h.To) || !m.filter.Included(h.From)) {
		return nil
	}
	if err := m.checkBounds(h.To); err != nil {
		return err
	}
	if err := m.checkBounds(h.From); err != nil {
		return err
	}
	m.amplitudes = append(m.amplitudes, h)
	return nil
}

// AddHC adds h together with its Hermitian conjugate.
func (m *Model) AddHC(h HoppingAmplitude) error {
	if err := m.Add(h); err != nil {
		return err
	}
	return m.Add(h.HermitianConjugate())
}

func (m *Model) checkBounds(idx index.Index) error {
	if m.bounds == nil {
		return nil
	}
	if len(idx) < len(m.bounds) {
		return fmt.Errorf("%w: %v has fewer subindices than extent %v", ErrOutOfBounds, idx, m.bounds)
	}
	for d, n := range m.bounds {
		if idx[d] < 0 || idx[d] >= n {
			return fmt.Errorf("%w: %v outside extent %v", ErrOutOfBounds, idx, m.bounds)
		}
	}
	return nil
}

// Construct freezes the model and builds the basis in lexicographic index order.
func (m *Model) Construct() error {
	if m.constructed {
		return ErrConstructed
	}
	if len(m.amplitudes) == 0 {
		return ErrEmptyModel
	}

	seen := make(map[string]index.Index)
	for _, h := range m.amplitudes {
		seen[h.To.Key()] = h.To
		seen[h.From.Key()] = h.From
	}

	m.indices = make([]index.Index, 0, len(seen))
	for _, idx := range seen {
		m.indices = append(m.indices, idx)
	}
	sort.Slice(m.indices, func(i, j int) bool {
		return m.indices[i].Compare(m.indices[j]) < 0
	})

	m.basis = make(map[string]int, len(m.indices))
	for n, idx := range m.indices {
		m.basis[idx.Key()] = n
	}
	m.constructed = true
	return nil
}

func (m *Model) IsConstructed() bool { return m.constructed }

func (m *Model) BasisSize() int { return len(m.indices) }

func (m *Model) BasisIndex(idx index.Index) (int, error) {
	if !m.constructed {
		return 0, ErrNotConstructed
	}
	n, ok := m.basis[idx.Key()]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownIndex, idx)
	}
	return n, nil
}

func (m *Model) PhysicalIndex(n int) (index.Index, error) {
	if !m.constructed {
		return nil, ErrNotConstructed
	}
	if n < 0 || n >= len(m.indices) {
		return nil, fmt.Errorf("%w: basis index %d", ErrUnknownIndex, n)
	}
	return m.indices[n].Clone(), nil
}

// Contains reports whether idx is part of the constructed basis.
func (m *Model) Contains(idx index.Index) bool {
	_, ok := m.basis[idx.Key()]
	return ok
}

// Amplitudes returns the stored amplitudes. The slice must not be modified.
func (m *Model) Amplitudes() []HoppingAmplitude { return m.amplitudes }

// Hamiltonian assembles the dense matrix H[to][from], accumulating repeated pairs.
func (m *Model) Hamiltonian() (*array.Array[complex128], error) {
	if !m.constructed {
		return nil, ErrNotConstructed
	}
	n := len(m.indices)
	h, err := array.New[complex128](n, n)
	if err != nil {
		return nil, err
	}
	data := h.Data()
	for _, a := range m.amplitudes {
		row := m.basis[a.To.Key()]
		col := m.basis[a.From.Key()]
		data[row*n+col] += a.Amplitude()
	}
	return h, nil
}

// BlockDepth returns the length of the longest index prefix that no amplitude
// changes. Basis states sharing such a prefix form an independent block.
func (m *Model) BlockDepth() int {
	if len(m.indices) == 0 {
		return 0
	}
	depth := len(m.indices[0])
	for _, idx := range m.indices[1:] {
		if len(idx) < depth {
			depth = len(idx)
		}
	}
	for _, h := range m.amplitudes {
		d := 0
		for d < depth && h.To[d] == h.From[d] {
			d++
		}
		depth = d
		if depth == 0 {
			break
		}
	}
	return depth
}
