package model

import (
	"fmt"

	"github.com/san-kum/tightbind/internal/index"
)

// LatticeBuilder enumerates a hyper-rectangular lattice and emits on-site and
// nearest-neighbor amplitudes for every site.
type LatticeBuilder struct {
	extent   []int
	hopping  AmplitudeFunc
	onSite   AmplitudeFunc
	filter   IndexFilter
	periodic []bool
	noHC     bool
}

type BuilderOption func(*LatticeBuilder)

// WithHopping sets a uniform nearest-neighbor amplitude of -t.
func WithHopping(t complex128) BuilderOption {
	return func(b *LatticeBuilder) {
		b.hopping = func(_, _ index.Index) complex128 { return -t }
	}
}

// WithHoppingFunc sets a position-dependent nearest-neighbor amplitude.
func WithHoppingFunc(fn AmplitudeFunc) BuilderOption {
	return func(b *LatticeBuilder) { b.hopping = fn }
}

func WithOnSite(v complex128) BuilderOption {
	return func(b *LatticeBuilder) {
		b.onSite = func(_, _ index.Index) complex128 { return v }
	}
}

func WithOnSiteFunc(fn AmplitudeFunc) BuilderOption {
	return func(b *LatticeBuilder) { b.onSite = fn }
}

func WithSiteFilter(f IndexFilter) BuilderOption {
	return func(b *LatticeBuilder) { b.filter = f }
}

// WithPeriodic wraps neighbors around on the listed dimensions.
func WithPeriodic(dims ...int) BuilderOption {
	return func(b *LatticeBuilder) {
		for _, d := range dims {
			if d >= 0 && d < len(b.periodic) {
				b.periodic[d] = true
			}
		}
	}
}

// WithoutHC emits only the forward hopping direction. The resulting model is
// not Hermitian.
func WithoutHC() BuilderOption {
	return func(b *LatticeBuilder) { b.noHC = true }
}

func NewLatticeBuilder(extent []int, opts ...BuilderOption) (*LatticeBuilder, error) {
	if len(extent) < 1 || len(extent) > 3 {
		return nil, fmt.Errorf("%w: rank %d", ErrInvalidExtent, len(extent))
	}
	for _, n := range extent {
		if n < 1 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExtent, extent)
		}
	}

	b := &LatticeBuilder{
		extent:   append([]int(nil), extent...),
		periodic: make([]bool, len(extent)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Sites lists every lattice site in lexicographic order, including filtered ones.
func (b *LatticeBuilder) Sites() []index.Index {
	total := 1
	for _, n := range b.extent {
		total *= n
	}
	sites := make([]index.Index, 0, total)
	cur := make(index.Index, len(b.extent))
	for i := 0; i < total; i++ {
		sites = append(sites, cur.Clone())
		for d := len(cur) - 1; d >= 0; d-- {
			cur[d]++
			if cur[d] < b.extent[d] {
				break
			}
			cur[d] = 0
		}
	}
	return sites
}

func (b *LatticeBuilder) included(idx index.Index) bool {
	return b.filter == nil || b.filter.Included(idx)
}

// Build emits the amplitudes into a new bounded, constructed model.
func (b *LatticeBuilder) Build() (*Model, error) {
	m := New(WithBounds(b.extent...), WithFilter(b.filter))

	for _, site := range b.Sites() {
		if !b.included(site) {
			continue
		}
		if b.onSite != nil {
			if err := m.Add(NewHoppingFunc(b.onSite, site, site)); err != nil {
				return nil, err
			}
		}
		if b.hopping == nil {
			continue
		}
		for d := range b.extent {
			neighbor, ok := b.neighbor(site, d)
			if !ok || !b.included(neighbor) {
				continue
			}
			h := NewHoppingFunc(b.hopping, neighbor, site)
			var err error
			if b.noHC {
				err = m.Add(h)
			} else {
				err = m.AddHC(h)
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if err := m.Construct(); err != nil {
		return nil, err
	}
	return m, nil
}

func (b *LatticeBuilder) neighbor(site index.Index, d int) (index.Index, bool) {
	n := site.Clone()
	n[d]++
	if n[d] < b.extent[d] {
		return n, true
	}
	// a two-site ring would double the bond
	if !b.periodic[d] || b.extent[d] < 3 {
		return nil, false
	}
	n[d] = 0
	return n, true
}
