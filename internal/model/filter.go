package model

import "github.com/san-kum/tightbind/internal/index"

// IndexFilter restricts a model to a sub-region of the lattice.
type IndexFilter interface {
	Included(idx index.Index) bool
}

// FilterFunc adapts a plain function to IndexFilter.
type FilterFunc func(idx index.Index) bool

func (f FilterFunc) Included(idx index.Index) bool { return f(idx) }
