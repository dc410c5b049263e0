// Package index defines the integer tuples that address lattice sites,
// momentum-mesh cells and orbitals.
package index

import (
	"strconv"
	"strings"
)

// Index identifies a site. The trailing component is often a sub-lattice or
// orbital number. Treat an Index as immutable once handed to a model.
type Index []int

func New(subindices ...int) Index {
	idx := make(Index, len(subindices))
	copy(idx, subindices)
	return idx
}

func (i Index) Clone() Index {
	c := make(Index, len(i))
	copy(c, i)
	return c
}

func (i Index) Equal(other Index) bool {
	if len(i) != len(other) {
		return false
	}
	for n := range i {
		if i[n] != other[n] {
			return false
		}
	}
	return true
}

// Compare orders indices lexicographically; on a common prefix the shorter
// index sorts first.
func (i Index) Compare(other Index) int {
	n := len(i)
	if len(other) < n {
		n = len(other)
	}
	for k := 0; k < n; k++ {
		switch {
		case i[k] < other[k]:
			return -1
		case i[k] > other[k]:
			return 1
		}
	}
	switch {
	case len(i) < len(other):
		return -1
	case len(i) > len(other):
		return 1
	}
	return 0
}

// HasPrefix reports whether the first len(prefix) subindices equal prefix.
func (i Index) HasPrefix(prefix Index) bool {
	if len(prefix) > len(i) {
		return false
	}
	for k := range prefix {
		if i[k] != prefix[k] {
			return false
		}
	}
	return true
}

// Key is a compact map key for the index.
func (i Index) Key() string {
	var b strings.Builder
	for k, v := range i {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

func (i Index) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for k, v := range i {
		if k > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('}')
	return b.String()
}
