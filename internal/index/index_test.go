package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Index
		want int
	}{
		{"equal", New(1, 2), New(1, 2), 0},
		{"first smaller", New(0, 5), New(1, 0), -1},
		{"second larger", New(1, 3), New(1, 2), 1},
		{"prefix shorter", New(1), New(1, 0), -1},
		{"prefix longer", New(1, 0), New(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
		})
	}
}

func TestIndex_CloneIsIndependent(t *testing.T) {
	a := New(1, 2, 3)
	b := a.Clone()
	b[0] = 9
	assert.Equal(t, 1, a[0])
	assert.True(t, a.Equal(New(1, 2, 3)))
}

func TestIndex_Formatting(t *testing.T) {
	idx := New(3, -1, 0)
	assert.Equal(t, "{3, -1, 0}", idx.String())
	assert.Equal(t, "3,-1,0", idx.Key())
	assert.NotEqual(t, New(1, 11).Key(), New(11, 1).Key())
}

func TestIndex_HasPrefix(t *testing.T) {
	idx := New(4, 5, 1)
	assert.True(t, idx.HasPrefix(New(4, 5)))
	assert.True(t, idx.HasPrefix(Index{}))
	assert.False(t, idx.HasPrefix(New(4, 6)))
	assert.False(t, idx.HasPrefix(New(4, 5, 1, 0)))
}
