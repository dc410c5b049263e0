package solver

import "sync"

// MatrixPool recycles dense block buffers between block solves.
type MatrixPool struct {
	pool sync.Pool
}

func NewMatrixPool() *MatrixPool {
	return &MatrixPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]complex128, 0, 16)
				return &buf
			},
		},
	}
}

// Get returns a zeroed buffer of length n.
func (p *MatrixPool) Get(n int) *[]complex128 {
	buf := p.pool.Get().(*[]complex128)
	if cap(*buf) < n {
		*buf = make([]complex128, n)
		return buf
	}
	*buf = (*buf)[:n]
	for i := range *buf {
		(*buf)[i] = 0
	}
	return buf
}

func (p *MatrixPool) Put(buf *[]complex128) {
	if buf != nil {
		p.pool.Put(buf)
	}
}
