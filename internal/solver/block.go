package solver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/tightbind/internal/index"
	"github.com/san-kum/tightbind/internal/model"
)

// Block is a contiguous range of the basis sharing a conserved index prefix.
type Block struct {
	Prefix index.Index
	First  int
	Size   int

	vecOffset int
}

type entry struct {
	row, col  int
	amplitude complex128
}

// BlockDiagonalizer exploits a conserved index prefix (e.g. momentum) to
// diagonalize independent blocks instead of the full Hamiltonian.
type BlockDiagonalizer struct {
	model   *model.Model
	workers int
	pool    *MatrixPool

	depth   int
	blocks  []Block
	lookup  map[string]int
	values  []float64
	vectors []complex128
	solved  bool
}

type BlockOption func(*BlockDiagonalizer)

// WithWorkers bounds the number of blocks solved concurrently.
func WithWorkers(n int) BlockOption {
	return func(b *BlockDiagonalizer) {
		if n > 0 {
			b.workers = n
		}
	}
}

func NewBlockDiagonalizer(m *model.Model, opts ...BlockOption) *BlockDiagonalizer {
	b := &BlockDiagonalizer{
		model:   m,
		workers: runtime.GOMAXPROCS(0),
		pool:    NewMatrixPool(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BlockDiagonalizer) Model() *model.Model { return b.model }

// partition splits the basis into blocks by the model's block depth. The
// basis is sorted, so each block is contiguous.
func (b *BlockDiagonalizer) partition() ([]int, error) {
	m := b.model
	n := m.BasisSize()
	b.depth = m.BlockDepth()
	b.blocks = b.blocks[:0]
	b.lookup = make(map[string]int)

	blockOf := make([]int, n)
	vecOffset := 0
	for i := 0; i < n; i++ {
		idx, err := m.PhysicalIndex(i)
		if err != nil {
			return nil, err
		}
		prefix := idx[:b.depth]
		last := len(b.blocks) - 1
		if last < 0 || !b.blocks[last].Prefix.Equal(prefix) {
			if last >= 0 {
				vecOffset += b.blocks[last].Size * b.blocks[last].Size
			}
			b.blocks = append(b.blocks, Block{Prefix: prefix.Clone(), First: i, vecOffset: vecOffset})
			b.lookup[prefix.Key()] = len(b.blocks) - 1
			last++
		}
		b.blocks[last].Size++
		blockOf[i] = last
	}
	return blockOf, nil
}

// Run partitions the basis and solves every block. Blocks are distributed
// over at most the configured number of workers; each writes only into its
// own pre-assigned slots of the result slices.
func (b *BlockDiagonalizer) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !b.model.IsConstructed() {
		return model.ErrNotConstructed
	}
	b.solved = false

	blockOf, err := b.partition()
	if err != nil {
		return err
	}

	// bucket the amplitudes by block, evaluating callbacks once up front
	amps := b.model.Amplitudes()
	counts := make([]int, len(b.blocks)+1)
	rows := make([]int, len(amps))
	cols := make([]int, len(amps))
	for i, h := range amps {
		if rows[i], err = b.model.BasisIndex(h.To); err != nil {
			return err
		}
		if cols[i], err = b.model.BasisIndex(h.From); err != nil {
			return err
		}
		if blockOf[rows[i]] != blockOf[cols[i]] {
			return fmt.Errorf("%w: amplitude %v crosses blocks", ErrUnknownBlock, h)
		}
		counts[blockOf[rows[i]]+1]++
	}
	for k := 1; k < len(counts); k++ {
		counts[k] += counts[k-1]
	}
	entries := make([]entry, len(amps))
	fill := append([]int(nil), counts[:len(b.blocks)]...)
	for i, h := range amps {
		blk := blockOf[rows[i]]
		first := b.blocks[blk].First
		entries[fill[blk]] = entry{row: rows[i] - first, col: cols[i] - first, amplitude: h.Amplitude()}
		fill[blk]++
	}

	total := 0
	if last := len(b.blocks) - 1; last >= 0 {
		total = b.blocks[last].vecOffset + b.blocks[last].Size*b.blocks[last].Size
	}
	b.values = make([]float64, b.model.BasisSize())
	b.vectors = make([]complex128, total)

	chunk := len(b.blocks) / (4 * b.workers)
	if chunk < 1 {
		chunk = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for start := 0; start < len(b.blocks); start += chunk {
		end := start + chunk
		if end > len(b.blocks) {
			end = len(b.blocks)
		}
		start := start
		g.Go(func() error {
			for k := start; k < end; k++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := b.solveBlock(k, entries[counts[k]:counts[k+1]]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.solved = true
	return nil
}

func (b *BlockDiagonalizer) solveBlock(k int, entries []entry) error {
	blk := b.blocks[k]
	n := blk.Size

	buf := b.pool.Get(n * n)
	defer b.pool.Put(buf)
	h := *buf
	for _, e := range entries {
		h[e.row*n+e.col] += e.amplitude
	}

	values, vectors, err := eigenHermitian(h, n)
	if err != nil {
		return fmt.Errorf("block %v: %w", blk.Prefix, err)
	}
	copy(b.values[blk.First:blk.First+n], values)
	copy(b.vectors[blk.vecOffset:blk.vecOffset+n*n], vectors)
	return nil
}

func (b *BlockDiagonalizer) Solved() bool { return b.solved }

func (b *BlockDiagonalizer) NumBlocks() int { return len(b.blocks) }

// Depth is the length of the block prefix found by the last Run.
func (b *BlockDiagonalizer) Depth() int { return b.depth }

// BlockOf finds the block whose prefix is blockIndex.
func (b *BlockDiagonalizer) BlockOf(blockIndex index.Index) (Block, error) {
	if !b.solved {
		return Block{}, ErrNotSolved
	}
	if len(blockIndex) != b.depth {
		return Block{}, fmt.Errorf("%w: %v, block indices have %d subindices", ErrUnknownBlock, blockIndex, b.depth)
	}
	k, ok := b.lookup[blockIndex.Key()]
	if !ok {
		return Block{}, fmt.Errorf("%w: %v", ErrUnknownBlock, blockIndex)
	}
	return b.blocks[k], nil
}

func (b *BlockDiagonalizer) EigenValue(blockIndex index.Index, state int) (float64, error) {
	blk, err := b.BlockOf(blockIndex)
	if err != nil {
		return 0, err
	}
	if state < 0 || state >= blk.Size {
		return 0, fmt.Errorf("%w: state %d, block %v has %d states", ErrStateOutOfRange, state, blockIndex, blk.Size)
	}
	return b.values[blk.First+state], nil
}

// EigenValues returns every eigenvalue, ascending within each block and
// blocks in basis order.
func (b *BlockDiagonalizer) EigenValues() ([]float64, error) {
	if !b.solved {
		return nil, ErrNotSolved
	}
	return append([]float64(nil), b.values...), nil
}

// Amplitude returns the component at basis index basisIndex of eigenvector
// state in the given block.
func (b *BlockDiagonalizer) Amplitude(blockIndex index.Index, state, basisIndex int) (complex128, error) {
	blk, err := b.BlockOf(blockIndex)
	if err != nil {
		return 0, err
	}
	if state < 0 || state >= blk.Size {
		return 0, fmt.Errorf("%w: state %d, block %v has %d states", ErrStateOutOfRange, state, blockIndex, blk.Size)
	}
	local := basisIndex - blk.First
	if local < 0 || local >= blk.Size {
		return 0, fmt.Errorf("%w: basis index %d not in block %v", model.ErrUnknownIndex, basisIndex, blockIndex)
	}
	return b.vectors[blk.vecOffset+state*blk.Size+local], nil
}
