package brillouin

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/tightbind/internal/index"
)

var (
	// ErrInvalidBasis indicates a basis that is not 2 or 3 independent square vectors.
	ErrInvalidBasis = errors.New("brillouin: invalid reciprocal basis")

	// ErrDegenerateBasis indicates real-space vectors spanning zero volume.
	ErrDegenerateBasis = errors.New("brillouin: degenerate lattice vectors")

	// ErrInvalidResolution indicates a mesh resolution with wrong rank or a zero entry.
	ErrInvalidResolution = errors.New("brillouin: invalid mesh resolution")

	// ErrDimensionMismatch indicates a momentum coordinate of the wrong dimension.
	ErrDimensionMismatch = errors.New("brillouin: dimension mismatch")
)

// MeshType selects where the mesh points sit inside their cells.
type MeshType int

const (
	// Nodal places points on the cell corners; Γ is a mesh point.
	Nodal MeshType = iota
	// Interior places points at the cell centers.
	Interior
)

func (t MeshType) String() string {
	switch t {
	case Nodal:
		return "nodal"
	case Interior:
		return "interior"
	default:
		return fmt.Sprintf("MeshType(%d)", int(t))
	}
}

// nodeTolerance is how close (in units of one cell) a point must be to a
// cell boundary to be snapped onto it.
const nodeTolerance = 1e-9

// MeshPoint is a momentum and the mesh cell that owns it.
type MeshPoint struct {
	K    []float64
	Cell index.Index
}

// Zone is the parallelepiped spanned by a reciprocal basis. It is immutable
// after New and safe for concurrent lookups.
type Zone struct {
	basis    [][]float64
	inverse  *mat.Dense
	meshType MeshType
}

// New creates a zone from 2 or 3 basis vectors, each with as many components
// as there are vectors.
func New(basis [][]float64, meshType MeshType) (*Zone, error) {
	dim := len(basis)
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w: need 2 or 3 vectors, got %d", ErrInvalidBasis, dim)
	}

	// columns of b are the basis vectors, so k = b·f
	b := mat.NewDense(dim, dim, nil)
	stored := make([][]float64, dim)
	for i, v := range basis {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d components", ErrInvalidBasis, i, len(v))
		}
		stored[i] = append([]float64(nil), v...)
		for j, c := range v {
			b.Set(j, i, c)
		}
	}

	if math.Abs(mat.Det(b)) < 1e-12 {
		return nil, fmt.Errorf("%w: vectors are linearly dependent", ErrInvalidBasis)
	}
	var inv mat.Dense
	if err := inv.Inverse(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasis, err)
	}

	return &Zone{basis: stored, inverse: &inv, meshType: meshType}, nil
}

func (z *Zone) Dimension() int { return len(z.basis) }

func (z *Zone) MeshType() MeshType { return z.meshType }

// Basis returns a copy of the basis vectors.
func (z *Zone) Basis() [][]float64 {
	out := make([][]float64, len(z.basis))
	for i, v := range z.basis {
		out[i] = append([]float64(nil), v...)
	}
	return out
}

func (z *Zone) checkResolution(resolution []int) error {
	if len(resolution) != len(z.basis) {
		return fmt.Errorf("%w: rank %d for a %d-dimensional zone", ErrInvalidResolution, len(resolution), len(z.basis))
	}
	for _, r := range resolution {
		if r < 1 {
			return fmt.Errorf("%w: %v", ErrInvalidResolution, resolution)
		}
	}
	return nil
}

// offset shifts mesh coordinates so the mesh is centered on Γ.
func (z *Zone) offset(r int) float64 {
	if z.meshType == Nodal {
		return float64(r / 2)
	}
	return float64(r) / 2
}

// fraction is the fractional coordinate of cell n along a dimension of size r.
func (z *Zone) fraction(n, r int) float64 {
	if z.meshType == Nodal {
		return float64(n-r/2) / float64(r)
	}
	return (float64(n) + 0.5 - float64(r)/2) / float64(r)
}

// Mesh samples one fundamental domain with prod(resolution) points, in
// lexicographic cell order.
func (z *Zone) Mesh(resolution []int) ([]MeshPoint, error) {
	if err := z.checkResolution(resolution); err != nil {
		return nil, err
	}

	total := 1
	for _, r := range resolution {
		total *= r
	}

	dim := len(z.basis)
	points := make([]MeshPoint, 0, total)
	cell := make(index.Index, dim)
	for n := 0; n < total; n++ {
		k := make([]float64, dim)
		for i := 0; i < dim; i++ {
			f := z.fraction(cell[i], resolution[i])
			for j := 0; j < dim; j++ {
				k[j] += f * z.basis[i][j]
			}
		}
		points = append(points, MeshPoint{K: k, Cell: cell.Clone()})

		for d := dim - 1; d >= 0; d-- {
			cell[d]++
			if cell[d] < resolution[d] {
				break
			}
			cell[d] = 0
		}
	}
	return points, nil
}

// MinorMesh returns only the momenta of Mesh.
func (z *Zone) MinorMesh(resolution []int) ([][]float64, error) {
	points, err := z.Mesh(resolution)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = p.K
	}
	return out, nil
}

// Fractional solves k = Σ f_i b_i for f.
func (z *Zone) Fractional(k []float64) ([]float64, error) {
	dim := len(z.basis)
	if len(k) != dim {
		return nil, fmt.Errorf("%w: %d components for a %d-dimensional zone", ErrDimensionMismatch, len(k), dim)
	}
	f := make([]float64, dim)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			f[i] += z.inverse.At(i, j) * k[j]
		}
	}
	return f, nil
}

// MinorCellIndex returns the mesh cell containing k. Cells are half-open
// along every basis direction and points within nodeTolerance of a cell
// boundary are snapped onto it, so mesh nodes map back exactly. Momenta
// outside the fundamental domain are folded back periodically.
func (z *Zone) MinorCellIndex(k []float64, resolution []int) (index.Index, error) {
	if err := z.checkResolution(resolution); err != nil {
		return nil, err
	}
	f, err := z.Fractional(k)
	if err != nil {
		return nil, err
	}

	cell := make(index.Index, len(f))
	for i, fi := range f {
		r := resolution[i]
		x := fi*float64(r) + z.offset(r)
		n := math.Floor(x)
		if nearest := math.Round(x); math.Abs(x-nearest) < nodeTolerance {
			n = nearest
		}
		c := int(math.Mod(n, float64(r)))
		if c < 0 {
			c += r
		}
		cell[i] = c
	}
	return cell, nil
}
