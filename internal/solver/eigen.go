package solver

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

const (
	hermitianTolerance  = 1e-10
	degeneracyTolerance = 1e-9
	independenceFloor   = 1e-6
)

// eigenHermitian diagonalizes the n×n Hermitian matrix h (row-major). It
// returns ascending eigenvalues and the eigenvectors stored state-major:
// vectors[state*n+site].
func eigenHermitian(h []complex128, n int) ([]float64, []complex128, error) {
	if n == 1 {
		if math.Abs(imag(h[0])) > hermitianTolerance*math.Max(1, cmplx.Abs(h[0])) {
			return nil, nil, fmt.Errorf("%w: complex diagonal %v", ErrNotHermitian, h[0])
		}
		return []float64{real(h[0])}, []complex128{1}, nil
	}

	scale := 0.0
	isReal := true
	for _, v := range h {
		scale = math.Max(scale, cmplx.Abs(v))
		if imag(v) != 0 {
			isReal = false
		}
	}
	tol := hermitianTolerance * math.Max(1, scale)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if cmplx.Abs(h[i*n+j]-cmplx.Conj(h[j*n+i])) > tol {
				return nil, nil, fmt.Errorf("%w: H[%d][%d]=%v, H[%d][%d]=%v", ErrNotHermitian, i, j, h[i*n+j], j, i, h[j*n+i])
			}
		}
	}

	if isReal {
		return eigenRealSymmetric(h, n)
	}
	return eigenComplexEmbedded(h, n)
}

func eigenRealSymmetric(h []complex128, n int) ([]float64, []complex128, error) {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = real(h[i*n+j])
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, data), true); !ok {
		return nil, nil, ErrEigenFailed
	}
	values := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)

	vectors := make([]complex128, n*n)
	for s := 0; s < n; s++ {
		for i := 0; i < n; i++ {
			vectors[s*n+i] = complex(ev.At(i, s), 0)
		}
	}
	return values, vectors, nil
}

// eigenComplexEmbedded solves H = A + iB through the real symmetric matrix
// [[A, -B], [B, A]]. Its spectrum is that of H with every eigenvalue doubled,
// and each real eigenvector (u, v) gives the complex eigenvector u + iv.
func eigenComplexEmbedded(h []complex128, n int) ([]float64, []complex128, error) {
	m := 2 * n
	data := make([]float64, m*m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := real(h[i*n+j]), imag(h[i*n+j])
			data[i*m+j] = a
			data[i*m+n+j] = -b
			data[(n+i)*m+j] = b
			data[(n+i)*m+n+j] = a
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(m, data), true); !ok {
		return nil, nil, ErrEigenFailed
	}
	doubled := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)

	values := make([]float64, n)
	maxAbs := 0.0
	for k := 0; k < n; k++ {
		values[k] = (doubled[2*k] + doubled[2*k+1]) / 2
		maxAbs = math.Max(maxAbs, math.Abs(values[k]))
	}
	tol := degeneracyTolerance * math.Max(1, maxAbs)

	vectors := make([]complex128, n*n)
	for start := 0; start < n; {
		end := start + 1
		for end < n && values[end]-values[end-1] <= tol {
			end++
		}

		candidates := make([][]complex128, 0, 2*(end-start))
		for col := 2 * start; col < 2*end; col++ {
			c := make([]complex128, n)
			for i := 0; i < n; i++ {
				c[i] = complex(ev.At(i, col), ev.At(n+i, col))
			}
			candidates = append(candidates, c)
		}

		basis, err := pivotedGramSchmidt(candidates, end-start)
		if err != nil {
			return nil, nil, err
		}
		for s, q := range basis {
			copy(vectors[(start+s)*n:(start+s+1)*n], q)
		}
		start = end
	}
	return values, vectors, nil
}

// pivotedGramSchmidt extracts want orthonormal vectors from candidates,
// always taking the candidate with the largest remaining component.
func pivotedGramSchmidt(candidates [][]complex128, want int) ([][]complex128, error) {
	out := make([][]complex128, 0, want)
	used := make([]bool, len(candidates))

	for len(out) < want {
		best, bestNorm := -1, 0.0
		for i, c := range candidates {
			if used[i] {
				continue
			}
			if nrm := norm(c); nrm > bestNorm {
				best, bestNorm = i, nrm
			}
		}
		if best < 0 || bestNorm < independenceFloor {
			return nil, fmt.Errorf("%w: degenerate subspace has rank %d, want %d", ErrEigenFailed, len(out), want)
		}

		used[best] = true
		q := candidates[best]
		for i := range q {
			q[i] /= complex(bestNorm, 0)
		}
		out = append(out, q)

		for i, c := range candidates {
			if used[i] {
				continue
			}
			proj := inner(q, c)
			for k := range c {
				c[k] -= proj * q[k]
			}
		}
	}
	return out, nil
}

// inner is <a|b>, conjugate-linear in a.
func inner(a, b []complex128) complex128 {
	var s complex128
	for i := range a {
		s += cmplx.Conj(a[i]) * b[i]
	}
	return s
}

func norm(a []complex128) float64 {
	s := 0.0
	for _, v := range a {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(s)
}
