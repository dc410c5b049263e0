package brillouin

import (
	"fmt"
	"math"
)

// Vector3 is a Cartesian vector. Two-dimensional lattices embed with Z = 0
// so reciprocal vectors can be written with cross products.
type Vector3 struct {
	X, Y, Z float64
}

func V(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{v.X * f, v.Y * f, v.Z * f}
}
func (v Vector3) Neg() Vector3 { return v.Scale(-1) }

func (v Vector3) Dot(o Vector3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// XY drops the Z component.
func (v Vector3) XY() []float64 { return []float64{v.X, v.Y} }

func (v Vector3) Slice() []float64 { return []float64{v.X, v.Y, v.Z} }

func (v Vector3) String() string { return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z) }

// ReciprocalBasis returns k_n = 2π (r_{n+1} × r_{n+2}) / (r_n · (r_{n+1} × r_{n+2})),
// so that k_m · r_n = 2π δ_mn.
func ReciprocalBasis(r [3]Vector3) ([3]Vector3, error) {
	volume := r[0].Dot(r[1].Cross(r[2]))
	if math.Abs(volume) < 1e-12*r[0].Norm()*r[1].Norm()*r[2].Norm() || volume == 0 {
		return [3]Vector3{}, ErrDegenerateBasis
	}

	var k [3]Vector3
	for n := 0; n < 3; n++ {
		a, b := r[(n+1)%3], r[(n+2)%3]
		k[n] = a.Cross(b).Scale(2 * math.Pi / r[n].Dot(a.Cross(b)))
	}
	return k, nil
}
