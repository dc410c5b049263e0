package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/tightbind/internal/array"
	"github.com/san-kum/tightbind/internal/property"
)

// Bounds returns the smallest and largest of values.
func Bounds(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// StackDensities prepares a [state, x] array of probability densities for a
// level diagram. The densities are scaled so that every state fits in half
// of an even share of [min, max], then each row is raised to its energy.
func StackDensities(densities *array.Array[float64], eigenValues property.EigenValues, min, max float64) error {
	shape := densities.Shape()
	if len(shape) != 2 {
		return fmt.Errorf("%w: want [state, x], got shape %v", array.ErrBadShape, shape)
	}
	states, width := shape[0], shape[1]
	if len(eigenValues) < states {
		return fmt.Errorf("%w: %d densities, %d eigenvalues", property.ErrStateOutOfRange, states, len(eigenValues))
	}

	_, peak := array.MinMax(densities)
	if peak <= 0 {
		return nil
	}
	scale := (max - min) / (peak * float64(states)) / 2

	data := densities.Data()
	for s := 0; s < states; s++ {
		row := data[s*width : (s+1)*width]
		for x := range row {
			row[x] = row[x]*scale + eigenValues[s]
		}
	}
	return nil
}
