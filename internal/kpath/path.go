package kpath

import "fmt"

// Point is a named momentum, e.g. Γ, M or K.
type Point struct {
	Name string
	K    []float64
}

// Path visits its points in order; consecutive points bound a segment.
type Path []Point

// Samples is a sampled path. Ticks[i] is the position in Points where
// Labels[i] is reached.
type Samples struct {
	Points [][]float64
	Ticks  []int
	Labels []string
}

// Sample takes pointsPerSegment half-open samples of every segment, so the
// junction between two segments appears exactly once and the final endpoint
// is not included.
func (p Path) Sample(pointsPerSegment int) (Samples, error) {
	if len(p) < 2 {
		return Samples{}, ErrShortPath
	}
	if pointsPerSegment <= 0 {
		return Samples{}, fmt.Errorf("%w: got %d", ErrInvalidPointCount, pointsPerSegment)
	}

	s := Samples{
		Points: make([][]float64, 0, (len(p)-1)*pointsPerSegment+1),
		Ticks:  make([]int, 0, len(p)),
		Labels: make([]string, 0, len(p)),
	}
	for i := 0; i+1 < len(p); i++ {
		seg, err := Interpolate(p[i].K, p[i+1].K, pointsPerSegment)
		if err != nil {
			return Samples{}, fmt.Errorf("segment %s-%s: %w", p[i].Name, p[i+1].Name, err)
		}
		s.Ticks = append(s.Ticks, len(s.Points))
		s.Labels = append(s.Labels, p[i].Name)
		s.Points = append(s.Points, seg...)
	}
	return s, nil
}

// SampleClosed is Sample with the final endpoint appended once.
func (p Path) SampleClosed(pointsPerSegment int) (Samples, error) {
	s, err := p.Sample(pointsPerSegment)
	if err != nil {
		return Samples{}, err
	}
	last := p[len(p)-1]
	s.Ticks = append(s.Ticks, len(s.Points))
	s.Labels = append(s.Labels, last.Name)
	s.Points = append(s.Points, append([]float64(nil), last.K...))
	return s, nil
}
