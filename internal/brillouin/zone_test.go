package brillouin_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/tightbind/internal/brillouin"
)

func hexagonalBasis() [][]float64 {
	a := 2.5
	r := [3]brillouin.Vector3{
		brillouin.V(a, 0, 0),
		brillouin.V(-a/2, a*math.Sqrt(3)/2, 0),
		brillouin.V(0, 0, a),
	}
	k, err := brillouin.ReciprocalBasis(r)
	Expect(err).NotTo(HaveOccurred())
	return [][]float64{k[0].XY(), k[1].XY()}
}

var squareBasis = [][]float64{{2 * math.Pi, 0}, {0, 2 * math.Pi}}

var cubicBasis = [][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}}

var obliqueBasis = [][]float64{{1, 0.3}, {-0.4, 1.2}}

var _ = Describe("ReciprocalBasis", func() {
	It("satisfies k_m . r_n = 2 pi delta_mn", func() {
		r := [3]brillouin.Vector3{
			brillouin.V(2.5, 0, 0),
			brillouin.V(-1.25, 2.5*math.Sqrt(3)/2, 0),
			brillouin.V(0, 0, 2.5),
		}
		k, err := brillouin.ReciprocalBasis(r)
		Expect(err).NotTo(HaveOccurred())

		for m := 0; m < 3; m++ {
			for n := 0; n < 3; n++ {
				want := 0.0
				if m == n {
					want = 2 * math.Pi
				}
				Expect(k[m].Dot(r[n])).To(BeNumerically("~", want, 1e-12))
			}
		}
	})

	It("rejects coplanar vectors", func() {
		r := [3]brillouin.Vector3{
			brillouin.V(1, 0, 0),
			brillouin.V(0, 1, 0),
			brillouin.V(1, 1, 0),
		}
		_, err := brillouin.ReciprocalBasis(r)
		Expect(err).To(MatchError(brillouin.ErrDegenerateBasis))
	})
})

var _ = Describe("Zone", func() {
	DescribeTable("mesh size, range and round trip",
		func(basis [][]float64, meshType brillouin.MeshType, resolution []int) {
			zone, err := brillouin.New(basis, meshType)
			Expect(err).NotTo(HaveOccurred())

			mesh, err := zone.Mesh(resolution)
			Expect(err).NotTo(HaveOccurred())

			want := 1
			for _, r := range resolution {
				want *= r
			}
			Expect(mesh).To(HaveLen(want))

			cells := make(map[string]bool, len(mesh))
			for _, p := range mesh {
				for d, c := range p.Cell {
					Expect(c).To(BeNumerically(">=", 0))
					Expect(c).To(BeNumerically("<", resolution[d]))
				}

				cell, err := zone.MinorCellIndex(p.K, resolution)
				Expect(err).NotTo(HaveOccurred())
				Expect(cell.Equal(p.Cell)).To(BeTrue(), "point %v mapped to %v, want %v", p.K, cell, p.Cell)

				cells[p.Cell.Key()] = true
			}
			Expect(cells).To(HaveLen(want))
		},
		Entry("square nodal 1x1", squareBasis, brillouin.Nodal, []int{1, 1}),
		Entry("square nodal even", squareBasis, brillouin.Nodal, []int{8, 6}),
		Entry("square nodal odd", squareBasis, brillouin.Nodal, []int{7, 5}),
		Entry("square interior", squareBasis, brillouin.Interior, []int{9, 4}),
		Entry("hexagonal nodal", hexagonalBasis(), brillouin.Nodal, []int{30, 30}),
		Entry("hexagonal interior", hexagonalBasis(), brillouin.Interior, []int{12, 17}),
		Entry("oblique nodal", obliqueBasis, brillouin.Nodal, []int{11, 13}),
		Entry("cubic nodal", cubicBasis, brillouin.Nodal, []int{4, 5, 6}),
		Entry("cubic interior", cubicBasis, brillouin.Interior, []int{3, 3, 3}),
	)

	It("places gamma on a node of a nodal mesh", func() {
		zone, err := brillouin.New(hexagonalBasis(), brillouin.Nodal)
		Expect(err).NotTo(HaveOccurred())

		cell, err := zone.MinorCellIndex([]float64{0, 0}, []int{1000, 1000})
		Expect(err).NotTo(HaveOccurred())
		Expect([]int(cell)).To(Equal([]int{500, 500}))
	})

	It("folds momenta outside the zone back periodically", func() {
		zone, err := brillouin.New(squareBasis, brillouin.Nodal)
		Expect(err).NotTo(HaveOccurred())
		res := []int{10, 10}

		k := []float64{0.3, -1.1}
		shifted := []float64{k[0] + 2*2*math.Pi, k[1] - 3*2*math.Pi}

		a, err := zone.MinorCellIndex(k, res)
		Expect(err).NotTo(HaveOccurred())
		b, err := zone.MinorCellIndex(shifted, res)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("assigns boundary points to the cell above by floor binning", func() {
		zone, err := brillouin.New([][]float64{{1, 0}, {0, 1}}, brillouin.Interior)
		Expect(err).NotTo(HaveOccurred())
		res := []int{4, 4}

		// interior cells start at fractional -0.5 + n/4
		cell, err := zone.MinorCellIndex([]float64{-0.25, 0}, res)
		Expect(err).NotTo(HaveOccurred())
		Expect(cell[0]).To(Equal(1))

		cell, err = zone.MinorCellIndex([]float64{-0.25 - 1e-6, 0}, res)
		Expect(err).NotTo(HaveOccurred())
		Expect(cell[0]).To(Equal(0))
	})

	DescribeTable("rejects invalid input",
		func(basis [][]float64, resolution []int, k []float64, want error) {
			zone, err := brillouin.New(basis, brillouin.Nodal)
			if err != nil {
				Expect(err).To(MatchError(want))
				return
			}
			_, err = zone.MinorCellIndex(k, resolution)
			Expect(err).To(MatchError(want))
		},
		Entry("single vector", [][]float64{{1}}, []int{2}, []float64{0}, brillouin.ErrInvalidBasis),
		Entry("ragged vector", [][]float64{{1, 0}, {0}}, []int{2, 2}, []float64{0, 0}, brillouin.ErrInvalidBasis),
		Entry("dependent vectors", [][]float64{{1, 2}, {2, 4}}, []int{2, 2}, []float64{0, 0}, brillouin.ErrInvalidBasis),
		Entry("zero resolution", squareBasis, []int{0, 3}, []float64{0, 0}, brillouin.ErrInvalidResolution),
		Entry("resolution rank", squareBasis, []int{3}, []float64{0, 0}, brillouin.ErrInvalidResolution),
		Entry("momentum rank", squareBasis, []int{3, 3}, []float64{0, 0, 0}, brillouin.ErrDimensionMismatch),
	)
})
