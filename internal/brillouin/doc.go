// Package brillouin samples the first Brillouin zone of a periodic lattice.
//
// A [Zone] is the parallelepiped spanned by a reciprocal basis. It produces a
// regular mesh of momenta and maps any momentum back to the mesh cell that
// owns it:
//
//   - [ReciprocalBasis]: reciprocal vectors from real-space lattice vectors
//   - [Zone.Mesh]: one point per cell, cells in lexicographic order
//   - [Zone.MinorCellIndex]: momentum to cell, folded into the zone
//
// # Cell Ownership
//
// Cells are half-open along every basis direction. A momentum exactly on a
// boundary belongs to the cell above it, so every momentum has exactly one
// owner and every mesh point maps back to its own cell:
//
//	zone, _ := brillouin.New(basis, brillouin.Nodal)
//	mesh, _ := zone.Mesh([]int{100, 100})
//	cell, _ := zone.MinorCellIndex(mesh[42].K, []int{100, 100})
//	// cell equals mesh[42].Cell
package brillouin
