// Package viz browses solved eigenstates in the terminal.
//
// [Browser] is a Bubble Tea model over a [Source]. Two-dimensional
// densities are drawn on a braille [Canvas] with ordered dithering, chains
// and the level spectrum with asciigraph.
//
// # Key Bindings
//
//	j/k, ↓/↑   - next/previous state
//	PgDn/PgUp  - jump ten states
//	g/G        - first/last state
//	q          - quit
package viz
