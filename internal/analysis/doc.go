// Package analysis post-processes extracted properties for presentation.
//
//   - [GaussianSmooth] and [SmoothDOS]: Gaussian broadening of sampled curves
//   - [NormalizeDOS]: per-state normalization of a density of states
//   - [StackDensities]: level diagrams of probability densities
//
// # Broadening
//
// A DOS computed from a finite mesh is a histogram of delta peaks. Smoothing
// with a width a few bins wide gives the familiar continuous curve:
//
//	dos, _ := extractor.DOS()
//	analysis.NormalizeDOS(dos, model.BasisSize())
//	smoothed, err := analysis.SmoothDOS(dos, 0.05, 101)
package analysis
