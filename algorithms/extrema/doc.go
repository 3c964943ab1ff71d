// Package extrema locates local maxima, local minima and zero-crossings of a
// sampled signal.
//
// Flat stretches are handled by a run-length pre-pass: consecutive equal
// samples collapse into a single run, and the extrema scan then works on runs
// with strict comparisons only. A run strictly above both neighbouring runs is
// a maximum, strictly below both a minimum; its position is the run midpoint
// rounded half to even. Runs touching either end of the signal are never
// extrema.
package extrema
