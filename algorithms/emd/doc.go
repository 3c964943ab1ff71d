// Package emd implements Empirical Mode Decomposition: a signal is split
// into intrinsic mode functions by repeatedly subtracting the mean of its
// upper and lower spline envelopes until a stopping policy accepts the
// candidate, then removing that component from the residue.
package emd
