// Package interpolation fits envelope curves through ordered control points
// and evaluates them over a sample grid.
//
// Supported methods: Akima's 1970 local-slope spline, cubic splines
// (not-a-knot for four or more points, a closed-form two-segment construction
// for exactly three), piecewise linear, and quadratic B-spline interpolation.
package interpolation
