// Package boundary extends extrema sequences past both ends of a signal by
// mirroring, so that envelope splines have support over the whole sample grid.
//
// At each edge the extremum type nearest to the edge decides the rule, together
// with a comparison of the edge sample against the first extremum of the other
// type (see rules.go). Either the nbsym nearest extrema are reflected around the
// nearest extremum, or they are reflected around the edge sample with the edge
// sample itself standing in for one extremum of the other type. If the
// outermost reflected point does not reach past the edge, the axis falls back
// to the edge sample once; a second failure is an ErrInternalConsistency.
package boundary
