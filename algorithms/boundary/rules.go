package boundary

// extremumKind names the extremum type that lies nearest to a signal edge
type extremumKind int

const (
	nearMax extremumKind = iota
	nearMin
)

// ruleKey selects a mirror rule: which extremum type is nearest to the edge,
// and whether the edge sample lies beyond the first extremum of the other type
// (above the first minimum when a maximum is nearest, below the first maximum
// when a minimum is nearest)
type ruleKey struct {
	near   extremumKind
	beyond bool
}

// mirrorRule describes the reflection applied at one edge. Sequences are read
// inward from the edge; nearFrom is the first reflected element of the nearest
// type, and padFar prepends the edge sample itself to the other type.
type mirrorRule struct {
	axisOnExtremum bool
	nearFrom       int
	padFar         bool
}

var (
	// mirror to the nearest extremum
	mirrorToExtremum = mirrorRule{axisOnExtremum: true, nearFrom: 1}

	// mirror to the edge sample
	mirrorToEdge = mirrorRule{axisOnExtremum: false, nearFrom: 0, padFar: true}
)

var mirrorRules = map[ruleKey]mirrorRule{
	{near: nearMax, beyond: true}:  mirrorToExtremum,
	{near: nearMax, beyond: false}: mirrorToEdge,
	{near: nearMin, beyond: true}:  mirrorToExtremum,
	{near: nearMin, beyond: false}: mirrorToEdge,
}
