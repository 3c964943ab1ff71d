package boundary

// Points is a set of (position, value) control points ordered by position
type Points struct {
	Pos []float64
	Val []float64
}

// Len returns the number of points
func (p Points) Len() int {
	return len(p.Pos)
}

// First returns the smallest position, or 0 for an empty set
func (p Points) First() float64 {
	if len(p.Pos) == 0 {
		return 0
	}
	return p.Pos[0]
}

// Last returns the largest position, or 0 for an empty set
func (p Points) Last() float64 {
	if len(p.Pos) == 0 {
		return 0
	}
	return p.Pos[len(p.Pos)-1]
}

// pruneDuplicates drops every point whose position equals its predecessor's
func (p Points) pruneDuplicates() Points {
	if len(p.Pos) < 2 {
		return p
	}

	out := Points{
		Pos: make([]float64, 0, len(p.Pos)),
		Val: make([]float64, 0, len(p.Val)),
	}
	out.Pos = append(out.Pos, p.Pos[0])
	out.Val = append(out.Val, p.Val[0])
	for i := 1; i < len(p.Pos); i++ {
		if p.Pos[i] == p.Pos[i-1] {
			continue
		}
		out.Pos = append(out.Pos, p.Pos[i])
		out.Val = append(out.Val, p.Val[i])
	}
	return out
}

func concat(parts ...Points) Points {
	total := 0
	for _, part := range parts {
		total += part.Len()
	}

	out := Points{
		Pos: make([]float64, 0, total),
		Val: make([]float64, 0, total),
	}
	for _, part := range parts {
		out.Pos = append(out.Pos, part.Pos...)
		out.Val = append(out.Val, part.Val...)
	}
	return out
}
