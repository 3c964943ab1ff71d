package extrema

import "math"

// run is a maximal stretch of equal consecutive samples [start, end]
type run struct {
	start int
	end   int
	value float64
}

// encodeRuns run-length encodes values
func encodeRuns(values []float64) []run {
	if len(values) == 0 {
		return nil
	}

	runs := make([]run, 0, len(values))
	current := run{start: 0, end: 0, value: values[0]}
	for i := 1; i < len(values); i++ {
		if values[i] == current.value {
			current.end = i
			continue
		}
		runs = append(runs, current)
		current = run{start: i, end: i, value: values[i]}
	}
	return append(runs, current)
}

func (r run) length() int {
	return r.end - r.start + 1
}

// midpoint returns the centre sample of the run, rounding half to even
func (r run) midpoint() int {
	return int(math.RoundToEven(float64(r.start+r.end) / 2))
}
