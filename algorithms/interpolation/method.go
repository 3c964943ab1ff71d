package interpolation

import (
	"fmt"
	"strings"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

// Method names an envelope interpolation scheme
type Method string

const (
	Akima     Method = "akima"
	Cubic     Method = "cubic"
	Linear    Method = "linear"
	SLinear   Method = "slinear"
	Quadratic Method = "quadratic"
)

// Methods lists every supported method
var Methods = []Method{Akima, Cubic, Linear, SLinear, Quadratic}

// ParseMethod resolves a method name case-insensitively
func ParseMethod(name string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("interpolation: %q: %w", name, common.ErrUnsupportedMethod)
}

func (m Method) String() string {
	return string(m)
}
