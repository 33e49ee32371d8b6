package contact

import (
	"fmt"
	"math"
)

// MixMode selects how two bodies' material coefficients (friction,
// restitution) combine into one pairwise value. Every mode is commutative,
// so the result never depends on pair order.
type MixMode int

const (
	MixAvg MixMode = iota
	MixMul
	MixSqrt
	MixMin
	MixMax
)

var mixModeNames = map[MixMode]string{
	MixAvg:  "avg",
	MixMul:  "mul",
	MixSqrt: "sqrt",
	MixMin:  "min",
	MixMax:  "max",
}

func (m MixMode) String() string {
	if name, ok := mixModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("MixMode(%d)", int(m))
}

// Valid reports whether m is a known mixing mode.
func (m MixMode) Valid() bool {
	_, ok := mixModeNames[m]
	return ok
}

// ParseMixMode resolves a configuration string to a MixMode. Unknown names
// are a configuration error, surfaced to the caller rather than defaulted.
func ParseMixMode(name string) (MixMode, error) {
	for mode, n := range mixModeNames {
		if n == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown coefficient mix mode: %q", name)
}

// Mix combines two material coefficients under the given mode. The mode
// must be validated beforehand; an unknown mode here indicates a missed
// configuration check and panics rather than guessing a value mid-tick.
func Mix(a, b float64, mode MixMode) float64 {
	switch mode {
	case MixAvg:
		return (a + b) / 2
	case MixMul:
		return a * b
	case MixSqrt:
		return math.Sqrt(a * b)
	case MixMin:
		return math.Min(a, b)
	case MixMax:
		return math.Max(a, b)
	default:
		panic(fmt.Sprintf("contact: unvalidated mix mode %d", int(mode)))
	}
}
