package engine

import "fmt"

// AlgorithmVersion selects one of the four frozen message-encoding dialects
// of the derivation scheme. Every version must remain reproducible forever:
// a profile written under V0 must still derive identically under V0 no
// matter how much later versions evolve.
type AlgorithmVersion uint8

// The known algorithm versions, in the order they were introduced.
const (
	V0 AlgorithmVersion = iota
	V1
	V2
	V3

	// DefaultAlgorithm is the version used for newly created sites.
	DefaultAlgorithm = V3
	// FirstAlgorithm is the oldest version still supported for derivation.
	FirstAlgorithm = V0
	// LastAlgorithm is the newest version this package knows how to derive.
	LastAlgorithm = V3
)

func (v AlgorithmVersion) String() string {
	switch v {
	case V0:
		return "v0"
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	default:
		return fmt.Sprintf("v?(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the four recognized versions.
func (v AlgorithmVersion) Valid() bool {
	return v >= FirstAlgorithm && v <= LastAlgorithm
}

// ParseAlgorithmVersion converts an integer into an AlgorithmVersion,
// rejecting anything outside [FirstAlgorithm, LastAlgorithm].
func ParseAlgorithmVersion(n int) (AlgorithmVersion, error) {
	if n < int(FirstAlgorithm) || n > int(LastAlgorithm) {
		return 0, fmt.Errorf("engine: algorithm version %d out of range [%d,%d]", n, FirstAlgorithm, LastAlgorithm)
	}
	return AlgorithmVersion(n), nil
}

// usesByteLength reports whether v frames UTF-8 lengths by byte count
// (true, versions ≥2) or by Unicode code-point count (false, versions ≤1).
// This split is load-bearing for backward compatibility; it is the single
// dispatch point other code should consult rather than branching on the
// version number directly.
func (v AlgorithmVersion) usesByteLength() bool {
	return v >= V2
}

// signedSelectorBytes reports whether the per-character selector byte used
// during template rendering must be treated as a signed 8-bit value (the V0
// quirk) rather than unsigned.
func (v AlgorithmVersion) signedSelectorBytes() bool {
	return v == V0
}
