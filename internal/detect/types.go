// Anomaly records and severity bucketing for structural inspection.
package detect

import "droneinspect-sim/internal/mission"

// Type classifies a structural anomaly.
type Type string

// Anomaly types. Spellings are part of the export contract.
const (
	TypeCrack     Type = "crack"
	TypeRust      Type = "rust"
	TypeLooseBolt Type = "loose_bolt"
	TypeCorrosion Type = "corrosion"
)

// Types returns all anomaly types in their fixed evaluation order. The
// order is load-bearing: the detector consumes RNG draws per type, so
// reordering would change seeded runs.
func Types() []Type {
	return []Type{TypeCrack, TypeRust, TypeLooseBolt, TypeCorrosion}
}

// Severity is the discrete risk tier derived from a confidence score.
type Severity string

// Severity tiers, lowest to highest.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for sorting; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// BBox locates an anomaly within the camera frame.
type BBox struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Anomaly is one synthetic detection record. Immutable once created.
type Anomaly struct {
	ID         string       `json:"id"`
	Type       Type         `json:"type"`
	Confidence float64      `json:"confidence"`
	Severity   Severity     `json:"severity"`
	Position   mission.Vec3 `json:"position"`
	BBox       BBox         `json:"bbox"`
	Tick       int          `json:"tick"`
}

// SeverityCuts are the confidence bucket edges [low/medium, medium/high,
// high/critical], ascending.
type SeverityCuts [3]float64

// DefaultSeverityCuts buckets confidence as <0.5 low, <0.7 medium,
// <0.85 high, else critical.
var DefaultSeverityCuts = SeverityCuts{0.5, 0.7, 0.85}

// SeverityFor buckets a confidence score. Pure and deterministic:
// re-evaluating never changes a stored anomaly's severity.
func SeverityFor(cuts SeverityCuts, confidence float64) Severity {
	switch {
	case confidence < cuts[0]:
		return SeverityLow
	case confidence < cuts[1]:
		return SeverityMedium
	case confidence < cuts[2]:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}
