package concentration

import "strings"

// Stability is the enumerated category behind a stability_step3 label
type Stability int

const (
	StabilityUnknown Stability = iota
	StabilityStable
	StabilityModerate
	StabilityCyclical
	// StabilityModeratelyCyclical carries both markers; regimes disagree on
	// which one takes priority.
	StabilityModeratelyCyclical
	StabilityOther
)

const (
	unknownLabel   = "Unknown"
	stableLabel    = "Stable"
	moderateMarker = "Moderately"
	cyclicalMarker = "Cyclical"
)

// ParseStability maps a raw label to its category. Matching is
// case-sensitive: "Stable" must match exactly, "Moderately" and "Cyclical"
// are substring tests.
func ParseStability(label string) Stability {
	if label == "" || label == unknownLabel {
		return StabilityUnknown
	}
	if label == stableLabel {
		return StabilityStable
	}

	moderate := strings.Contains(label, moderateMarker)
	cyclical := strings.Contains(label, cyclicalMarker)
	switch {
	case moderate && cyclical:
		return StabilityModeratelyCyclical
	case moderate:
		return StabilityModerate
	case cyclical:
		return StabilityCyclical
	default:
		return StabilityOther
	}
}

// String returns a short name for the category
func (s Stability) String() string {
	switch s {
	case StabilityStable:
		return "stable"
	case StabilityModerate:
		return "moderate"
	case StabilityCyclical:
		return "cyclical"
	case StabilityModeratelyCyclical:
		return "moderately-cyclical"
	case StabilityOther:
		return "other"
	default:
		return "unknown"
	}
}
