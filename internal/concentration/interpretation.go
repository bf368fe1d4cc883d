package concentration

// Interpretation texts
const (
	InterpDiversifiedResilient  = "Diversified & resilient export structure."
	InterpDiversifiedModerate   = "Diversified with moderate volatility."
	InterpDiversifiedShock      = "Diversified but shock-sensitive."
	InterpConcentratedVolatile  = "Highly concentrated & volatile."
	InterpConcentrated          = "Concentrated export structure."
	InterpMixedShock            = "Mixed basket, shock-sensitive."
	InterpMixedModeratelyStable = "Mixed basket, moderately stable."
	InterpMixedStable           = "Mixed basket, stable."
	InterpMixed                 = "Mixed basket."
)

// Interpret returns the reading for a regime and stability category. A
// label carrying both markers reads as moderate under real diversification
// and as cyclical everywhere else.
func Interpret(regime Regime, stability Stability) string {
	switch regime {
	case RegimeRealDiversification:
		switch stability {
		case StabilityStable:
			return InterpDiversifiedResilient
		case StabilityModerate, StabilityModeratelyCyclical:
			return InterpDiversifiedModerate
		case StabilityCyclical:
			return InterpDiversifiedShock
		}
	case RegimeStructuralConcentration:
		switch stability {
		case StabilityCyclical, StabilityModeratelyCyclical:
			return InterpConcentratedVolatile
		default:
			return InterpConcentrated
		}
	}

	switch stability {
	case StabilityCyclical, StabilityModeratelyCyclical:
		return InterpMixedShock
	case StabilityModerate:
		return InterpMixedModeratelyStable
	case StabilityStable:
		return InterpMixedStable
	default:
		return InterpMixed
	}
}

// InterpretRecord interprets a classified partner summary
func InterpretRecord(p PartnerSummary) string {
	return Interpret(p.Regime, p.Stability())
}
