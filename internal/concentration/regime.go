package concentration

import "tradeconc/internal/config"

// Thresholds are the regime classification bounds. The diversification and
// concentration bounds deliberately leave a gap between them; values in the
// gap classify as RegimeTransition.
type Thresholds struct {
	DiversifiedMaxHHI       float64
	DiversifiedMaxCR10      float64
	DiversifiedMinEntropy   float64
	DiversifiedMinActiveHS6 float64
	ConcentratedMinHHI      float64
	ConcentratedMinCR10     float64
	ConcentratedMaxEntropy  float64
}

// DefaultThresholds returns the standard bounds
func DefaultThresholds() Thresholds {
	return Thresholds{
		DiversifiedMaxHHI:       0.01,
		DiversifiedMaxCR10:      0.22,
		DiversifiedMinEntropy:   0.74,
		DiversifiedMinActiveHS6: 3500,
		ConcentratedMinHHI:      0.02,
		ConcentratedMinCR10:     0.30,
		ConcentratedMaxEntropy:  0.70,
	}
}

// ThresholdsFromConfig converts the regime section of the configuration
func ThresholdsFromConfig(cfg config.RegimeConfig) Thresholds {
	return Thresholds{
		DiversifiedMaxHHI:       cfg.DiversifiedMaxHHI,
		DiversifiedMaxCR10:      cfg.DiversifiedMaxCR10,
		DiversifiedMinEntropy:   cfg.DiversifiedMinEntropy,
		DiversifiedMinActiveHS6: cfg.DiversifiedMinActiveHS6,
		ConcentratedMinHHI:      cfg.ConcentratedMinHHI,
		ConcentratedMinCR10:     cfg.ConcentratedMinCR10,
		ConcentratedMaxEntropy:  cfg.ConcentratedMaxEntropy,
	}
}

// Classify returns the regime for the given metrics. The first matching rule
// wins. NaN fails every comparison, so records with missing metrics fall
// through to RegimeTransition.
func (t Thresholds) Classify(hhi, cr10, entropy, activeHS6 float64) Regime {
	if hhi <= t.DiversifiedMaxHHI &&
		cr10 <= t.DiversifiedMaxCR10 &&
		entropy >= t.DiversifiedMinEntropy &&
		activeHS6 >= t.DiversifiedMinActiveHS6 {
		return RegimeRealDiversification
	}
	if hhi >= t.ConcentratedMinHHI &&
		cr10 >= t.ConcentratedMinCR10 &&
		entropy <= t.ConcentratedMaxEntropy {
		return RegimeStructuralConcentration
	}
	return RegimeTransition
}

// ClassifyRecord classifies a partner summary
func (t Thresholds) ClassifyRecord(p PartnerSummary) Regime {
	return t.Classify(p.HHI, p.CR10, p.EntropyNorm, p.ActiveHS6)
}
