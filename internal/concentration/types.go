package concentration

import "math"

// Column names shared by the input and output tables
const (
	ColPartner        = "partner"
	ColYear           = "year"
	ColActiveHS6      = "active_hs6"
	ColHHI            = "hhi_hs6"
	ColCR10           = "cr10"
	ColEntropy        = "entropy_norm"
	ColRegimeStep2    = "regime_step2"
	ColRegime         = "regime_step2_abs"
	ColStability      = "stability_step3"
	ColInterpretation = "interpretation"
	ColHHIStd         = "hhi_std"
	ColCR10CV         = "cr10_cv"
	ColEntropyStd     = "entropy_std"
)

// OutputColumns is the ordered column list of the combined summary table.
// Columns absent after the merge are dropped from it.
var OutputColumns = []string{
	ColPartner, ColYear,
	ColRegimeStep2, ColRegime,
	ColStability, ColInterpretation,
	ColActiveHS6, ColHHI, ColCR10, ColEntropy,
	ColHHIStd, ColCR10CV, ColEntropyStd,
}

// DispersionColumns are the statistics always pulled from the stability table
var DispersionColumns = []string{ColHHIStd, ColCR10CV, ColEntropyStd}

// Regime is the absolute diversification regime of a partner
type Regime string

const (
	RegimeRealDiversification     Regime = "Real diversification"
	RegimeStructuralConcentration Regime = "Structural concentration"
	RegimeTransition              Regime = "Transition / mixed"
)

// Regimes lists every regime in output sort order
var Regimes = []Regime{
	RegimeRealDiversification,
	RegimeStructuralConcentration,
	RegimeTransition,
}

// PartnerSummary is one row of the combined summary table. Missing numeric
// values are NaN; a missing stability label is "" with HasStability false.
type PartnerSummary struct {
	Partner        string
	Year           float64
	ActiveHS6      float64
	HHI            float64
	CR10           float64
	EntropyNorm    float64
	RegimeStep2    string
	Regime         Regime
	StabilityLabel string
	HasStability   bool
	HHIStd         float64
	CR10CV         float64
	EntropyStd     float64
	Interpretation string
}

// NewPartnerSummary returns a record for partner with all metrics missing
func NewPartnerSummary(partner string) PartnerSummary {
	nan := math.NaN()
	return PartnerSummary{
		Partner:     partner,
		Year:        nan,
		ActiveHS6:   nan,
		HHI:         nan,
		CR10:        nan,
		EntropyNorm: nan,
		HHIStd:      nan,
		CR10CV:      nan,
		EntropyStd:  nan,
	}
}

// Stability returns the parsed stability category of the record
func (p PartnerSummary) Stability() Stability {
	if !p.HasStability {
		return StabilityUnknown
	}
	return ParseStability(p.StabilityLabel)
}

// SummaryTable is the combined classifier output. Columns holds the output
// columns present, in OutputColumns order.
type SummaryTable struct {
	Columns []string
	Rows    []PartnerSummary
	Schema  Schema
}

// HasColumn reports whether the table carries col
func (s *SummaryTable) HasColumn(col string) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}
