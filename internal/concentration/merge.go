package concentration

import (
	"fmt"
	"sort"

	"tradeconc/internal/dataset"
	apperrors "tradeconc/internal/errors"
)

// Merge left-joins the stability table onto the latest-year table by partner,
// classifies every row and returns the combined table sorted by regime then
// partner.
//
// Stability rows without a latest-year partner are dropped. A partner listed
// more than once in the stability table yields one output row per match. An
// empty partner name never matches.
func Merge(latest, stability *dataset.Table, t Thresholds) (*SummaryTable, error) {
	if !latest.Has(ColPartner) {
		return nil, apperrors.NewParsingError("latest-year table has no partner column", nil)
	}
	if !stability.Has(ColPartner) {
		return nil, apperrors.NewParsingError("stability table has no partner column", nil)
	}

	schema := DetectSchema(latest, stability)

	byPartner := make(map[string][]int)
	for i := 0; i < stability.Len(); i++ {
		partner := stability.Value(i, ColPartner)
		if partner == "" {
			continue
		}
		byPartner[partner] = append(byPartner[partner], i)
	}

	summary := &SummaryTable{
		Columns: presentColumns(latest, schema),
		Schema:  schema,
	}

	for i := 0; i < latest.Len(); i++ {
		base := recordFromRow(latest, i)

		matches := byPartner[base.Partner]
		if base.Partner == "" || len(matches) == 0 {
			summary.Rows = append(summary.Rows, classify(base, t))
			continue
		}
		for _, j := range matches {
			summary.Rows = append(summary.Rows, classify(pull(base, stability, j, schema), t))
		}
	}

	SortRows(summary.Rows)
	return summary, nil
}

// pull copies the joined stability columns of row j onto base
func pull(base PartnerSummary, stability *dataset.Table, j int, schema Schema) PartnerSummary {
	for _, col := range schema.Pulled {
		switch col {
		case ColStability:
			base.StabilityLabel = stability.Value(j, col)
			base.HasStability = base.StabilityLabel != ""
		case ColHHIStd:
			base.HHIStd = stability.Float(j, col)
		case ColCR10CV:
			base.CR10CV = stability.Float(j, col)
		case ColEntropyStd:
			base.EntropyStd = stability.Float(j, col)
		}
	}
	return base
}

func classify(p PartnerSummary, t Thresholds) PartnerSummary {
	p.Regime = t.ClassifyRecord(p)
	p.Interpretation = InterpretRecord(p)
	return p
}

// SortRows orders rows by regime then partner, keeping input order for ties
func SortRows(rows []PartnerSummary) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Regime != rows[j].Regime {
			return rows[i].Regime < rows[j].Regime
		}
		return rows[i].Partner < rows[j].Partner
	})
}

// CountByRegime tallies rows per regime
func (s *SummaryTable) CountByRegime() map[Regime]int {
	counts := make(map[Regime]int, len(Regimes))
	for _, row := range s.Rows {
		counts[row.Regime]++
	}
	return counts
}

// String summarizes the table for log output
func (s *SummaryTable) String() string {
	return fmt.Sprintf("%d partners, %d columns", len(s.Rows), len(s.Columns))
}
