package concentration

import (
	"tradeconc/internal/dataset"
)

// Schema describes how the stability table is joined onto the latest-year table
type Schema struct {
	// AlreadyMerged is set when the latest-year table carries stability_step3
	// from a previous merge. The label is then kept and only the dispersion
	// statistics are pulled from the stability table.
	AlreadyMerged bool
	// Pulled lists the stability-table columns taken by the join
	Pulled []string
}

// DetectSchema inspects column presence of the latest-year and stability
// tables. Only columns the stability table actually has are pulled.
func DetectSchema(latest, stability *dataset.Table) Schema {
	schema := Schema{AlreadyMerged: latest.Has(ColStability)}

	wanted := DispersionColumns
	if !schema.AlreadyMerged {
		wanted = append([]string{ColStability}, DispersionColumns...)
	}
	for _, col := range wanted {
		if stability.Has(col) {
			schema.Pulled = append(schema.Pulled, col)
		}
	}
	return schema
}

// Pulls reports whether col is taken from the stability table
func (s Schema) Pulls(col string) bool {
	for _, c := range s.Pulled {
		if c == col {
			return true
		}
	}
	return false
}

// presentColumns returns the output columns available after the merge
func presentColumns(latest *dataset.Table, schema Schema) []string {
	var cols []string
	for _, col := range OutputColumns {
		switch col {
		case ColPartner, ColRegime, ColInterpretation:
			cols = append(cols, col)
		default:
			if latest.Has(col) || schema.Pulls(col) {
				cols = append(cols, col)
			}
		}
	}
	return cols
}

// recordFromRow reads the summary fields of one table row
func recordFromRow(t *dataset.Table, row int) PartnerSummary {
	p := NewPartnerSummary(t.Value(row, ColPartner))
	p.Year = t.Float(row, ColYear)
	p.ActiveHS6 = t.Float(row, ColActiveHS6)
	p.HHI = t.Float(row, ColHHI)
	p.CR10 = t.Float(row, ColCR10)
	p.EntropyNorm = t.Float(row, ColEntropy)
	p.RegimeStep2 = t.Value(row, ColRegimeStep2)
	p.Regime = Regime(t.Value(row, ColRegime))
	p.StabilityLabel = t.Value(row, ColStability)
	p.HasStability = p.StabilityLabel != ""
	p.HHIStd = t.Float(row, ColHHIStd)
	p.CR10CV = t.Float(row, ColCR10CV)
	p.EntropyStd = t.Float(row, ColEntropyStd)
	p.Interpretation = t.Value(row, ColInterpretation)
	return p
}

// FromTable loads a combined summary table written by the classifier. Values
// are taken as stored; nothing is reclassified.
func FromTable(t *dataset.Table) *SummaryTable {
	summary := &SummaryTable{}
	for _, col := range OutputColumns {
		if t.Has(col) {
			summary.Columns = append(summary.Columns, col)
		}
	}
	for i := 0; i < t.Len(); i++ {
		summary.Rows = append(summary.Rows, recordFromRow(t, i))
	}
	return summary
}

// Cell renders one field of a record as written to disk
func (p PartnerSummary) Cell(col string) string {
	switch col {
	case ColPartner:
		return p.Partner
	case ColYear:
		return dataset.FormatFloat(p.Year)
	case ColRegimeStep2:
		return p.RegimeStep2
	case ColRegime:
		return string(p.Regime)
	case ColStability:
		return p.StabilityLabel
	case ColInterpretation:
		return p.Interpretation
	case ColActiveHS6:
		return dataset.FormatFloat(p.ActiveHS6)
	case ColHHI:
		return dataset.FormatFloat(p.HHI)
	case ColCR10:
		return dataset.FormatFloat(p.CR10)
	case ColEntropy:
		return dataset.FormatFloat(p.EntropyNorm)
	case ColHHIStd:
		return dataset.FormatFloat(p.HHIStd)
	case ColCR10CV:
		return dataset.FormatFloat(p.CR10CV)
	case ColEntropyStd:
		return dataset.FormatFloat(p.EntropyStd)
	default:
		return ""
	}
}

// Records renders the table body in column order
func (s *SummaryTable) Records() [][]string {
	records := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		record := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			record[i] = row.Cell(col)
		}
		records = append(records, record)
	}
	return records
}
