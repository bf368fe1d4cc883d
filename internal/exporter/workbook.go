package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tradeconc/internal/concentration"
)

// Workbook sheet names
const (
	SummarySheet = "Summary"
	RegimesSheet = "Regimes"
)

// stabilityColumns are the Regimes sheet columns in display order
var stabilityColumns = []concentration.Stability{
	concentration.StabilityStable,
	concentration.StabilityModerate,
	concentration.StabilityModeratelyCyclical,
	concentration.StabilityCyclical,
	concentration.StabilityOther,
	concentration.StabilityUnknown,
}

// WorkbookWriter writes the combined summary table as an Excel workbook
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer. A nil logger uses slog.Default.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write saves the summary table to path with a Summary sheet mirroring the
// CSV and a Regimes sheet of regime by stability counts
func (w *WorkbookWriter) Write(path string, summary *concentration.SummaryTable) error {
	w.logger.Info("Writing workbook",
		slog.String("path", path),
		slog.Int("record_count", len(summary.Rows)))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(RegimesSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", RegimesSheet, err)
	}
	if err := writeRegimesSheet(f, summary); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary *concentration.SummaryTable) error {
	for i, col := range summary.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SummarySheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header %s: %w", col, err)
		}
	}

	for r, row := range summary.Rows {
		for c, col := range summary.Columns {
			value, ok := cellValue(row, col)
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(SummarySheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if len(summary.Columns) > 0 {
		last, _ := excelize.ColumnNumberToName(len(summary.Columns))
		if err := f.SetColWidth(SummarySheet, "A", last, 18); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

// cellValue returns numbers as float64 so they stay numeric in the sheet.
// Missing values are reported as absent and leave the cell empty.
func cellValue(row concentration.PartnerSummary, col string) (interface{}, bool) {
	var v float64
	switch col {
	case concentration.ColYear:
		v = row.Year
	case concentration.ColActiveHS6:
		v = row.ActiveHS6
	case concentration.ColHHI:
		v = row.HHI
	case concentration.ColCR10:
		v = row.CR10
	case concentration.ColEntropy:
		v = row.EntropyNorm
	case concentration.ColHHIStd:
		v = row.HHIStd
	case concentration.ColCR10CV:
		v = row.CR10CV
	case concentration.ColEntropyStd:
		v = row.EntropyStd
	default:
		s := row.Cell(col)
		return s, s != ""
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return v, true
}

// RegimeCounts tallies partners per regime and stability category
func RegimeCounts(summary *concentration.SummaryTable) map[concentration.Regime]map[concentration.Stability]int {
	counts := make(map[concentration.Regime]map[concentration.Stability]int)
	for _, regime := range concentration.Regimes {
		counts[regime] = make(map[concentration.Stability]int)
	}
	for _, row := range summary.Rows {
		if counts[row.Regime] == nil {
			counts[row.Regime] = make(map[concentration.Stability]int)
		}
		counts[row.Regime][row.Stability()]++
	}
	return counts
}

func writeRegimesSheet(f *excelize.File, summary *concentration.SummaryTable) error {
	header := []interface{}{"regime"}
	for _, s := range stabilityColumns {
		header = append(header, s.String())
	}
	header = append(header, "total")
	if err := f.SetSheetRow(RegimesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write regimes header: %w", err)
	}

	counts := RegimeCounts(summary)
	for i, regime := range concentration.Regimes {
		row := []interface{}{string(regime)}
		total := 0
		for _, s := range stabilityColumns {
			n := counts[regime][s]
			total += n
			row = append(row, n)
		}
		row = append(row, total)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(RegimesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write regimes row %s: %w", regime, err)
		}
	}
	return f.SetColWidth(RegimesSheet, "A", "A", 26)
}
