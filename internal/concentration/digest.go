package concentration

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"

	"tradeconc/internal/dataset"
)

// MetricDigest holds the central tendency of one metric within a regime.
// Mean and Median are NaN when no partner has a value.
type MetricDigest struct {
	Mean   float64
	Median float64
}

// RegimeDigest summarizes the partners of one regime
type RegimeDigest struct {
	Regime   Regime
	Partners int
	HHI      MetricDigest
	CR10     MetricDigest
	Entropy  MetricDigest
}

// Digest computes per-regime statistics in Regimes order. Regimes without
// partners are omitted.
func Digest(s *SummaryTable) []RegimeDigest {
	var digests []RegimeDigest
	for _, regime := range Regimes {
		var hhi, cr10, entropy []float64
		count := 0
		for _, row := range s.Rows {
			if row.Regime != regime {
				continue
			}
			count++
			hhi = appendFinite(hhi, row.HHI)
			cr10 = appendFinite(cr10, row.CR10)
			entropy = appendFinite(entropy, row.EntropyNorm)
		}
		if count == 0 {
			continue
		}
		digests = append(digests, RegimeDigest{
			Regime:   regime,
			Partners: count,
			HHI:      digestOf(hhi),
			CR10:     digestOf(cr10),
			Entropy:  digestOf(entropy),
		})
	}
	return digests
}

func appendFinite(values []float64, v float64) []float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return values
	}
	return append(values, v)
}

func digestOf(values []float64) MetricDigest {
	d := MetricDigest{Mean: math.NaN(), Median: math.NaN()}
	if mean, err := stats.Mean(values); err == nil {
		d.Mean = mean
	}
	if median, err := stats.Median(values); err == nil {
		d.Median = median
	}
	return d
}

// WriteTable prints the combined table as aligned text
func WriteTable(w io.Writer, s *SummaryTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(s.Columns, "\t"))
	for _, record := range s.Records() {
		fmt.Fprintln(tw, strings.Join(record, "\t"))
	}
	return tw.Flush()
}

// WriteDigest prints the per-regime digest as aligned text
func WriteDigest(w io.Writer, digests []RegimeDigest) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "regime\tpartners\thhi mean\thhi median\tcr10 mean\tcr10 median\tentropy mean\tentropy median")
	for _, d := range digests {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Regime, d.Partners,
			fixed(d.HHI.Mean, 4), fixed(d.HHI.Median, 4),
			fixed(d.CR10.Mean, 3), fixed(d.CR10.Median, 3),
			fixed(d.Entropy.Mean, 3), fixed(d.Entropy.Median, 3),
		)
	}
	return tw.Flush()
}

func fixed(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "-"
	}
	return dataset.FormatFixed(v, decimals)
}
