// Package concentration classifies export partners by trade concentration.
//
// A partner's latest-year HHI, CR10, normalized entropy and active HS6 count
// place it in one of three regimes:
//
//	Real diversification      low HHI and CR10, high entropy, broad HS6 coverage
//	Structural concentration  high HHI and CR10, low entropy
//	Transition / mixed        everything else, including missing metrics
//
// The regime and the trend stability category together select a short
// interpretation. Merge joins the latest-year and stability tables into the
// combined summary table, and Digest summarizes it per regime.
package concentration
