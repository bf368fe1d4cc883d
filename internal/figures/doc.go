// Package figures renders the chart set for the combined summary table with
// gonum/plot: an entropy/HHI scatter, CR10 and HHI bar charts, an optional
// entropy time series, a regime/stability matrix and the table itself as an
// image. Each chart is written as its own PNG in the figures directory.
package figures
