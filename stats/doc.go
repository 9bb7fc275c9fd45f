// Package stats provides the statistical tests behind automatic order
// selection: the KPSS stationarity test, autocorrelation functions and a
// seasonal-strength measure. Everything operates on plain float64 slices;
// batched variants loop over the series of a batch.Batch and return one
// decision per series.
package stats
