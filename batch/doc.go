// Package batch provides the batched observation matrix and the
// differencing operators used throughout the module.
//
// A Batch is a dense (nobs, nseries) matrix with series-major contiguity:
// each series is one contiguous run of the backing slice. Every package in
// this module consumes and produces this layout; it is documented once here
// and assumed everywhere else.
//
// # Creating Batches
//
// From individual series of equal length:
//
//	b, err := batch.FromSeries(sales, visits, errors)
//
// From a wide-format CSV file (one column per series):
//
//	b, names, err := batch.LoadCSV("metrics.csv", nil)
//
// # Differencing
//
// Difference applies (1-L)^d then (1-L^s)^D and shrinks the series by
// d + s*D. Undifference inverts it exactly given the last d + s*D raw
// observations as seed:
//
//	z := batch.Difference(y, 1, 1, 12)
//	y2, _ := batch.Undifference(z, y[:13], 1, 1, 12) // equals y[13:]
//
// Both kernels are generic over the floating type; DifferenceBatch and
// UndifferenceBatch apply them across a float64 batch.
//
// # Partitioning
//
// Select gathers a subset of series into a new batch and Scatter writes
// them back to their original positions. Any refinement of a batch into
// buckets built from these two operations is a lossless permutation.
package batch
