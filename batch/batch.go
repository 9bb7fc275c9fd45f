package batch

import (
	"errors"
	"fmt"
	"math"
)

// Batch holds a set of independent time series that share one length and are
// processed together. The observation matrix has shape (NObs, NSeries) with
// series-major contiguity: series i occupies Data[i*NObs : (i+1)*NObs]. This
// is the one layout convention at the package boundary; every consumer in
// this module assumes it.
type Batch struct {
	Data    []float64
	NObs    int
	NSeries int
}

// New creates a zero-filled batch of nseries series, each of length nobs.
func New(nobs, nseries int) *Batch {
	return &Batch{
		Data:    make([]float64, nobs*nseries),
		NObs:    nobs,
		NSeries: nseries,
	}
}

// FromSeries creates a batch from individual series. All series must have
// the same length.
func FromSeries(series ...[]float64) (*Batch, error) {
	if len(series) == 0 {
		return nil, errors.New("batch: no series given")
	}
	nobs := len(series[0])
	for i, s := range series {
		if len(s) != nobs {
			return nil, fmt.Errorf("batch: series %d has length %d, want %d", i, len(s), nobs)
		}
	}
	b := New(nobs, len(series))
	for i, s := range series {
		copy(b.Series(i), s)
	}
	return b, nil
}

// Series returns series i as a view into the backing array. Mutating the
// returned slice mutates the batch.
func (b *Batch) Series(i int) []float64 {
	return b.Data[i*b.NObs : (i+1)*b.NObs]
}

// At returns the observation at time t of series i.
func (b *Batch) At(t, i int) float64 {
	return b.Data[i*b.NObs+t]
}

// Set assigns the observation at time t of series i.
func (b *Batch) Set(t, i int, v float64) {
	b.Data[i*b.NObs+t] = v
}

// Clone returns a deep copy of the batch.
func (b *Batch) Clone() *Batch {
	c := New(b.NObs, b.NSeries)
	copy(c.Data, b.Data)
	return c
}

// Select gathers the series at the given indices into a new batch, in the
// order given. It is the splitting half of a partition; Scatter is its
// exact inverse.
func (b *Batch) Select(indices []int) *Batch {
	out := New(b.NObs, len(indices))
	for pos, idx := range indices {
		copy(out.Series(pos), b.Series(idx))
	}
	return out
}

// Scatter writes the series of b into dst at the given indices: series pos
// of b lands at series indices[pos] of dst. Together with Select it makes
// any sequence of partitions losslessly reversible.
func (b *Batch) Scatter(dst *Batch, indices []int) error {
	if len(indices) != b.NSeries {
		return fmt.Errorf("batch: scatter got %d indices for %d series", len(indices), b.NSeries)
	}
	if dst.NObs != b.NObs {
		return fmt.Errorf("batch: scatter length mismatch: %d vs %d", dst.NObs, b.NObs)
	}
	for pos, idx := range indices {
		copy(dst.Series(idx), b.Series(pos))
	}
	return nil
}

// Mean returns the mean of series i.
func (b *Batch) Mean(i int) float64 {
	s := b.Series(i)
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Variance returns the sample variance of series i.
func (b *Batch) Variance(i int) float64 {
	s := b.Series(i)
	if len(s) < 2 {
		return 0
	}
	mean := b.Mean(i)
	sumSq := 0.0
	for _, v := range s {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(s)-1)
}

// HasNaN reports whether series i contains NaN or Inf values.
func (b *Batch) HasNaN(i int) bool {
	for _, v := range b.Series(i) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
