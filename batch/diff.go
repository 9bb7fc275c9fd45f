package batch

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Difference applies the non-seasonal difference operator (1-L)^d followed
// by the seasonal operator (1-L^s)^D. The result is shorter than y by
// d + s*D. The operator order is fixed; Undifference inverts it exactly.
func Difference[F constraints.Float](y []F, d, D, s int) []F {
	out := make([]F, len(y))
	copy(out, y)
	for i := 0; i < d; i++ {
		out = diffLag(out, 1)
	}
	for i := 0; i < D; i++ {
		out = diffLag(out, s)
	}
	return out
}

// Undifference reconstructs the original scale from values on the
// differenced scale. seed must hold the last d + s*D raw observations
// preceding fc. Reconstruction is exact: undifferencing the output of
// Difference against the consumed head of the series reproduces the tail
// of the input.
func Undifference[F constraints.Float](fc []F, seed []F, d, D, s int) ([]F, error) {
	need := d + s*D
	if len(seed) < need {
		return nil, fmt.Errorf("batch: undifference needs %d seed values, got %d", need, len(seed))
	}
	seed = seed[len(seed)-need:]

	out := make([]F, len(fc))
	copy(out, fc)

	// Non-seasonal differencing ran first, so seasonal inversion comes
	// first. Its seeds are tails of the d-times-differenced seed.
	w := make([]F, len(seed))
	copy(w, seed)
	for i := 0; i < d; i++ {
		w = diffLag(w, 1)
	}
	for level := D - 1; level >= 0; level-- {
		tail := make([]F, len(w))
		copy(tail, w)
		for i := 0; i < level; i++ {
			tail = diffLag(tail, s)
		}
		tail = tail[len(tail)-s:]
		for j := range out {
			if j < s {
				out[j] += tail[j]
			} else {
				out[j] += out[j-s]
			}
		}
	}

	// Invert the non-seasonal levels innermost first, seeding each level
	// with the last value of the seed differenced to that level.
	for level := d - 1; level >= 0; level-- {
		lev := make([]F, len(seed))
		copy(lev, seed)
		for i := 0; i < level; i++ {
			lev = diffLag(lev, 1)
		}
		last := lev[len(lev)-1]
		for j := range out {
			if j == 0 {
				out[j] += last
			} else {
				out[j] += out[j-1]
			}
		}
	}

	return out, nil
}

// diffLag computes y_t - y_{t-lag}, shrinking the slice by lag.
func diffLag[F constraints.Float](y []F, lag int) []F {
	if lag <= 0 || len(y) <= lag {
		return nil
	}
	out := make([]F, len(y)-lag)
	for i := lag; i < len(y); i++ {
		out[i-lag] = y[i] - y[i-lag]
	}
	return out
}

// DifferenceBatch applies Difference to every series of b.
func DifferenceBatch(b *Batch, d, D, s int) *Batch {
	lost := d + s*D
	out := New(b.NObs-lost, b.NSeries)
	for i := 0; i < b.NSeries; i++ {
		copy(out.Series(i), Difference(b.Series(i), d, D, s))
	}
	return out
}

// UndifferenceBatch lifts differenced-scale forecasts back to the original
// scale: fc holds values continuing past the end of raw, and each series is
// seeded from the tail of the corresponding raw series.
func UndifferenceBatch(fc, raw *Batch, d, D, s int) (*Batch, error) {
	if fc.NSeries != raw.NSeries {
		return nil, fmt.Errorf("batch: undifference batch size mismatch: %d vs %d", fc.NSeries, raw.NSeries)
	}
	out := New(fc.NObs, fc.NSeries)
	for i := 0; i < fc.NSeries; i++ {
		rec, err := Undifference(fc.Series(i), raw.Series(i), d, D, s)
		if err != nil {
			return nil, err
		}
		copy(out.Series(i), rec)
	}
	return out, nil
}
