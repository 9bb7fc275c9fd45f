package arima

import (
	"math"

	"golang.org/x/exp/constraints"
)

// The stationarity transform maps unconstrained reals to AR coefficients
// guaranteed stationary (or MA coefficients guaranteed invertible) through
// partial autocorrelations: w_i = tanh(x_i), then a Durbin-Levinson
// recursion builds the coefficients. The MA direction is the same recursion
// with the cross-term sign negated. Both directions are O(n^2) per series
// and independent across the batch.

// pacfToCoeffs runs the Durbin-Levinson recursion forward, turning partial
// autocorrelations w (each in (-1,1)) into polynomial coefficients in
// place. maSign is -1 for AR, +1 for MA.
func pacfToCoeffs[F constraints.Float](w []F, maSign F) {
	n := len(w)
	if n < 2 {
		return
	}
	tmp := make([]F, n)
	copy(tmp, w)
	for j := 1; j < n; j++ {
		a := w[j]
		for k := 0; k < j; k++ {
			tmp[k] += maSign * a * w[j-k-1]
		}
		copy(w[:j], tmp[:j])
	}
}

// coeffsToPACF runs the recursion backward, recovering the partial
// autocorrelations from coefficients in place. It reports false when an
// intermediate |w| >= 1, meaning the input was not actually stationary
// (or invertible) for this length.
func coeffsToPACF[F constraints.Float](c []F, maSign F) bool {
	n := len(c)
	work := make([]F, n)
	for j := n - 1; j > 0; j-- {
		a := c[j]
		if a <= -1 || a >= 1 {
			return false
		}
		for k := 0; k < j; k++ {
			work[k] = (c[k] - maSign*a*c[j-k-1]) / (1 - a*a)
		}
		copy(c[:j], work[:j])
	}
	for _, v := range c {
		if v <= -1 || v >= 1 || v != v {
			return false
		}
	}
	return true
}

// transformBlock maps one unconstrained block to coefficient space.
func transformBlock(x []float64, maSign float64) {
	for i, v := range x {
		x[i] = math.Tanh(v)
	}
	pacfToCoeffs(x, maSign)
}

// invTransformBlock maps one coefficient block back to unconstrained space.
// When the block is not inside the stationary/invertible region it is
// zeroed instead; see the package notes on this fallback.
func invTransformBlock(x []float64, maSign float64) {
	c := make([]float64, len(x))
	copy(c, x)
	if !coeffsToPACF(c, maSign) {
		for i := range x {
			x[i] = 0
		}
		return
	}
	for i, v := range c {
		x[i] = math.Atanh(v)
	}
}

// forEachBlock visits the ar, ma, sar and sma blocks of one packed
// per-series parameter vector. mu, when present, is skipped.
func forEachBlock(o Order, x []float64, fn func(block []float64, maSign float64)) {
	pos := o.K
	fn(x[pos:pos+o.P], -1)
	pos += o.P
	fn(x[pos:pos+o.Q], +1)
	pos += o.Q
	fn(x[pos:pos+o.SP], -1)
	pos += o.SP
	fn(x[pos:pos+o.SQ], +1)
}

// TransformBatch maps a flat batched parameter vector from unconstrained
// optimizer space to stationary/invertible coefficient space, in place.
// Blocks are independent across series and across ar/ma/sar/sma.
func TransformBatch(o Order, x []float64) {
	np := o.NumParams()
	if np == 0 {
		return
	}
	for i := 0; i+np <= len(x); i += np {
		forEachBlock(o, x[i:i+np], transformBlock)
	}
}

// InvTransformBatch maps coefficient space back to unconstrained space, in
// place. Blocks that are not stationary/invertible are replaced with zeros
// (a neutral restart point) rather than failing the series.
func InvTransformBatch(o Order, x []float64) {
	np := o.NumParams()
	if np == 0 {
		return
	}
	for i := 0; i+np <= len(x); i += np {
		forEachBlock(o, x[i:i+np], invTransformBlock)
	}
}

// IsStationary reports whether coefficient block c lies strictly inside the
// stationary region (AR convention).
func IsStationary(c []float64) bool {
	cp := make([]float64, len(c))
	copy(cp, c)
	return coeffsToPACF(cp, -1)
}

// IsInvertible reports whether coefficient block c lies strictly inside the
// invertible region (MA convention).
func IsInvertible(c []float64) bool {
	cp := make([]float64, len(c))
	copy(cp, c)
	return coeffsToPACF(cp, 1)
}
