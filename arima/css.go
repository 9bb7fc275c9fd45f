package arima

import (
	"math"
)

// CSSLogLike evaluates the conditional-sum-of-squares approximation of the
// log-likelihood for one differenced, centered series. The residual
// recursion is
//
//	v_t = y_t - sum phi_i*y_{t-i} - sum theta_j*v_{t-j}
//
// over the reduced polynomials, started at t = max(nPhi, nTheta) with
// earlier residuals held at zero. It returns the log-likelihood
// -n/2*log(SSQ/n), the innovation variance estimate SSQ/n and the residual
// series (aligned with y; the conditioning prefix holds zeros). ok is false
// when the recursion produced a non-finite value; the caller treats that
// series as numerically unstable without touching its batch siblings.
func CSSLogLike(y, phi, theta []float64) (loglike, sigma2 float64, vs []float64, ok bool) {
	n := len(y)
	start := len(phi)
	if len(theta) > start {
		start = len(theta)
	}
	vs = make([]float64, n)
	if n <= start {
		return math.Inf(-1), 0, vs, false
	}

	ssq := 0.0
	for t := start; t < n; t++ {
		v := y[t]
		for i, p := range phi {
			v -= p * y[t-i-1]
		}
		for j, q := range theta {
			v -= q * vs[t-j-1]
		}
		vs[t] = v
		ssq += v * v
	}

	neff := float64(n - start)
	sigma2 = ssq / neff
	if math.IsNaN(ssq) || math.IsInf(ssq, 0) || sigma2 <= 0 {
		return math.Inf(-1), 0, vs, false
	}
	loglike = -0.5 * neff * math.Log(sigma2)
	return loglike, sigma2, vs, true
}

// cssEngine adapts CSSLogLike to the batched likelihood interface used by
// the optimizer: map the packed unconstrained iterate to coefficients and
// evaluate every series of the (already differenced) batch.
type cssEngine struct {
	order Order
	yd    [][]float64 // differenced series, one per batch member
}

func (e *cssEngine) LogLike(x []float64) []float64 {
	np := e.order.NumParams()
	ll := make([]float64, len(e.yd))
	params := NewParams(e.order)
	yc := make([]float64, 0)
	// The optimizer iterates in unconstrained space; evaluate in
	// coefficient space.
	xc := append([]float64(nil), x...)
	TransformBatch(e.order, xc)
	for i, y := range e.yd {
		if err := params.Unpack(e.order, xc[i*np:(i+1)*np]); err != nil {
			ll[i] = math.Inf(-1)
			continue
		}
		yc = center(yc[:0], y, e.order, params.Mu)
		l, _, _, ok := CSSLogLike(yc, reducedAR(e.order, params), reducedMA(e.order, params))
		if !ok {
			ll[i] = math.Inf(-1)
			continue
		}
		ll[i] = l
	}
	return ll
}

// center subtracts the trend term from a differenced series. With no trend
// the series passes through unchanged.
func center(dst, y []float64, o Order, mu float64) []float64 {
	if o.K == 0 {
		return append(dst, y...)
	}
	for _, v := range y {
		dst = append(dst, v-mu)
	}
	return dst
}
