package arima

import (
	"gonum.org/v1/gonum/mat"
)

// StartParams produces least-squares starting guesses for the optimizer
// from one differenced series. It is a two-stage procedure run
// independently per series:
//
//  1. fit a short AR(1) model by ordinary least squares on lagged values;
//  2. compute its residuals, then jointly fit the full model by least
//     squares on lagged values and lagged residuals.
//
// Seasonal AR and MA terms contribute regressors at lags s, 2s, ... When
// the rows left after lag trimming are fewer than the parameters, the fit
// is skipped and neutral defaults are returned (zero coefficients, mu=0,
// sigma2=1). The result is a starting point, not an estimate: blocks that
// come out non-stationary or non-invertible are zeroed.
func StartParams(o Order, yd []float64) Params {
	params := NewParams(o)

	y := make([]float64, len(yd))
	copy(y, yd)

	if o.K == 1 {
		mean := 0.0
		for _, v := range y {
			mean += v
		}
		mean /= float64(len(y))
		params.Mu = mean
		for i := range y {
			y[i] -= mean
		}
	}

	if o.P+o.Q+o.SP+o.SQ == 0 {
		params.Sigma2 = sampleVariance(y)
		return params
	}

	// Stage 1: AR(1) on lagged values.
	resid := make([]float64, len(y))
	copy(resid, y)
	if len(y) > 2 {
		lag1 := lagColumns(y, []int{1})
		target := y[1:]
		if coef, ok := lstsq(lag1, target); ok {
			for t := 1; t < len(y); t++ {
				resid[t] = y[t] - coef[0]*y[t-1]
			}
		}
	}

	// Stage 2: joint fit on [lagged y | lagged residuals].
	arLags := blockLags(o.P, o.SP, o.S)
	maLags := blockLags(o.Q, o.SQ, o.S)
	maxLag := 0
	for _, l := range append(append([]int{}, arLags...), maLags...) {
		if l > maxLag {
			maxLag = l
		}
	}

	rows := len(y) - maxLag
	cols := len(arLags) + len(maLags)
	if rows <= cols {
		// Too short for the order: keep neutral defaults.
		params.Sigma2 = 1
		return params
	}

	design := mat.NewDense(rows, cols, nil)
	target := make([]float64, rows)
	for r := 0; r < rows; r++ {
		t := r + maxLag
		target[r] = y[t]
		c := 0
		for _, l := range arLags {
			design.Set(r, c, y[t-l])
			c++
		}
		for _, l := range maLags {
			design.Set(r, c, resid[t-l])
			c++
		}
	}

	coef, ok := lstsqDense(design, target)
	if !ok {
		params.Sigma2 = 1
		return params
	}

	c := 0
	for i := 0; i < o.P; i++ {
		params.AR[i] = coef[c]
		c++
	}
	for i := 0; i < o.SP; i++ {
		params.SAR[i] = coef[c]
		c++
	}
	for i := 0; i < o.Q; i++ {
		params.MA[i] = coef[c]
		c++
	}
	for i := 0; i < o.SQ; i++ {
		params.SMA[i] = coef[c]
		c++
	}

	// A starting point outside the stationary/invertible region would put
	// the inverse transform on undefined ground; zero such blocks.
	if !IsStationary(params.AR) {
		zero(params.AR)
	}
	if !IsInvertible(params.MA) {
		zero(params.MA)
	}
	if !IsStationary(params.SAR) {
		zero(params.SAR)
	}
	if !IsInvertible(params.SMA) {
		zero(params.SMA)
	}

	// Sigma2 seeds the innovation variance, so use the stage-2 residual
	// variance; the series variance would be inflated by the ARMA
	// structure (1/(1-phi^2) for an AR(1)).
	ssq := 0.0
	for r := 0; r < rows; r++ {
		pred := 0.0
		for j := range coef {
			pred += coef[j] * design.At(r, j)
		}
		d := target[r] - pred
		ssq += d * d
	}
	params.Sigma2 = ssq / float64(rows-cols)
	if params.Sigma2 <= 0 {
		params.Sigma2 = 1
	}
	return params
}

// StartParamsBatch runs StartParams on every series of the differenced
// batch and returns the packed starting vector in coefficient space.
func StartParamsBatch(o Order, series [][]float64) []float64 {
	params := make([]Params, len(series))
	for i, y := range series {
		params[i] = StartParams(o, y)
	}
	return PackBatch(o, params)
}

// blockLags returns the regressor lags for one AR or MA side: 1..n plus the
// seasonal multiples s, 2s, ..., ns*s.
func blockLags(n, ns, s int) []int {
	lags := make([]int, 0, n+ns)
	for i := 1; i <= n; i++ {
		lags = append(lags, i)
	}
	for j := 1; j <= ns; j++ {
		lags = append(lags, j*s)
	}
	return lags
}

// lagColumns builds the design matrix of y at the given lags, trimmed so
// all rows are complete.
func lagColumns(y []float64, lags []int) *mat.Dense {
	maxLag := 0
	for _, l := range lags {
		if l > maxLag {
			maxLag = l
		}
	}
	rows := len(y) - maxLag
	m := mat.NewDense(rows, len(lags), nil)
	for r := 0; r < rows; r++ {
		t := r + maxLag
		for c, l := range lags {
			m.Set(r, c, y[t-l])
		}
	}
	return m
}

// lstsq solves min ||A*x - b|| for a design trimmed to match b's offset.
func lstsq(a *mat.Dense, b []float64) ([]float64, bool) {
	rows, _ := a.Dims()
	if rows != len(b) {
		b = b[len(b)-rows:]
	}
	return lstsqDense(a, b)
}

// lstsqDense is the least-squares collaborator: QR-based solve of the
// overdetermined system A*x = b.
func lstsqDense(a *mat.Dense, b []float64) ([]float64, bool) {
	rows, cols := a.Dims()
	if rows < cols || cols == 0 {
		return nil, false
	}
	var qr mat.QR
	qr.Factorize(a)
	rhs := mat.NewVecDense(rows, b)
	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, rhs); err != nil {
		return nil, false
	}
	out := make([]float64, cols)
	for i := range out {
		out[i] = sol.AtVec(i)
	}
	return out, true
}

func sampleVariance(y []float64) float64 {
	if len(y) < 2 {
		return 1
	}
	mean := 0.0
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	ss := 0.0
	for _, v := range y {
		d := v - mean
		ss += d * d
	}
	return ss / float64(len(y)-1)
}

func zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}
