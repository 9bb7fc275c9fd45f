package kalman

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Options control one filter run.
type Options struct {
	// InitIterations selects the initial covariance: 0 solves the discrete
	// Lyapunov equation exactly; n > 0 runs n steady-state recursion steps
	// instead, a speed/accuracy trade-off.
	InitIterations int
}

// Result is the outcome of filtering one series. When OK is false the
// series hit a numerical instability (non-positive innovation variance or
// a non-finite value); LogLike is -Inf and the remaining fields are
// unspecified. A bad series never affects its batch siblings.
type Result struct {
	LogLike  float64
	Sigma2   float64
	Resid    []float64 // innovations v_t, aligned with y
	Forecast []float64 // len fcSteps point forecasts past the sample, nil if fcSteps == 0
	OK       bool
}

// Filter runs the Kalman recursion over one series with the given reduced
// AR and MA polynomials, returning the concentrated log-likelihood
//
//	loglike = -0.5*(sum log F_t + n*log(sigma2)) - n/2*(log 2pi + 1)
//
// with sigma2 = mean(v_t^2/F_t) profiled out. The time recursion is
// strictly sequential; parallelism lives across the batch, not here.
// fcSteps > 0 extends the predict step past the sample, emitting Z*alpha
// as point forecasts.
func Filter(y, phi, theta []float64, fcSteps int, opts Options) Result {
	bad := Result{LogLike: math.Inf(-1)}

	ss := NewStateSpace(phi, theta)
	p, err := ss.InitialCovariance(opts.InitIterations)
	if err != nil {
		return bad
	}

	r := ss.R
	n := len(y)
	if n == 0 {
		return bad
	}

	alpha := mat.NewVecDense(r, nil)
	rr := ss.selfOuter()

	var (
		k         = mat.NewVecDense(r, nil)
		tAlpha    mat.VecDense
		tp, l, pl mat.Dense
	)

	vs := make([]float64, n)
	sumLogF := 0.0
	ssqVF := 0.0

	for t := 0; t < n; t++ {
		// Z = e1, so the innovation and its variance read off entry 0.
		v := y[t] - alpha.AtVec(0)
		f := p.At(0, 0)
		if f <= 0 || math.IsNaN(f) || math.IsNaN(v) || math.IsInf(v, 0) {
			return bad
		}
		vs[t] = v
		sumLogF += math.Log(f)
		ssqVF += v * v / f

		// Combined gain: K = (1/F) * T * P * Z'.
		tp.Mul(ss.T, p)
		for i := 0; i < r; i++ {
			k.SetVec(i, tp.At(i, 0)/f)
		}

		// alpha <- T*alpha + K*v.
		tAlpha.MulVec(ss.T, alpha)
		tAlpha.AddScaledVec(&tAlpha, v, k)
		alpha.CopyVec(&tAlpha)

		// P <- T*P*L' + S*S', L = T - K*Z.
		l.CloneFrom(ss.T)
		for i := 0; i < r; i++ {
			l.Set(i, 0, l.At(i, 0)-k.AtVec(i))
		}
		pl.Mul(&tp, l.T())
		p.Add(&pl, rr)
	}

	nf := float64(n)
	sigma2 := ssqVF / nf
	if sigma2 <= 0 || math.IsNaN(sigma2) {
		return bad
	}
	loglike := -0.5*(sumLogF+nf*math.Log(sigma2)) - nf/2*(math.Log(2*math.Pi)+1)

	var fc []float64
	if fcSteps > 0 {
		// After the last update alpha already predicts time n, so the
		// first step reads before advancing.
		fc = make([]float64, fcSteps)
		for h := 0; h < fcSteps; h++ {
			fc[h] = alpha.AtVec(0)
			tAlpha.MulVec(ss.T, alpha)
			alpha.CopyVec(&tAlpha)
		}
	}

	return Result{
		LogLike:  loglike,
		Sigma2:   sigma2,
		Resid:    vs,
		Forecast: fc,
		OK:       true,
	}
}
