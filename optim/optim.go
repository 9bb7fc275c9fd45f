package optim

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// BatchLogLiker evaluates the per-series log-likelihoods of a batch at a
// packed parameter vector laid out series-contiguously. A series that hit
// numerical trouble reports -Inf and must not disturb its siblings.
type BatchLogLiker interface {
	LogLike(x []float64) []float64
}

// Settings tune one Minimize run. The zero value selects the defaults.
type Settings struct {
	MaxIterations int     // iteration cap, default 200
	GradientStep  float64 // finite-difference step h, default 1e-8
	RelTol        float64 // relative-improvement stopping tolerance, default 1e-9
	Bound         float64 // box half-width on every coordinate, default 1000
}

// Result carries the optimizer outcome. The last iterate is returned even
// when the search stopped at the iteration cap; Converged then flags every
// series of the batch as unconverged, a warning rather than an error.
type Result struct {
	X          []float64
	Iterations int
	Converged  []bool
}

// instabilityPenalty substitutes for a -Inf log-likelihood so the line
// search can back away from an unstable region instead of dying on it.
const instabilityPenalty = 1e10

func (s *Settings) defaults() {
	if s.MaxIterations <= 0 {
		s.MaxIterations = 200
	}
	if s.GradientStep <= 0 {
		s.GradientStep = 1e-8
	}
	if s.RelTol <= 0 {
		s.RelTol = 1e-9
	}
	if s.Bound <= 0 {
		s.Bound = 1000
	}
}

// Minimize searches for the packed parameter vector minimizing the mean
// negative log-likelihood across the batch, each series' term normalized
// by norm (the engines use nobs-1). nb is the batch size; len(x0) must be
// nb times the per-series parameter count.
//
// The box bounds are a numeric guard, not an active constraint: the search
// space is the unconstrained transformed space, so evaluation points and
// the returned iterate are clamped into the box rather than projected by
// the method itself.
func Minimize(ll BatchLogLiker, x0 []float64, nb int, norm float64, s Settings) (Result, error) {
	s.defaults()
	if nb <= 0 || len(x0)%nb != 0 {
		return Result{}, errors.New("optim: x0 length is not a multiple of the batch size")
	}
	if norm <= 0 {
		norm = 1
	}
	np := len(x0) / nb
	if np == 0 {
		// Nothing to optimize; every series is trivially converged.
		conv := make([]bool, nb)
		for i := range conv {
			conv[i] = true
		}
		return Result{Converged: conv}, nil
	}
	for _, v := range x0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, errors.New("optim: starting point has NaN or Inf")
		}
	}

	obj := &objective{ll: ll, nb: nb, np: np, norm: norm, h: s.GradientStep, bound: s.Bound}

	problem := optimize.Problem{
		Func: obj.value,
		Grad: obj.gradient,
	}
	settings := &optimize.Settings{
		MajorIterations:   s.MaxIterations,
		GradientThreshold: 1e-8,
		Converger: &optimize.FunctionConverge{
			Relative:   s.RelTol,
			Iterations: 10,
		},
	}

	start := clampCopy(x0, s.Bound)
	res, err := optimize.Minimize(problem, start, settings, &optimize.LBFGS{})

	converged := make([]bool, nb)
	if res == nil {
		if err != nil {
			return Result{}, err
		}
		return Result{}, errors.New("optim: minimizer returned no result")
	}

	x := clampCopy(res.X, s.Bound)
	ok := err == nil && res.Status != optimize.IterationLimit
	for i := range converged {
		c := ok
		for j := 0; j < np; j++ {
			v := x[i*np+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				c = false
			}
		}
		converged[i] = c
	}

	return Result{
		X:          x,
		Iterations: res.Stats.MajorIterations,
		Converged:  converged,
	}, nil
}

type objective struct {
	ll    BatchLogLiker
	nb    int
	np    int
	norm  float64
	h     float64
	bound float64
}

// nll maps one per-series log-likelihood to its normalized negative value,
// substituting the penalty for non-finite entries.
func (o *objective) nll(l float64) float64 {
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return instabilityPenalty
	}
	return -l / o.norm
}

func (o *objective) value(x []float64) float64 {
	lls := o.ll.LogLike(clampCopy(x, o.bound))
	sum := 0.0
	for _, l := range lls {
		sum += o.nll(l)
	}
	return sum / float64(o.nb)
}

// gradient computes the batched central finite difference. The objective is
// separable across series, so perturbing parameter index i of every series
// simultaneously yields the gradient component at i for the whole batch:
// one pair of batched evaluations per index, O(np) evaluations total
// instead of O(nb*np).
func (o *objective) gradient(dst, x []float64) {
	xc := clampCopy(x, o.bound)
	xp := make([]float64, len(xc))
	xm := make([]float64, len(xc))
	scale := 1 / (2 * o.h * float64(o.nb))
	for i := 0; i < o.np; i++ {
		copy(xp, xc)
		copy(xm, xc)
		for j := 0; j < o.nb; j++ {
			xp[j*o.np+i] += o.h
			xm[j*o.np+i] -= o.h
		}
		llp := o.ll.LogLike(xp)
		llm := o.ll.LogLike(xm)
		for j := 0; j < o.nb; j++ {
			dst[j*o.np+i] = (o.nll(llp[j]) - o.nll(llm[j])) * scale
		}
	}
}

func clampCopy(x []float64, bound float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v > bound {
			v = bound
		} else if v < -bound {
			v = -bound
		}
		out[i] = v
	}
	return out
}
