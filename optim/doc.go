// Package optim drives the batched maximum-likelihood fit.
//
// The objective is the mean negative log-likelihood across the batch over
// the concatenated transformed-parameter vector (batch size times
// per-series parameter count entries). Because the objective is separable
// across series, the gradient uses a batch-aware finite-difference trick:
// perturbing parameter index i identically in every series at once lets a
// single pair of batched likelihood evaluations produce the gradient
// component at i for the entire batch. The cost per iteration is
// O(num_params) likelihood evaluations, not O(batch_size*num_params).
//
// The outer search is a bound-constrained quasi-Newton loop built on
// gonum's L-BFGS with a relative-improvement stopping tolerance and a
// fixed iteration cap. The search space is the unconstrained transformed
// space, so the box bounds act as a numeric guard: evaluation points and
// the returned iterate are clamped into the box. Non-convergence is a
// per-series warning flag; the last iterate is always returned.
package optim
