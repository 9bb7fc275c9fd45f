// Package kalman implements the exact ARMA likelihood engine: Harvey's
// state-space form filtered with the standard Kalman recursion.
//
// For a series with reduced AR polynomial phi and reduced MA polynomial
// theta, the state dimension is r = max(len(phi), len(theta)+1), the
// transition matrix carries phi in its first column with ones on the
// superdiagonal, the selection vector is [1, theta...], and observation is
// the first state component. The recursion uses the combined-gain form:
//
//	v_t = y_t - Z*alpha,  F_t = Z*P*Z'
//	K   = (1/F_t) * T*P*Z'
//	alpha <- T*alpha + K*v_t
//	P     <- T*P*L' + R*R',  L = T - K*Z
//
// The log-likelihood is concentrated: sigma2 is profiled out as
// mean(v_t^2/F_t).
//
// The initial covariance solves the discrete Lyapunov equation
// vec(P0) = (I - T(x)T)^{-1} vec(R*R'); Options.InitIterations trades that
// exact solve for a fixed number of steady-state recursion steps.
//
// The recursion over time is strictly sequential. Batching happens one
// level up: callers run Filter independently per series, and a series that
// reports OK=false (F_t <= 0 or non-finite values) never disturbs the
// others.
package kalman
