// Package arima fits ARIMA and seasonal ARIMA models to whole batches of
// series at once: one order, many series, per-series parameters.
//
// # Fitting
//
//	o := arima.Order{P: 1, D: 1, Q: 1, K: 1}
//	m := arima.NewModel(o)
//	fit, err := m.Fit(b) // b is a *batch.Batch
//
// Fit differences each series, seeds the optimizer with conditional
// least-squares estimates, maps them through the inverse stationarity
// transform, runs a quasi-Newton search over the batched likelihood
// (exact Kalman-filter likelihood, or conditional sum of squares with
// Method = MethodCSS) and scores the result per series.
//
// # Parameterization
//
// Per-series parameters travel in two spaces. Coefficient space is the
// natural (mu, ar, ma, sar, sma) form of Params. Optimizer space is
// unconstrained: each AR/MA block is mapped through tanh and a
// Durbin-Levinson recursion so that any real vector yields a stationary,
// invertible model. TransformBatch and InvTransformBatch convert flat
// packed vectors between the two.
//
// # Failure policy
//
// Order problems (ErrInvalidOrder) and batches too short to fit
// (ErrInsufficientData) fail synchronously. Everything after that is
// per-series: a numerically unstable series carries -Inf log-likelihood
// and +Inf information criteria, a non-converged series keeps its last
// iterate with Converged=false, and neither disturbs the other series of
// the batch.
package arima
