package arima

import "errors"

var (
	// ErrInvalidOrder marks orders rejected before any computation: negative
	// or over-cap components, or a constant trend with d+D > 1.
	ErrInvalidOrder = errors.New("arima: invalid model order")

	// ErrInsufficientData marks series too short for the requested order.
	ErrInsufficientData = errors.New("arima: insufficient observations")

	// ErrNotFitted marks prediction attempted before a successful Fit.
	ErrNotFitted = errors.New("arima: model not fitted")
)

// A failure on one series never aborts the rest of the batch. The engines
// report per-series trouble through flags instead of errors:
//
//   - numerical instability (F_t <= 0, NaN or Inf parameters) yields a
//     -Inf log-likelihood for that series, steering the optimizer and the
//     order search away from it;
//   - optimizer non-convergence is a warning flag, the last iterate is
//     still returned;
//   - a too-short series degrades the starting-point estimate to neutral
//     defaults instead of failing.
