// Package batcharima provides batched ARIMA and SARIMA time series modeling.
//
// BatchARIMA fits AutoRegressive Integrated Moving Average models to many
// independent time series at once. All series in a batch share one model
// order and one length, so every stage of the pipeline (differencing,
// parameter transforms, likelihood evaluation, optimization) runs the
// identical control flow across the batch. The per-series loops are
// data-parallel maps with no inter-iteration dependency.
//
// # Quick Start
//
// Fit a fixed-order model to a batch:
//
//	b, _ := batch.FromSeries(series1, series2, series3)
//	model := arima.NewModel(arima.Order{P: 1, D: 1, Q: 1, K: 1})
//	fit, _ := model.Fit(b)
//	fc, _ := model.Forecast(10)
//
// Use AutoARIMA to pick an order per series:
//
//	cfg := autoarima.DefaultConfig()
//	result, _ := autoarima.Fit(b, cfg)
//	fc, _ := result.Forecast(10)
//
// # Packages
//
//   - batch: the batched observation matrix and differencing operators
//   - arima: model order, parameter codec, stationarity transform,
//     starting-point estimation, CSS likelihood, and the fit/predict model
//   - kalman: the state-space Kalman filter likelihood engine
//   - optim: the batched bound-constrained quasi-Newton fit driver
//   - autoarima: automatic order selection over a batch
//   - stats: stationarity and seasonality tests
//
// # References
//
//   - Harvey, A.C. (1990). Forecasting, Structural Time Series Models and
//     the Kalman Filter
//   - Durbin, J., & Koopman, S.J. (2012). Time Series Analysis by State
//     Space Methods
//   - Jones, R.H. (1980). Maximum Likelihood Fitting of ARMA Models to
//     Time Series with Missing Observations
package batcharima
