// Package autoarima selects SARIMA orders automatically for a whole batch
// of series at once.
//
// # Pipeline
//
// Selection runs in six stages:
//
//  1. Decide the seasonal differencing order D per series (forced value or
//     seasonal-strength test) and partition the batch by D.
//  2. Inside each partition, decide the first-differencing order d per
//     series by iterated KPSS testing and partition again by (d, D).
//  3. Grid-search (p,q,P,Q) over the configured bounds in each bucket,
//     fitting every candidate across the whole bucket with the fast
//     likelihood and collecting an information criterion per series.
//  4. Per series, keep the order minimizing its criterion; failed or
//     unstable candidates score +Inf and are never chosen over a sound one.
//  5. Refit each winning (order, series set) group by exact maximum
//     likelihood.
//  6. Scatter results back through the recorded index lists, so outputs
//     line up exactly with the caller's original series order.
//
// # Usage
//
//	cfg := autoarima.DefaultConfig()
//	cfg.SeasonalPeriod = 12
//	res, err := autoarima.Fit(b, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fc, err := res.Forecast(24)
//
// Grid cells within a bucket run concurrently up to Config.Concurrency;
// everything else is deterministic and sequential.
package autoarima
