package autoarima

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/batcharima/arima"
	"github.com/sartorproj/batcharima/batch"
	"github.com/sartorproj/batcharima/stats"
)

// Result holds one selected and ML-fitted model per original series, in the
// caller's series order.
type Result struct {
	Orders    []arima.Order
	Params    []arima.Params
	IC        []arima.InformationCriteria
	Converged []bool
	Stable    []bool

	nobs   int
	groups []fitGroup
}

// fitGroup ties a fitted model to the original positions of its series. A
// nil model marks series whose refit failed; their predictions are NaN.
type fitGroup struct {
	indices []int
	model   *arima.Model
}

// Fit selects one SARIMA order per series of b and fits it by maximum
// likelihood. The pipeline partitions the batch by seasonal differencing,
// then by first differencing, grid-searches each bucket with the fast
// method, picks the per-series information-criterion minimizer and refits
// the winners. Splits are recorded as index lists so the final results come
// back in the caller's original series order.
func Fit(b *batch.Batch, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if b == nil || b.NSeries == 0 || b.NObs == 0 {
		return nil, fmt.Errorf("%w: empty batch", arima.ErrInsufficientData)
	}

	s := cfg.SeasonalPeriod
	nb := b.NSeries

	seasonality := cfg.Seasonality
	if seasonality == nil {
		seasonality = stats.NSDiffs
	}
	stationarity := cfg.Stationarity
	if stationarity == nil {
		stationarity = stats.NDiffs
	}

	// Stage 1: seasonal differencing per series.
	sds := make([]int, nb)
	if s >= 2 {
		for i := range sds {
			if cfg.SD >= 0 {
				sds[i] = cfg.SD
			} else {
				sds[i] = seasonality(b.Series(i), s, cfg.MaxSD)
			}
		}
	}

	// Stage 2: first differencing, decided on the seasonally differenced
	// series.
	ds := make([]int, nb)
	for i := range ds {
		if cfg.D >= 0 {
			ds[i] = cfg.D
			continue
		}
		y := b.Series(i)
		if sds[i] > 0 {
			y = batch.Difference(y, 0, sds[i], s)
		}
		ds[i] = stationarity(y, cfg.MaxD)
	}

	res := &Result{
		Orders:    make([]arima.Order, nb),
		Params:    make([]arima.Params, nb),
		IC:        make([]arima.InformationCriteria, nb),
		Converged: make([]bool, nb),
		Stable:    make([]bool, nb),
		nobs:      b.NObs,
	}

	for _, bkt := range partitionByDiff(ds, sds) {
		if err := fitBucket(b, bkt, cfg, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// diffBucket is one (d, D) partition cell with the original indices of its
// members.
type diffBucket struct {
	d, sd   int
	indices []int
}

// partitionByDiff groups series indices by their (d, D) pair, in a
// deterministic order.
func partitionByDiff(ds, sds []int) []diffBucket {
	type key struct{ d, sd int }
	members := make(map[key][]int)
	for i := range ds {
		k := key{ds[i], sds[i]}
		members[k] = append(members[k], i)
	}
	keys := make([]key, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sd != keys[j].sd {
			return keys[i].sd < keys[j].sd
		}
		return keys[i].d < keys[j].d
	})
	out := make([]diffBucket, len(keys))
	for i, k := range keys {
		out[i] = diffBucket{d: k.d, sd: k.sd, indices: members[k]}
	}
	return out
}

// fitBucket runs stages 3-5 for one (d, D) bucket: grid search with the
// fast method, per-series arg-min, ML refit of the winners, and scatter of
// the results back to original positions.
func fitBucket(b *batch.Batch, bkt diffBucket, cfg *Config, res *Result) error {
	sub := b.Select(bkt.indices)
	orders := candidateOrders(cfg, bkt.d, bkt.sd)
	if len(orders) == 0 {
		return fmt.Errorf("%w: search grid is empty for d=%d D=%d",
			arima.ErrInvalidOrder, bkt.d, bkt.sd)
	}
	method := cfg.searchMethod(b.NObs)

	// Stage 3: grid cells are independent, so they may run concurrently.
	// The arg-min below is the synchronization barrier.
	scores := make([][]float64, len(orders))
	g := new(errgroup.Group)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}
	for ci, o := range orders {
		ci, o := ci, o
		g.Go(func() error {
			scores[ci] = fitCandidate(sub, o, method, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Stage 4: per-series arg-min. Candidates are ordered simplest first,
	// so ties and all-failed series resolve to the least complex order.
	selected := make([]int, len(bkt.indices))
	for j := range bkt.indices {
		best := 0
		bestScore := scores[0][j]
		for ci := 1; ci < len(orders); ci++ {
			if scores[ci][j] < bestScore {
				best, bestScore = ci, scores[ci][j]
			}
		}
		selected[j] = best
	}

	// Stage 5: ML refit, one sub-batch per winning order.
	for ci := range orders {
		var positions []int
		for j, sel := range selected {
			if sel == ci {
				positions = append(positions, j)
			}
		}
		if len(positions) == 0 {
			continue
		}
		orig := make([]int, len(positions))
		for j, pos := range positions {
			orig[j] = bkt.indices[pos]
		}

		m := arima.NewModel(orders[ci])
		m.Method = arima.MethodML
		m.Kalman = cfg.Kalman
		m.Opt = cfg.Opt
		fr, err := m.Fit(sub.Select(positions))
		if err != nil {
			// The refit can reject what the grid search tolerated (for
			// example a bucket too short for this order). The series keep
			// their chosen order but carry failure flags; the rest of the
			// batch is untouched.
			for _, gi := range orig {
				res.Orders[gi] = orders[ci]
				res.Params[gi] = arima.NewParams(orders[ci])
				res.IC[gi] = arima.InformationCriteria{
					AIC: math.Inf(1), AICc: math.Inf(1), BIC: math.Inf(1), LogLik: math.Inf(-1),
				}
			}
			res.groups = append(res.groups, fitGroup{indices: orig})
			continue
		}
		for j, gi := range orig {
			res.Orders[gi] = orders[ci]
			res.Params[gi] = fr.Params[j]
			res.IC[gi] = fr.IC[j]
			res.Converged[gi] = fr.Converged[j]
			res.Stable[gi] = fr.Stable[j]
		}
		res.groups = append(res.groups, fitGroup{indices: orig, model: m})
	}
	return nil
}

// candidateOrders enumerates the (p,q,P,Q) grid for one (d, D) bucket,
// simplest models first. The trend term is derived, never searched: k = 1
// exactly when d+D <= 1. The degenerate all-zero order is skipped.
func candidateOrders(cfg *Config, d, sd int) []arima.Order {
	s := cfg.SeasonalPeriod
	maxP, maxQ := cfg.MaxP, cfg.MaxQ
	maxSP, maxSQ := 0, 0
	seasonalS := 0
	if s >= 2 {
		seasonalS = s
		maxSP, maxSQ = cfg.MaxSP, cfg.MaxSQ
		if maxP > s-1 {
			maxP = s - 1
		}
		if maxQ > s-1 {
			maxQ = s - 1
		}
	}
	k := 0
	if d+sd <= 1 {
		k = 1
	}

	var out []arima.Order
	for p := cfg.StartP; p <= maxP; p++ {
		for q := cfg.StartQ; q <= maxQ; q++ {
			for sp := 0; sp <= maxSP; sp++ {
				for sq := 0; sq <= maxSQ; sq++ {
					if p+q+sp+sq == 0 {
						continue
					}
					o := arima.Order{
						P: p, D: d, Q: q,
						SP: sp, SD: sd, SQ: sq, S: seasonalS,
						K: k,
					}
					if o.Validate() != nil {
						continue
					}
					out = append(out, o)
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Complexity() < out[j].Complexity()
	})
	return out
}

// fitCandidate scores one grid cell: the chosen information criterion per
// series, with +Inf for series the candidate could not fit. A candidate
// that fails outright scores +Inf everywhere instead of aborting the
// search.
func fitCandidate(sub *batch.Batch, o arima.Order, method arima.Method, cfg *Config) []float64 {
	scores := make([]float64, sub.NSeries)
	m := arima.NewModel(o)
	m.Method = method
	m.Kalman = cfg.Kalman
	m.Opt = cfg.Opt
	fr, err := m.Fit(sub)
	if err != nil {
		for i := range scores {
			scores[i] = math.Inf(1)
		}
		return scores
	}
	for i := range scores {
		if !fr.Stable[i] {
			scores[i] = math.Inf(1)
			continue
		}
		scores[i] = fr.IC[i].Score(cfg.IC)
	}
	return scores
}

// Predict returns predictions for times [start, end) of every series in
// the caller's original order, shaped (end-start, batch). Series whose
// refit failed are NaN throughout.
func (r *Result) Predict(start, end int) (*batch.Batch, error) {
	if start < 0 || end <= start {
		return nil, fmt.Errorf("autoarima: invalid prediction range [%d, %d)", start, end)
	}
	out := batch.New(end-start, len(r.Orders))
	for _, g := range r.groups {
		if g.model == nil {
			for _, idx := range g.indices {
				col := out.Series(idx)
				for t := range col {
					col[t] = math.NaN()
				}
			}
			continue
		}
		sub, err := g.model.Predict(start, end)
		if err != nil {
			return nil, err
		}
		if err := sub.Scatter(out, g.indices); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Forecast returns point forecasts for steps past the sample, shaped
// (steps, batch), in the caller's original series order.
func (r *Result) Forecast(steps int) (*batch.Batch, error) {
	return r.Predict(r.nobs, r.nobs+steps)
}
