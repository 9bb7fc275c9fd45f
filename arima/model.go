package arima

import (
	"fmt"
	"math"

	"github.com/sartorproj/batcharima/batch"
	"github.com/sartorproj/batcharima/kalman"
	"github.com/sartorproj/batcharima/optim"
)

// Method selects the likelihood engine used during fitting.
type Method string

const (
	// MethodML fits by exact maximum likelihood through the Kalman filter.
	MethodML Method = "ml"
	// MethodCSS fits by the cheaper conditional-sum-of-squares
	// approximation.
	MethodCSS Method = "css"
)

// Model fits one order to one batch. All series share the order and the
// observation count; everything per-series (parameters, sigma2, flags,
// residuals) comes back batched.
type Model struct {
	Order  Order
	Method Method // defaults to MethodML

	Kalman kalman.Options
	Opt    optim.Settings

	fitted bool
	data   *batch.Batch
	yd     [][]float64 // differenced series
	fit    *FitResult
}

// FitResult is the outcome of fitting one batch.
type FitResult struct {
	Params []Params
	IC     []InformationCriteria

	// Converged flags optimizer convergence per series; false is a
	// warning, the last iterate is still in Params.
	Converged []bool
	// Stable flags series whose final likelihood evaluation was
	// numerically sound. An unstable series keeps its parameters but its
	// scores are -Inf/+Inf so any selection steers away from it.
	Stable []bool

	// Residuals holds the innovations, shape (nobs - lostInDiff, batch).
	Residuals  *batch.Batch
	Iterations int
}

// NewModel creates a model for the given order with default settings.
func NewModel(o Order) *Model {
	return &Model{Order: o, Method: MethodML}
}

// Fit estimates parameters for every series of b: least-squares starting
// point, inverse stationarity transform, quasi-Newton search over the
// batched likelihood, forward transform, final scoring pass.
func (m *Model) Fit(b *batch.Batch) (*FitResult, error) {
	o := m.Order
	if err := o.Validate(); err != nil {
		return nil, err
	}
	lost := o.LostInDiff()
	minObs := lost + o.NPhi() + o.NTheta() + 10
	if b.NObs < minObs {
		return nil, fmt.Errorf("%w: need %d observations for order %s, got %d",
			ErrInsufficientData, minObs, o, b.NObs)
	}

	nb := b.NSeries
	neff := b.NObs - lost
	db := batch.DifferenceBatch(b, o.D, o.SD, o.S)
	yd := make([][]float64, nb)
	for i := 0; i < nb; i++ {
		yd[i] = db.Series(i)
	}

	x0 := StartParamsBatch(o, yd)
	InvTransformBatch(o, x0)

	engine := m.engine(yd)
	res, err := optim.Minimize(engine, x0, nb, float64(neff-1), m.Opt)
	if err != nil {
		return nil, err
	}

	TransformBatch(o, res.X)
	params, err := UnpackBatch(o, res.X)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = make([]Params, nb)
		for i := range params {
			params[i] = NewParams(o)
		}
	}

	// Final scoring pass with the exact engine: sigma2, log-likelihood,
	// residuals and stability per series.
	fit := &FitResult{
		Params:     params,
		IC:         make([]InformationCriteria, nb),
		Converged:  res.Converged,
		Stable:     make([]bool, nb),
		Residuals:  batch.New(neff, nb),
		Iterations: res.Iterations,
	}
	yc := make([]float64, 0, neff)
	for i := 0; i < nb; i++ {
		yc = center(yc[:0], yd[i], o, params[i].Mu)
		kr := kalman.Filter(yc, reducedAR(o, params[i]), reducedMA(o, params[i]), 0, m.Kalman)
		if !kr.OK {
			fit.Stable[i] = false
			fit.Params[i].Sigma2 = math.NaN()
			fit.IC[i] = InformationCriteria{
				AIC: math.Inf(1), AICc: math.Inf(1), BIC: math.Inf(1), LogLik: math.Inf(-1),
			}
			continue
		}
		fit.Stable[i] = true
		fit.Params[i].Sigma2 = kr.Sigma2
		fit.IC[i] = CalculateIC(kr.LogLike, neff, o.Complexity())
		copy(fit.Residuals.Series(i), kr.Resid)
	}

	m.data = b
	m.yd = yd
	m.fit = fit
	m.fitted = true
	return fit, nil
}

// engine returns the batched likelihood evaluator for the selected method.
func (m *Model) engine(yd [][]float64) optim.BatchLogLiker {
	if m.Method == MethodCSS {
		return &cssEngine{order: m.Order, yd: yd}
	}
	return &mlEngine{order: m.Order, yd: yd, opts: m.Kalman}
}

// Predict returns predictions for times [start, end) of every series,
// shaped (end-start, batch). The in-sample region is reconstructed as
// y_t minus the innovation; positions before LostInDiff carry NaN because
// differencing consumed them. The out-of-sample region comes from the
// Kalman forecast extension undone through the differencing operators.
func (m *Model) Predict(start, end int) (*batch.Batch, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if start < 0 || end <= start {
		return nil, fmt.Errorf("arima: invalid prediction range [%d, %d)", start, end)
	}

	o := m.Order
	lost := o.LostInDiff()
	nobs := m.data.NObs
	nb := m.data.NSeries
	out := batch.New(end-start, nb)

	fcSteps := 0
	var fc *batch.Batch
	if end > nobs {
		fcSteps = end - nobs
		var err error
		fc, err = m.forecastBatch(fcSteps)
		if err != nil {
			return nil, err
		}
	}

	for i := 0; i < nb; i++ {
		dst := out.Series(i)
		y := m.data.Series(i)
		vs := m.fit.Residuals.Series(i)

		for t := start; t < end && t < nobs; t++ {
			switch {
			case t < lost:
				dst[t-start] = math.NaN()
			default:
				dst[t-start] = y[t] - vs[t-lost]
			}
		}

		for h := 0; h < fcSteps; h++ {
			idx := nobs + h - start
			if idx >= 0 && idx < len(dst) {
				dst[idx] = fc.At(h, i)
			}
		}
	}
	return out, nil
}

// Forecast returns point forecasts for steps past the sample, shaped
// (steps, batch).
func (m *Model) Forecast(steps int) (*batch.Batch, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	return m.Predict(m.data.NObs, m.data.NObs+steps)
}

// forecastBatch extends every series by fcSteps on the original scale,
// shaped (fcSteps, batch). Unstable series forecast NaN.
func (m *Model) forecastBatch(fcSteps int) (*batch.Batch, error) {
	o := m.Order
	fcd := batch.New(fcSteps, m.data.NSeries)
	yc := make([]float64, 0, m.data.NObs)
	for i := 0; i < m.data.NSeries; i++ {
		p := m.fit.Params[i]
		fc := fcd.Series(i)

		var kr kalman.Result
		if m.fit.Stable[i] {
			yc = center(yc[:0], m.yd[i], o, p.Mu)
			kr = kalman.Filter(yc, reducedAR(o, p), reducedMA(o, p), fcSteps, m.Kalman)
		}
		if !m.fit.Stable[i] || !kr.OK {
			for h := range fc {
				fc[h] = math.NaN()
			}
			continue
		}
		copy(fc, kr.Forecast)
		if o.K == 1 {
			// Centering removed the trend from the differenced series; put
			// it back before undoing the differencing. For d+D = 1 this is
			// the drift entering once per reconstruction step.
			for h := range fc {
				fc[h] += p.Mu
			}
		}
	}
	if o.LostInDiff() == 0 {
		return fcd, nil
	}
	return batch.UndifferenceBatch(fcd, m.data, o.D, o.SD, o.S)
}

// Residuals returns the innovations of the fit, or nil before Fit.
func (m *Model) Residuals() *batch.Batch {
	if !m.fitted {
		return nil
	}
	return m.fit.Residuals
}

// mlEngine evaluates the exact Kalman-filter likelihood for every series.
type mlEngine struct {
	order Order
	yd    [][]float64
	opts  kalman.Options
}

func (e *mlEngine) LogLike(x []float64) []float64 {
	np := e.order.NumParams()
	ll := make([]float64, len(e.yd))
	params := NewParams(e.order)
	yc := make([]float64, 0)
	xc := append([]float64(nil), x...)
	TransformBatch(e.order, xc)
	for i, y := range e.yd {
		if err := params.Unpack(e.order, xc[i*np:(i+1)*np]); err != nil {
			ll[i] = math.Inf(-1)
			continue
		}
		yc = center(yc[:0], y, e.order, params.Mu)
		res := kalman.Filter(yc, reducedAR(e.order, params), reducedMA(e.order, params), 0, e.opts)
		ll[i] = res.LogLike
	}
	return ll
}
