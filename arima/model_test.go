package arima

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/batcharima/batch"
)

func TestFitRecoversAR1(t *testing.T) {
	y := simulateAR1(1000, 0.5, 42)
	b, err := batch.FromSeries(y)
	require.NoError(t, err)

	m := NewModel(Order{P: 1})
	fit, err := m.Fit(b)
	require.NoError(t, err)

	require.True(t, fit.Stable[0])
	assert.InDelta(t, 0.5, fit.Params[0].AR[0], 0.05)
	assert.InDelta(t, 1.0, fit.Params[0].Sigma2, 0.15)
}

func TestFitBatchIsPerSeries(t *testing.T) {
	// Two series with different coefficients fitted in one call must each
	// recover their own parameter.
	y1 := simulateAR1(800, 0.7, 1)
	y2 := simulateAR1(800, -0.4, 2)
	b, err := batch.FromSeries(y1, y2)
	require.NoError(t, err)

	m := NewModel(Order{P: 1})
	fit, err := m.Fit(b)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, fit.Params[0].AR[0], 0.07)
	assert.InDelta(t, -0.4, fit.Params[1].AR[0], 0.07)
	assert.Len(t, fit.IC, 2)
	assert.Equal(t, 800, fit.Residuals.NObs)
	assert.Equal(t, 2, fit.Residuals.NSeries)
}

func TestFitCSSMethod(t *testing.T) {
	y := simulateAR1(1000, 0.5, 43)
	b, err := batch.FromSeries(y)
	require.NoError(t, err)

	m := NewModel(Order{P: 1})
	m.Method = MethodCSS
	fit, err := m.Fit(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fit.Params[0].AR[0], 0.06)
}

func TestFitMA1(t *testing.T) {
	rng := rand.New(rand.NewSource(44))
	n := 1000
	y := make([]float64, n)
	prev := 0.0
	for i := range y {
		eps := rng.NormFloat64()
		y[i] = eps + 0.6*prev
		prev = eps
	}
	b, err := batch.FromSeries(y)
	require.NoError(t, err)

	fit, err := NewModel(Order{Q: 1}).Fit(b)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, fit.Params[0].MA[0], 0.07)
}

func TestFitWithDriftAndDifferencing(t *testing.T) {
	rng := rand.New(rand.NewSource(45))
	n := 600
	drift := 0.5
	y := make([]float64, n)
	for i := 1; i < n; i++ {
		y[i] = y[i-1] + drift + rng.NormFloat64()*0.2
	}
	b, err := batch.FromSeries(y)
	require.NoError(t, err)

	m := NewModel(Order{P: 1, D: 1, K: 1})
	fit, err := m.Fit(b)
	require.NoError(t, err)
	assert.InDelta(t, drift, fit.Params[0].Mu, 0.1)

	// The drift keeps accumulating through the forecast.
	fc, err := m.Forecast(10)
	require.NoError(t, err)
	step := fc.At(9, 0) - fc.At(8, 0)
	assert.InDelta(t, drift, step, 0.15)
	assert.Greater(t, fc.At(0, 0), y[n-1]-2)
}

func TestFitRejectsInvalidOrder(t *testing.T) {
	b := batch.New(100, 1)
	_, err := NewModel(Order{P: -1}).Fit(b)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestFitRejectsShortBatch(t *testing.T) {
	b := batch.New(5, 1)
	_, err := NewModel(Order{P: 1}).Fit(b)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestPredictBeforeFit(t *testing.T) {
	m := NewModel(Order{P: 1})
	_, err := m.Predict(0, 10)
	assert.ErrorIs(t, err, ErrNotFitted)
	assert.Nil(t, m.Residuals())
}

func TestPredictInSampleAndOut(t *testing.T) {
	y := simulateAR1(300, 0.5, 46)
	// Integrate once so differencing costs an observation.
	z := make([]float64, len(y))
	for i := 1; i < len(z); i++ {
		z[i] = z[i-1] + y[i]
	}
	b, err := batch.FromSeries(z)
	require.NoError(t, err)

	m := NewModel(Order{P: 1, D: 1, K: 1})
	_, err = m.Fit(b)
	require.NoError(t, err)

	pred, err := m.Predict(0, 305)
	require.NoError(t, err)
	require.Equal(t, 305, pred.NObs)

	// Differencing consumed the first observation: undefined there.
	assert.True(t, math.IsNaN(pred.At(0, 0)))
	for tt := 1; tt < 300; tt++ {
		require.False(t, math.IsNaN(pred.At(tt, 0)), "t=%d", tt)
	}
	// In-sample one-step predictions track the series.
	sse := 0.0
	for tt := 1; tt < 300; tt++ {
		d := pred.At(tt, 0) - z[tt]
		sse += d * d
	}
	assert.Less(t, sse/299, 5.0)

	// Out-of-sample region is filled and finite.
	for tt := 300; tt < 305; tt++ {
		assert.False(t, math.IsNaN(pred.At(tt, 0)), "t=%d", tt)
	}
}

func TestPredictInvalidRange(t *testing.T) {
	y := simulateAR1(100, 0.3, 47)
	b, err := batch.FromSeries(y)
	require.NoError(t, err)
	m := NewModel(Order{P: 1})
	_, err = m.Fit(b)
	require.NoError(t, err)

	_, err = m.Predict(10, 10)
	assert.Error(t, err)
	_, err = m.Predict(-1, 5)
	assert.Error(t, err)
}

func TestForecastRevertsToMean(t *testing.T) {
	rng := rand.New(rand.NewSource(48))
	n := 800
	mean := 50.0
	y := make([]float64, n)
	y[0] = mean
	for i := 1; i < n; i++ {
		y[i] = mean + 0.6*(y[i-1]-mean) + rng.NormFloat64()
	}
	b, err := batch.FromSeries(y)
	require.NoError(t, err)

	m := NewModel(Order{P: 1, K: 1})
	_, err = m.Fit(b)
	require.NoError(t, err)

	fc, err := m.Forecast(40)
	require.NoError(t, err)
	assert.InDelta(t, mean, fc.At(39, 0), 2.0, "long-run forecast approaches the mean")
}

func TestWhiteNoiseOrderFits(t *testing.T) {
	// The degenerate order has no packed parameters; the fit reduces to
	// variance estimation and the closed-form likelihood.
	rng := rand.New(rand.NewSource(49))
	y := make([]float64, 200)
	for i := range y {
		y[i] = rng.NormFloat64() * 2
	}
	b, err := batch.FromSeries(y)
	require.NoError(t, err)

	fit, err := NewModel(Order{}).Fit(b)
	require.NoError(t, err)
	require.True(t, fit.Stable[0])
	assert.True(t, fit.Converged[0], "no parameters means trivially converged")
	assert.InDelta(t, 4.0, fit.Params[0].Sigma2, 1.0)
	assert.False(t, math.IsInf(fit.IC[0].AIC, 0))
}
