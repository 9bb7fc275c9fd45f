package arima

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulateAR1(n int, phi float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	y := make([]float64, n)
	for i := 1; i < n; i++ {
		y[i] = phi*y[i-1] + rng.NormFloat64()
	}
	return y
}

func TestStartParamsAR1(t *testing.T) {
	y := simulateAR1(1000, 0.6, 8)
	p := StartParams(Order{P: 1}, y)
	assert.InDelta(t, 0.6, p.AR[0], 0.1)
	assert.InDelta(t, 1.0, p.Sigma2, 0.3)
}

func TestStartParamsWithTrend(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	y := make([]float64, 500)
	for i := range y {
		y[i] = 25 + rng.NormFloat64()
	}
	p := StartParams(Order{P: 1, K: 1}, y)
	assert.InDelta(t, 25, p.Mu, 0.5)
	assert.InDelta(t, 0, p.AR[0], 0.15, "centered noise has no AR structure")
}

func TestStartParamsShortSeriesDegradesToDefaults(t *testing.T) {
	// Fewer usable rows than regressors: neutral defaults, not an error.
	y := []float64{1, 2}
	p := StartParams(Order{P: 2, Q: 2}, y)
	assert.Equal(t, []float64{0, 0}, p.AR)
	assert.Equal(t, []float64{0, 0}, p.MA)
	assert.Equal(t, 1.0, p.Sigma2)
}

func TestStartParamsStaysInsideStationaryRegion(t *testing.T) {
	// Near-unit-root data can push least squares outside the stationary
	// region; the start point must still be transformable.
	rng := rand.New(rand.NewSource(10))
	y := make([]float64, 300)
	for i := 1; i < len(y); i++ {
		y[i] = y[i-1] + rng.NormFloat64()*0.01
	}
	p := StartParams(Order{P: 2, Q: 1}, y)
	assert.True(t, IsStationary(p.AR))
	assert.True(t, IsInvertible(p.MA))
}

func TestStartParamsBatchPacksCoefficientSpace(t *testing.T) {
	o := Order{P: 1, K: 1}
	s1 := simulateAR1(400, 0.5, 11)
	s2 := simulateAR1(400, -0.3, 12)
	x := StartParamsBatch(o, [][]float64{s1, s2})
	require.Len(t, x, 4) // [mu, ar] per series

	assert.InDelta(t, 0.5, x[1], 0.15)
	assert.InDelta(t, -0.3, x[3], 0.15)
}

func TestBlockLags(t *testing.T) {
	assert.Equal(t, []int{1, 2, 12, 24}, blockLags(2, 2, 12))
	assert.Empty(t, blockLags(0, 0, 12))
}
