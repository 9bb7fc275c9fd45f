package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/batcharima/batch"
)

func whiteNoise(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	y := make([]float64, n)
	for i := range y {
		y[i] = rng.NormFloat64()
	}
	return y
}

func randomWalk(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	y := make([]float64, n)
	for i := 1; i < n; i++ {
		y[i] = y[i-1] + rng.NormFloat64()
	}
	return y
}

func TestKPSSWhiteNoiseIsStationary(t *testing.T) {
	res := KPSS(whiteNoise(300, 1), RegressionC, 0)
	require.NotNil(t, res)
	assert.True(t, res.IsStationary)
	assert.Greater(t, res.Lags, 0)
}

func TestKPSSRandomWalkIsNotStationary(t *testing.T) {
	res := KPSS(randomWalk(300, 2), RegressionC, 0)
	require.NotNil(t, res)
	assert.False(t, res.IsStationary)
}

func TestKPSSTrendRegression(t *testing.T) {
	// Trend-stationary series: rejected around a level, accepted around a
	// trend.
	rng := rand.New(rand.NewSource(3))
	y := make([]float64, 300)
	for i := range y {
		y[i] = 0.5*float64(i) + rng.NormFloat64()
	}

	level := KPSS(y, RegressionC, 0)
	require.NotNil(t, level)
	assert.False(t, level.IsStationary)

	trend := KPSS(y, RegressionCT, 0)
	require.NotNil(t, trend)
	assert.True(t, trend.IsStationary)
}

func TestKPSSNearCriticalValueRejects(t *testing.T) {
	// A short-ish walk can land between the 5% and 1% critical values
	// (0.463, 0.739]; the interpolated p-value there is exactly 0.05 and
	// the null must still be rejected, or NDiffs under-differences.
	rng := rand.New(rand.NewSource(7))
	n := 400
	walk := make([]float64, n)
	other := make([]float64, n)
	for i := 1; i < n; i++ {
		walk[i] = walk[i-1] + rng.NormFloat64()
		other[i] = 0.3*other[i-1] + rng.NormFloat64()
	}

	res := KPSS(walk, RegressionC, 0)
	require.NotNil(t, res)
	assert.Greater(t, res.Statistic, 0.463)
	assert.LessOrEqual(t, res.Statistic, 0.739)
	assert.False(t, res.IsStationary)
	assert.Equal(t, 1, NDiffs(walk, 2))
}

func TestKPSSShortSeries(t *testing.T) {
	assert.Nil(t, KPSS([]float64{1, 2, 3}, RegressionC, 0))
}

func TestNDiffs(t *testing.T) {
	assert.Equal(t, 0, NDiffs(whiteNoise(300, 4), 2))
	assert.Equal(t, 1, NDiffs(randomWalk(300, 5), 2))

	// Double-integrated noise needs two differences.
	w := randomWalk(300, 6)
	y := make([]float64, len(w))
	for i := 1; i < len(w); i++ {
		y[i] = y[i-1] + w[i]
	}
	assert.Equal(t, 2, NDiffs(y, 2))
}

func TestNDiffsBatch(t *testing.T) {
	b, err := batch.FromSeries(whiteNoise(300, 7), randomWalk(300, 8))
	require.NoError(t, err)
	ds := NDiffsBatch(b, 2)
	assert.Equal(t, []int{0, 1}, ds)
}

func TestACFAR1(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	phi := 0.7
	y := make([]float64, 2000)
	for i := 1; i < len(y); i++ {
		y[i] = phi*y[i-1] + rng.NormFloat64()
	}
	acf := ACF(y, 3)
	require.Len(t, acf, 4)
	assert.Equal(t, 1.0, acf[0])
	assert.InDelta(t, phi, acf[1], 0.05)
	assert.InDelta(t, phi*phi, acf[2], 0.07)
}

func TestACFConstantSeries(t *testing.T) {
	assert.Nil(t, ACF([]float64{2, 2, 2, 2}, 2))
}

func TestPACFAR1CutsOff(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	phi := 0.6
	y := make([]float64, 2000)
	for i := 1; i < len(y); i++ {
		y[i] = phi*y[i-1] + rng.NormFloat64()
	}
	pacf := PACF(y, 5)
	require.Len(t, pacf, 6)
	assert.InDelta(t, phi, pacf[1], 0.05)
	bound := ConfidenceBound(len(y))
	for k := 2; k <= 5; k++ {
		assert.Less(t, math.Abs(pacf[k]), 3*bound, "lag %d", k)
	}
}

func TestConfidenceBound(t *testing.T) {
	assert.InDelta(t, 0.196, ConfidenceBound(100), 1e-12)
}

func seasonalSeries(n, period int, amp float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	y := make([]float64, n)
	for i := range y {
		y[i] = amp*math.Sin(2*math.Pi*float64(i)/float64(period)) + rng.NormFloat64()*0.3
	}
	return y
}

func TestSeasonalStrength(t *testing.T) {
	strong := SeasonalStrength(seasonalSeries(240, 12, 10, 11), 12)
	assert.Greater(t, strong, 0.9)

	weak := SeasonalStrength(whiteNoise(240, 12), 12)
	assert.Less(t, weak, 0.64)
}

func TestNSDiffs(t *testing.T) {
	assert.Equal(t, 1, NSDiffs(seasonalSeries(240, 12, 10, 13), 12, 1))
	assert.Equal(t, 0, NSDiffs(whiteNoise(240, 14), 12, 1))
	assert.Equal(t, 0, NSDiffs(seasonalSeries(20, 12, 10, 15), 12, 1))
}

func TestNSDiffsBatch(t *testing.T) {
	b, err := batch.FromSeries(seasonalSeries(240, 12, 10, 16), whiteNoise(240, 17))
	require.NoError(t, err)
	ds := NSDiffsBatch(b, 12, 1)
	assert.Equal(t, []int{1, 0}, ds)
}
