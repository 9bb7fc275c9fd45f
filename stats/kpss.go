package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/batcharima/batch"
)

// RegressionC tests level stationarity, RegressionCT trend stationarity.
const (
	RegressionC  = "c"
	RegressionCT = "ct"
)

// KPSSResult holds the outcome of one KPSS test.
type KPSSResult struct {
	Statistic    float64
	PValue       float64
	Lags         int
	IsStationary bool
}

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test. The null
// hypothesis is that the series is stationary around a level (RegressionC)
// or a trend (RegressionCT); IsStationary is true when the null is not
// rejected at 5%. nlags <= 0 selects the usual 12*(n/100)^0.25 bandwidth.
// Returns nil for series too short to test.
func KPSS(y []float64, regression string, nlags int) *KPSSResult {
	n := len(y)
	if n < 10 {
		return nil
	}
	if nlags <= 0 {
		nlags = int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	}
	if nlags >= n {
		nlags = n - 1
	}

	residuals := make([]float64, n)
	if regression == RegressionCT {
		ts := make([]float64, n)
		for i := range ts {
			ts[i] = float64(i)
		}
		a, b := stat.LinearRegression(ts, y, nil, false)
		for i, v := range y {
			residuals[i] = v - a - b*float64(i)
		}
	} else {
		mean := stat.Mean(y, nil)
		for i, v := range y {
			residuals[i] = v - mean
		}
	}

	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	// Newey-West long-run variance with Bartlett weights.
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)
	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}
	if s2 <= 0 {
		s2 = 1e-10
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	statistic := etaSq / (float64(n) * float64(n) * s2)

	// Reject at the 5% level when the statistic sits at or above the 5%
	// critical value, where the interpolated p-value is exactly 0.05.
	pValue := kpssPValue(statistic, regression)
	return &KPSSResult{
		Statistic:    statistic,
		PValue:       pValue,
		Lags:         nlags,
		IsStationary: pValue > 0.05,
	}
}

// kpssPValue interpolates the test's tabulated critical values.
func kpssPValue(statistic float64, regression string) float64 {
	if regression == RegressionCT {
		switch {
		case statistic > 0.216:
			return 0.01
		case statistic > 0.146:
			return 0.05
		case statistic > 0.119:
			return 0.10
		default:
			return math.Min(0.10+(0.119-statistic)*2, 0.99)
		}
	}
	switch {
	case statistic > 0.739:
		return 0.01
	case statistic > 0.463:
		return 0.05
	case statistic > 0.347:
		return 0.10
	default:
		return math.Min(0.10+(0.347-statistic)*0.5, 0.99)
	}
}

// NDiffs returns the number of first differences (0..maxD) needed to make y
// level-stationary by iterated KPSS testing: difference until the null of
// stationarity is no longer rejected.
func NDiffs(y []float64, maxD int) int {
	if maxD <= 0 {
		maxD = 2
	}
	current := y
	for d := 0; d < maxD; d++ {
		res := KPSS(current, RegressionC, 0)
		if res == nil || res.IsStationary {
			return d
		}
		current = batch.Difference(current, 1, 0, 0)
		if len(current) < 10 {
			return d
		}
	}
	return maxD
}

// NDiffsBatch runs NDiffs on every series of b.
func NDiffsBatch(b *batch.Batch, maxD int) []int {
	out := make([]int, b.NSeries)
	for i := range out {
		out[i] = NDiffs(b.Series(i), maxD)
	}
	return out
}
