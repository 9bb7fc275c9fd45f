package stats

import (
	"math"

	"github.com/sartorproj/batcharima/batch"
)

// SeasonalStrength measures how much of the detrended variation a seasonal
// pattern with the given period explains:
//
//	F_S = max(0, 1 - Var(R) / Var(S+R))
//
// where S and R come from a classical additive decomposition with a centered
// moving-average trend. It returns 0 for series shorter than two periods.
func SeasonalStrength(y []float64, period int) float64 {
	n := len(y)
	if period <= 1 || n < 2*period {
		return 0
	}

	trend := centeredMA(y, period)

	detrended := make([]float64, n)
	for i := range y {
		if math.IsNaN(trend[i]) {
			detrended[i] = math.NaN()
			continue
		}
		detrended[i] = y[i] - trend[i]
	}

	// Seasonal pattern: per-phase mean of the detrended values, centered.
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i, v := range detrended {
		if math.IsNaN(v) {
			continue
		}
		pattern[i%period] += v
		counts[i%period]++
	}
	patternMean := 0.0
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
		patternMean += pattern[i]
	}
	patternMean /= float64(period)
	for i := range pattern {
		pattern[i] -= patternMean
	}

	resid := make([]float64, 0, n)
	seasPlusResid := make([]float64, 0, n)
	for i := range y {
		if math.IsNaN(trend[i]) {
			continue
		}
		s := pattern[i%period]
		r := y[i] - trend[i] - s
		resid = append(resid, r)
		seasPlusResid = append(seasPlusResid, s+r)
	}

	varR := sampleVar(resid)
	varSR := sampleVar(seasPlusResid)
	if varSR == 0 {
		return 0
	}
	strength := 1 - varR/varSR
	if strength < 0 {
		return 0
	}
	return strength
}

// NSDiffs returns the number of seasonal differences (0..maxD) suggested for
// y at the given period: difference while the seasonal strength stays at or
// above 0.64.
func NSDiffs(y []float64, period, maxD int) int {
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || len(y) < 2*period {
		return 0
	}
	current := y
	for d := 0; d < maxD; d++ {
		if SeasonalStrength(current, period) < 0.64 {
			return d
		}
		current = batch.Difference(current, 0, 1, period)
		if len(current) < 2*period {
			return d
		}
	}
	return maxD
}

// NSDiffsBatch runs NSDiffs on every series of b.
func NSDiffsBatch(b *batch.Batch, period, maxD int) []int {
	out := make([]int, b.NSeries)
	for i := range out {
		out[i] = NSDiffs(b.Series(i), period, maxD)
	}
	return out
}

// centeredMA is the trend filter of classical decomposition: a centered
// moving average of width period, with half weights on the endpoints when
// the period is even. Positions the window cannot cover hold NaN.
func centeredMA(y []float64, period int) []float64 {
	n := len(y)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}
	half := period / 2

	if period%2 == 0 {
		for i := half; i < n-half; i++ {
			sum := 0.5*y[i-half] + 0.5*y[i+half]
			for j := i - half + 1; j < i+half; j++ {
				sum += y[j]
			}
			trend[i] = sum / float64(period)
		}
		return trend
	}
	for i := half; i < n-half; i++ {
		sum := 0.0
		for j := i - half; j <= i+half; j++ {
			sum += y[j]
		}
		trend[i] = sum / float64(period)
	}
	return trend
}

func sampleVar(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n-1)
}
