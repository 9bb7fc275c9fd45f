package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ACF returns the autocorrelation function of y for lags 0 through maxLag.
// It returns nil when the series is constant or too short.
func ACF(y []float64, maxLag int) []float64 {
	n := len(y)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(y, nil)
	variance := 0.0
	for _, v := range y {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (y[i] - mean) * (y[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf
}

// PACF returns the partial autocorrelation function of y for lags 0 through
// maxLag via the Durbin-Levinson recursion. Lag 0 is always 1.
func PACF(y []float64, maxLag int) []float64 {
	n := len(y)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(y, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}
	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}
		if den == 0 {
			pacf[k] = 0
			continue
		}
		phi[k][k] = num / den
		pacf[k] = phi[k][k]
		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}
	return pacf
}

// ConfidenceBound returns the 95% white-noise bound for sample
// autocorrelations of a series of length n.
func ConfidenceBound(n int) float64 {
	return 1.96 / math.Sqrt(float64(n))
}
