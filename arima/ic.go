package arima

import "math"

// InformationCriteria holds the model-selection scores of one series.
type InformationCriteria struct {
	AIC    float64
	AICc   float64
	BIC    float64
	LogLik float64
}

// CalculateIC computes AIC, AICc and BIC from a log-likelihood, the
// effective observation count and the model complexity.
func CalculateIC(logLik float64, nObs, complexity int) InformationCriteria {
	k := float64(complexity)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	// Built from AIC so the two criteria differ by exactly
	// (log(n)-2)*k, not merely up to rounding.
	bic := aic + (math.Log(n)-2)*k

	aicc := math.Inf(1)
	if n-k-1 > 0 {
		aicc = aic + 2*k*(k+1)/(n-k-1)
	}

	return InformationCriteria{
		AIC:    aic,
		AICc:   aicc,
		BIC:    bic,
		LogLik: logLik,
	}
}

// Score returns the criterion named by ic: "aic", "aicc" or "bic". Unknown
// names fall back to AIC, matching the selector default.
func (c InformationCriteria) Score(ic string) float64 {
	switch ic {
	case "bic":
		return c.BIC
	case "aicc":
		return c.AICc
	default:
		return c.AIC
	}
}
