package autoarima

import (
	"fmt"
	"runtime"

	"github.com/sartorproj/batcharima/arima"
	"github.com/sartorproj/batcharima/kalman"
	"github.com/sartorproj/batcharima/optim"
)

// StationarityTest decides how many first differences (0..maxD) a series
// needs. The default is the iterated KPSS test.
type StationarityTest func(y []float64, maxD int) int

// SeasonalTest decides how many seasonal differences (0..maxD) a series
// needs at the given period. The default is the seasonal-strength test.
type SeasonalTest func(y []float64, period, maxD int) int

// Config controls the automatic model search.
type Config struct {
	// SeasonalPeriod is s; 0 or 1 restricts the search to non-seasonal
	// models.
	SeasonalPeriod int

	StartP int // minimum AR order searched (default 0)
	MaxP   int // maximum AR order searched (default 3)
	StartQ int // minimum MA order searched (default 0)
	MaxQ   int // maximum MA order searched (default 3)
	MaxSP  int // maximum seasonal AR order searched (default 1)
	MaxSQ  int // maximum seasonal MA order searched (default 1)

	MaxD  int // maximum first differencing tested (default 2)
	MaxSD int // maximum seasonal differencing tested (default 1)

	// D and SD force the differencing orders for every series when >= 0;
	// -1 (the default) decides per series by hypothesis test.
	D  int
	SD int

	// IC names the selection criterion: "aic" (default), "aicc" or "bic".
	IC string

	// SearchMethod selects the likelihood used during the grid search:
	// "css", "ml" or "auto" (default), where auto picks CSS for long
	// seasonal batches (nobs >= 100 and s >= 4) and ML otherwise. The
	// final refit of the winning orders always uses ML.
	SearchMethod string

	// Concurrency bounds how many grid cells are fitted at once.
	// Defaults to the number of usable CPUs.
	Concurrency int

	// Stationarity and Seasonality replace the default differencing
	// tests when non-nil.
	Stationarity StationarityTest
	Seasonality  SeasonalTest

	Kalman kalman.Options
	Opt    optim.Settings
}

// DefaultConfig returns the configuration used when Fit receives nil.
func DefaultConfig() *Config {
	return &Config{
		SeasonalPeriod: 0,
		StartP:         0,
		MaxP:           3,
		StartQ:         0,
		MaxQ:           3,
		MaxSP:          1,
		MaxSQ:          1,
		MaxD:           2,
		MaxSD:          1,
		D:              -1,
		SD:             -1,
		IC:             "aic",
		SearchMethod:   "auto",
		Concurrency:    runtime.GOMAXPROCS(0),
	}
}

// validate rejects configurations whose grid no candidate order could pass.
func (c *Config) validate() error {
	if c.SeasonalPeriod < 0 {
		return fmt.Errorf("%w: negative seasonal period %d", arima.ErrInvalidOrder, c.SeasonalPeriod)
	}
	if c.StartP < 0 || c.StartQ < 0 || c.MaxP < c.StartP || c.MaxQ < c.StartQ {
		return fmt.Errorf("%w: empty (p,q) search range", arima.ErrInvalidOrder)
	}
	if c.MaxP > arima.MaxOrder || c.MaxQ > arima.MaxOrder ||
		c.MaxSP > arima.MaxOrder || c.MaxSQ > arima.MaxOrder {
		return fmt.Errorf("%w: search bound exceeds cap %d", arima.ErrInvalidOrder, arima.MaxOrder)
	}
	if c.MaxD < 0 || c.MaxD > 2 || c.MaxSD < 0 || c.MaxSD > 1 {
		return fmt.Errorf("%w: differencing bounds out of range", arima.ErrInvalidOrder)
	}
	if c.D > 2 || c.SD > 1 {
		return fmt.Errorf("%w: forced differencing out of range", arima.ErrInvalidOrder)
	}
	switch c.SearchMethod {
	case "", "auto", "css", "ml":
	default:
		return fmt.Errorf("autoarima: unknown search method %q", c.SearchMethod)
	}
	switch c.IC {
	case "", "aic", "aicc", "bic":
	default:
		return fmt.Errorf("autoarima: unknown information criterion %q", c.IC)
	}
	return nil
}

// searchMethod resolves the grid-search likelihood for a bucket.
func (c *Config) searchMethod(nobs int) arima.Method {
	switch c.SearchMethod {
	case "css":
		return arima.MethodCSS
	case "ml":
		return arima.MethodML
	}
	// The heuristic threshold, kept as policy rather than invariant.
	if nobs >= 100 && c.SeasonalPeriod >= 4 {
		return arima.MethodCSS
	}
	return arima.MethodML
}
