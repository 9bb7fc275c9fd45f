package arima

import "fmt"

// MaxOrder is the hard cap on each of p, q, P and Q. Orders beyond it are
// rejected up front; the estimation cost grows quickly and the automatic
// search never needs more.
const MaxOrder = 4

// Order describes a SARIMA model (p,d,q)(P,D,Q)_s with an optional constant
// trend term. The zero value is the degenerate all-zero order.
type Order struct {
	P int // AR order
	D int // Differencing order
	Q int // MA order

	SP int // Seasonal AR order
	SD int // Seasonal differencing order
	SQ int // Seasonal MA order
	S  int // Seasonal period; 0 or 1 means non-seasonal

	K int // 1 to fit a constant trend term, 0 otherwise
}

// Seasonal reports whether the order has a seasonal component.
func (o Order) Seasonal() bool {
	return o.S > 1
}

// NPhi returns the degree of the reduced AR polynomial phi(B)*PHI(B^s).
func (o Order) NPhi() int {
	return o.P + o.S*o.SP
}

// NTheta returns the degree of the reduced MA polynomial theta(B)*THETA(B^s).
func (o Order) NTheta() int {
	return o.Q + o.S*o.SQ
}

// LostInDiff returns the number of observations consumed by differencing.
func (o Order) LostInDiff() int {
	return o.D + o.S*o.SD
}

// NumParams returns the per-series packed parameter count: k + p + q + P + Q.
// Sigma2 is estimated separately and never packed.
func (o Order) NumParams() int {
	return o.K + o.P + o.Q + o.SP + o.SQ
}

// Complexity returns the model complexity used by information criteria:
// p + q + P + Q + k + 1, the +1 accounting for sigma2.
func (o Order) Complexity() int {
	return o.P + o.Q + o.SP + o.SQ + o.K + 1
}

// Validate rejects orders the engines cannot evaluate. It is the synchronous
// gate of the error taxonomy: everything past it is a per-series soft
// failure, never a batch abort.
func (o Order) Validate() error {
	if o.P < 0 || o.Q < 0 || o.SP < 0 || o.SQ < 0 {
		return fmt.Errorf("%w: negative order in %+v", ErrInvalidOrder, o)
	}
	if o.P > MaxOrder || o.Q > MaxOrder || o.SP > MaxOrder || o.SQ > MaxOrder {
		return fmt.Errorf("%w: order exceeds cap %d in %+v", ErrInvalidOrder, MaxOrder, o)
	}
	if o.D < 0 || o.D > 2 {
		return fmt.Errorf("%w: d must be in {0,1,2}, got %d", ErrInvalidOrder, o.D)
	}
	if o.SD < 0 || o.SD > 1 {
		return fmt.Errorf("%w: D must be in {0,1}, got %d", ErrInvalidOrder, o.SD)
	}
	if o.S < 0 {
		return fmt.Errorf("%w: negative seasonal period %d", ErrInvalidOrder, o.S)
	}
	if !o.Seasonal() && (o.SP > 0 || o.SD > 0 || o.SQ > 0) {
		return fmt.Errorf("%w: seasonal terms require a period >= 2 in %+v", ErrInvalidOrder, o)
	}
	if o.K != 0 && o.K != 1 {
		return fmt.Errorf("%w: k must be 0 or 1, got %d", ErrInvalidOrder, o.K)
	}
	if o.K == 1 && o.D+o.SD > 1 {
		return fmt.Errorf("%w: constant trend requires d+D <= 1, got %d", ErrInvalidOrder, o.D+o.SD)
	}
	return nil
}

// String renders the order in the conventional (p,d,q)(P,D,Q)[s] notation.
func (o Order) String() string {
	if !o.Seasonal() {
		return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
	}
	return fmt.Sprintf("(%d,%d,%d)(%d,%d,%d)[%d]", o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.S)
}
