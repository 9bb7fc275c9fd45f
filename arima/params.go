package arima

import "fmt"

// Params holds the fitted parameters of one series. The packed layout is
// [mu?, ar, ma, sar, sma] in that fixed order; Sigma2 rides alongside and
// is never packed.
type Params struct {
	Mu     float64
	AR     []float64
	MA     []float64
	SAR    []float64
	SMA    []float64
	Sigma2 float64
}

// NewParams allocates zeroed parameters shaped for the order.
func NewParams(o Order) Params {
	return Params{
		AR:     make([]float64, o.P),
		MA:     make([]float64, o.Q),
		SAR:    make([]float64, o.SP),
		SMA:    make([]float64, o.SQ),
		Sigma2: 1,
	}
}

// Pack appends the packed parameter vector of p to dst and returns the
// extended slice.
func (p Params) Pack(o Order, dst []float64) []float64 {
	if o.K == 1 {
		dst = append(dst, p.Mu)
	}
	dst = append(dst, p.AR...)
	dst = append(dst, p.MA...)
	dst = append(dst, p.SAR...)
	dst = append(dst, p.SMA...)
	return dst
}

// Unpack fills p from a packed parameter vector. x must have exactly
// o.NumParams() entries.
func (p *Params) Unpack(o Order, x []float64) error {
	if len(x) != o.NumParams() {
		return fmt.Errorf("arima: packed vector has %d entries, want %d", len(x), o.NumParams())
	}
	pos := 0
	if o.K == 1 {
		p.Mu = x[pos]
		pos++
	} else {
		p.Mu = 0
	}
	p.AR = append(p.AR[:0], x[pos:pos+o.P]...)
	pos += o.P
	p.MA = append(p.MA[:0], x[pos:pos+o.Q]...)
	pos += o.Q
	p.SAR = append(p.SAR[:0], x[pos:pos+o.SP]...)
	pos += o.SP
	p.SMA = append(p.SMA[:0], x[pos:pos+o.SQ]...)
	return nil
}

// PackBatch packs a batch of per-series parameters into one flat vector,
// series-contiguous: x = [series0 params..., series1 params...].
func PackBatch(o Order, params []Params) []float64 {
	x := make([]float64, 0, len(params)*o.NumParams())
	for _, p := range params {
		x = p.Pack(o, x)
	}
	return x
}

// UnpackBatch splits a flat batched parameter vector back into per-series
// parameters. Sigma2 of each result is left at zero; callers carry it
// separately.
func UnpackBatch(o Order, x []float64) ([]Params, error) {
	np := o.NumParams()
	if np == 0 {
		if len(x) != 0 {
			return nil, fmt.Errorf("arima: packed vector has %d entries for empty order", len(x))
		}
		return nil, nil
	}
	if len(x)%np != 0 {
		return nil, fmt.Errorf("arima: packed vector length %d not divisible by %d", len(x), np)
	}
	nb := len(x) / np
	out := make([]Params, nb)
	for i := 0; i < nb; i++ {
		out[i] = NewParams(o)
		if err := out[i].Unpack(o, x[i*np:(i+1)*np]); err != nil {
			return nil, err
		}
		out[i].Sigma2 = 0
	}
	return out, nil
}

// reducedAR expands phi(B)*PHI(B^s) into the coefficients of the reduced AR
// polynomial, length o.NPhi(). Sign convention: y_t = sum phi_i y_{t-i} + ...
func reducedAR(o Order, p Params) []float64 {
	out := make([]float64, o.NPhi())
	for i, v := range p.AR {
		out[i] += v
	}
	for j, sv := range p.SAR {
		lag := (j + 1) * o.S
		out[lag-1] += sv
		// Cross terms: -phi_i * PHI_j at lag i + j*s.
		for i, v := range p.AR {
			out[lag+i] -= v * sv
		}
	}
	return out
}

// reducedMA expands theta(B)*THETA(B^s), length o.NTheta(). Sign
// convention: y_t = ... + eps_t + sum theta_j eps_{t-j}, so cross terms add.
func reducedMA(o Order, p Params) []float64 {
	out := make([]float64, o.NTheta())
	for i, v := range p.MA {
		out[i] += v
	}
	for j, sv := range p.SMA {
		lag := (j + 1) * o.S
		out[lag-1] += sv
		for i, v := range p.MA {
			out[lag+i] += v * sv
		}
	}
	return out
}
