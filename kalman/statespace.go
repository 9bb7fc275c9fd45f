package kalman

import (
	"gonum.org/v1/gonum/mat"
)

// StateSpace holds the time-invariant system matrices of one ARMA series:
// transition T (r x r), selection R (r x 1) and observation Z = e1', with
// r = max(len(phi), len(theta)+1). Instances are transient: they are built
// for one likelihood evaluation and never cached across calls.
type StateSpace struct {
	R int // state dimension

	T *mat.Dense    // transition
	S *mat.VecDense // selection (R in the literature; S here to avoid the field clash)
}

// NewStateSpace builds the system matrices from the reduced AR and MA
// polynomials. phi fills the first column of T, the superdiagonal is one,
// and the selection vector is [1, theta_1, ..., theta_{r-1}].
func NewStateSpace(phi, theta []float64) *StateSpace {
	r := len(phi)
	if len(theta)+1 > r {
		r = len(theta) + 1
	}
	if r == 0 {
		r = 1
	}

	t := mat.NewDense(r, r, nil)
	for i, p := range phi {
		t.Set(i, 0, p)
	}
	for i := 0; i < r-1; i++ {
		t.Set(i, i+1, 1)
	}

	s := mat.NewVecDense(r, nil)
	s.SetVec(0, 1)
	for j, q := range theta {
		s.SetVec(j+1, q)
	}

	return &StateSpace{R: r, T: t, S: s}
}

// InitialCovariance solves the discrete Lyapunov equation
// P0 = T*P0*T' + S*S' exactly: vec(P0) = (I - T(x)T)^{-1} vec(S*S').
// When iterations > 0 it instead runs that many steady-state recursion
// steps from S*S', a cheaper warm start traded against accuracy.
func (ss *StateSpace) InitialCovariance(iterations int) (*mat.Dense, error) {
	r := ss.R
	rr := ss.selfOuter()

	if iterations > 0 {
		p := mat.DenseCopyOf(rr)
		var tp, tpt mat.Dense
		for i := 0; i < iterations; i++ {
			tp.Mul(ss.T, p)
			tpt.Mul(&tp, ss.T.T())
			p.Add(&tpt, rr)
		}
		return p, nil
	}

	// Row-major vec: index (i,j) -> i*r+j. (I - T(x)T)[i*r+j, k*r+l] =
	// delta - T[i,k]*T[j,l].
	n := r * r
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			row := i*r + j
			b.SetVec(row, rr.At(i, j))
			for k := 0; k < r; k++ {
				for l := 0; l < r; l++ {
					col := k*r + l
					v := -ss.T.At(i, k) * ss.T.At(j, l)
					if row == col {
						v++
					}
					a.Set(row, col, v)
				}
			}
		}
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, err
	}
	p := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			p.Set(i, j, sol.AtVec(i*r+j))
		}
	}
	return p, nil
}

// selfOuter returns S*S'.
func (ss *StateSpace) selfOuter() *mat.Dense {
	r := ss.R
	out := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			out.Set(i, j, ss.S.AtVec(i)*ss.S.AtVec(j))
		}
	}
	return out
}
