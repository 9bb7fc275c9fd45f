package arima

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRoundTrip(t *testing.T) {
	// forward(inverse(c)) == c for coefficient vectors strictly inside the
	// stationary region. Such vectors are generated by pushing arbitrary
	// unconstrained values through the forward map first.
	rng := rand.New(rand.NewSource(1))
	for _, maSign := range []float64{-1, 1} {
		for p := 1; p <= 4; p++ {
			for trial := 0; trial < 20; trial++ {
				c := make([]float64, p)
				for i := range c {
					c[i] = rng.NormFloat64()
				}
				transformBlock(c, maSign)

				got := make([]float64, p)
				copy(got, c)
				invTransformBlock(got, maSign)
				transformBlock(got, maSign)

				for i := range c {
					assert.InDelta(t, c[i], got[i], 1e-10,
						"p=%d maSign=%v trial=%d", p, maSign, trial)
				}
			}
		}
	}
}

func TestTransformProducesStationaryBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		c := make([]float64, 4)
		for i := range c {
			c[i] = rng.NormFloat64() * 3
		}
		transformBlock(c, -1)
		assert.True(t, IsStationary(c), "trial %d: %v", trial, c)
	}
}

func TestInvTransformZeroesNonStationaryBlock(t *testing.T) {
	// Outside the stationary region the inverse is undefined; the block is
	// reset to zero instead of failing the series.
	c := []float64{1.2}
	invTransformBlock(c, -1)
	assert.Equal(t, []float64{0}, c)

	c = []float64{0.5, 0.9}
	if !IsStationary(c) {
		invTransformBlock(c, -1)
		assert.Equal(t, []float64{0, 0}, c)
	}
}

func TestIsStationary(t *testing.T) {
	assert.True(t, IsStationary([]float64{0.5}))
	assert.False(t, IsStationary([]float64{1.0}))
	assert.False(t, IsStationary([]float64{-1.3}))
	assert.True(t, IsStationary(nil))

	// AR(2) stationarity triangle: phi2 in (-1,1), phi1+phi2 < 1,
	// phi2-phi1 < 1.
	assert.True(t, IsStationary([]float64{0.3, 0.4}))
	assert.False(t, IsStationary([]float64{0.8, 0.5}))
}

func TestIsInvertible(t *testing.T) {
	assert.True(t, IsInvertible([]float64{0.7}))
	assert.False(t, IsInvertible([]float64{-1.1}))
}

func TestTransformBatchLeavesMuAlone(t *testing.T) {
	o := Order{P: 1, Q: 1, K: 1}
	// Two series: [mu, ar, ma] each.
	x := []float64{3.5, 0.2, -0.4, -7.0, 1.1, 0.6}
	orig := append([]float64(nil), x...)

	TransformBatch(o, x)
	assert.Equal(t, orig[0], x[0])
	assert.Equal(t, orig[3], x[3])

	// The AR/MA entries went through tanh, so they are inside (-1, 1).
	for _, i := range []int{1, 2, 4, 5} {
		assert.Less(t, x[i], 1.0)
		assert.Greater(t, x[i], -1.0)
	}
}

func TestBatchTransformsAreInverse(t *testing.T) {
	o := Order{P: 2, Q: 1, SP: 1, SQ: 1, S: 4, K: 1}
	rng := rand.New(rand.NewSource(3))
	np := o.NumParams()
	require.Equal(t, 6, np)

	x := make([]float64, 3*np)
	for i := range x {
		x[i] = rng.NormFloat64()
	}
	orig := append([]float64(nil), x...)

	// Unconstrained -> coefficients -> unconstrained.
	TransformBatch(o, x)
	InvTransformBatch(o, x)
	for i := range x {
		assert.InDelta(t, orig[i], x[i], 1e-9, "index %d", i)
	}
}
