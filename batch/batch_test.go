package batch

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSeries(t *testing.T) {
	b, err := FromSeries([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, 3, b.NObs)
	assert.Equal(t, 2, b.NSeries)
	assert.Equal(t, []float64{4, 5, 6}, b.Series(1))
	assert.Equal(t, 2.0, b.At(1, 0))

	_, err = FromSeries([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	_, err = FromSeries()
	assert.Error(t, err)
}

func TestSeriesIsView(t *testing.T) {
	b := New(2, 2)
	b.Series(1)[0] = 7
	assert.Equal(t, 7.0, b.At(0, 1))
}

func TestSelectScatterRoundTrip(t *testing.T) {
	b, err := FromSeries(
		[]float64{1, 1},
		[]float64{2, 2},
		[]float64{3, 3},
		[]float64{4, 4},
	)
	require.NoError(t, err)

	indices := []int{3, 0, 2}
	sub := b.Select(indices)
	assert.Equal(t, []float64{4, 4}, sub.Series(0))
	assert.Equal(t, []float64{1, 1}, sub.Series(1))

	dst := New(2, 4)
	require.NoError(t, sub.Scatter(dst, indices))
	assert.Equal(t, []float64{4, 4}, dst.Series(3))
	assert.Equal(t, []float64{1, 1}, dst.Series(0))
	assert.Equal(t, []float64{3, 3}, dst.Series(2))
	// Untouched positions stay zero.
	assert.Equal(t, []float64{0, 0}, dst.Series(1))
}

func TestScatterMismatch(t *testing.T) {
	b := New(2, 2)
	dst := New(2, 4)
	assert.Error(t, b.Scatter(dst, []int{0}))
	short := New(3, 4)
	assert.Error(t, b.Scatter(short, []int{0, 1}))
}

func TestMeanVarianceNaN(t *testing.T) {
	b, err := FromSeries([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, b.Mean(0), 1e-12)
	assert.InDelta(t, 32.0/7.0, b.Variance(0), 1e-12)
	assert.False(t, b.HasNaN(0))

	b.Set(3, 0, math.NaN())
	assert.True(t, b.HasNaN(0))
}

func TestLoadCSVFromReader(t *testing.T) {
	csvData := "a,b\n1.5,2\n2.5,3\n3.5,4\n"
	b, names, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, b.Series(0))
	assert.Equal(t, []float64{2, 3, 4}, b.Series(1))

	_, _, err = LoadCSVFromReader(strings.NewReader("a,b\n1,x\n"), nil)
	assert.Error(t, err)

	_, _, err = LoadCSVFromReader(strings.NewReader("a,b\n"), nil)
	assert.Error(t, err)
}
