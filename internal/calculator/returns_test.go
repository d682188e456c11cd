package calculator_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceLens/internal/calculator"
)

func TestReturns_FirstUndefined(t *testing.T) {
	rets := calculator.Returns([]float64{100, 110, 121, 108.9})
	require.Len(t, rets, 4)
	assert.True(t, math.IsNaN(rets[0]))
	assert.InDelta(t, 0.10, rets[1], 1e-12)
	assert.InDelta(t, 0.10, rets[2], 1e-12)
	assert.InDelta(t, -0.10, rets[3], 1e-12)
}

func TestReturns_MatchesRatio(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = 50 + rng.Float64()*100
	}
	rets := calculator.Returns(prices)
	for i := 1; i < len(prices); i++ {
		assert.Equal(t, prices[i]/prices[i-1]-1, rets[i], "index %d", i)
	}
}

func TestReturns_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, calculator.Returns(nil))

	rets := calculator.Returns([]float64{42})
	require.Len(t, rets, 1)
	assert.True(t, math.IsNaN(rets[0]))
}

func TestReturns_ZeroPricePropagates(t *testing.T) {
	rets := calculator.Returns([]float64{0, 10, 5})
	assert.True(t, math.IsInf(rets[1], 1))
	assert.InDelta(t, -0.5, rets[2], 1e-12)

	rets = calculator.Returns([]float64{0, 0})
	assert.True(t, math.IsNaN(rets[1]))
}

func TestCumulativeReturns_StartsAtOne(t *testing.T) {
	for _, prices := range [][]float64{{5}, {5, 4}, {100, 110, 121, 108.9}} {
		cum := calculator.CumulativeReturns(calculator.Returns(prices))
		assert.Equal(t, 1.0, cum[0])
	}
}

func TestCumulativeReturns_Example(t *testing.T) {
	cum := calculator.CumulativeReturns(calculator.Returns([]float64{100, 110, 121, 108.9}))
	want := []float64{1.0, 1.10, 1.21, 1.089}
	require.Len(t, cum, len(want))
	for i := range want {
		assert.InDelta(t, want[i], cum[i], 1e-12, "index %d", i)
	}
}

func TestCumulativeReturns_Recurrence(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	prices := make([]float64, 250)
	p := 100.0
	for i := range prices {
		p *= 1 + (rng.Float64()-0.5)*0.04
		prices[i] = p
	}
	rets := calculator.Returns(prices)
	cum := calculator.CumulativeReturns(rets)
	for i := 1; i < len(cum); i++ {
		assert.Equal(t, cum[i-1]*(1+rets[i]), cum[i], "index %d", i)
	}
}

func TestCumulativeReturns_DoesNotMutateInput(t *testing.T) {
	rets := []float64{math.NaN(), 0.1}
	calculator.CumulativeReturns(rets)
	assert.True(t, math.IsNaN(rets[0]))
}
