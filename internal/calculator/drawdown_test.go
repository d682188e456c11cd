package calculator_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"PriceLens/internal/calculator"
)

func TestMaxDrawdown_Example(t *testing.T) {
	cum := calculator.CumulativeReturns(calculator.Returns([]float64{100, 110, 121, 108.9}))
	assert.InDelta(t, (1.089-1.21)/1.21, calculator.MaxDrawdown(cum), 1e-12)
	assert.InDelta(t, -0.1, calculator.MaxDrawdown(cum), 1e-9)
}

func TestMaxDrawdown_NonDecreasingIsZero(t *testing.T) {
	cum := calculator.CumulativeReturns(calculator.Returns(linearPrices(30)))
	assert.Equal(t, 0.0, calculator.MaxDrawdown(cum))

	flat := calculator.CumulativeReturns(calculator.Returns([]float64{5, 5, 5}))
	assert.Equal(t, 0.0, calculator.MaxDrawdown(flat))
}

func TestMaxDrawdown_NeverPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		prices := make([]float64, 1+rng.Intn(300))
		p := 100.0
		for i := range prices {
			p *= 1 + (rng.Float64()-0.5)*0.1
			prices[i] = p
		}
		cum := calculator.CumulativeReturns(calculator.Returns(prices))
		mdd := calculator.MaxDrawdown(cum)
		assert.LessOrEqual(t, mdd, 0.0)

		declined := false
		for i := 1; i < len(cum); i++ {
			if cum[i] < cum[i-1] {
				declined = true
			}
		}
		assert.Equal(t, !declined, mdd == 0, "trial %d", trial)
	}
}

func TestDrawdowns_Series(t *testing.T) {
	dd := calculator.Drawdowns([]float64{1, 2, 1, 3, 1.5})
	want := []float64{0, 0, -0.5, 0, -0.5}
	for i := range want {
		assert.InDelta(t, want[i], dd[i], 1e-12)
	}
}

func TestRunningMax_SkipsNaN(t *testing.T) {
	peaks := calculator.RunningMax([]float64{1, math.NaN(), 0.5, 2})
	assert.Equal(t, 1.0, peaks[0])
	assert.True(t, math.IsNaN(peaks[1]))
	assert.Equal(t, 1.0, peaks[2])
	assert.Equal(t, 2.0, peaks[3])
}
