package collector

import (
	"context"
	"time"

	"PriceLens/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns daily bars for symbol over a Yahoo style range
	// such as "1y" or "max", oldest first.
	FetchDailyBars(ctx context.Context, symbol, rng string) ([]model.OHLCV, error)
	Name() string
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _, rng string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, RangeDays(rng)), nil
}

// RangeDays approximates the number of trading days in a Yahoo range.
func RangeDays(rng string) int {
	switch rng {
	case "1mo":
		return 21
	case "3mo":
		return 63
	case "6mo":
		return 126
	case "1y", "ytd":
		return 252
	case "2y":
		return 504
	case "10y", "max":
		return 2520
	default:
		return 1260
	}
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:     today.AddDate(0, 0, -(count - i)),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		}
	}
	return bars
}
