package collector_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceLens/internal/collector"
	"PriceLens/internal/ingest"
	"PriceLens/internal/model"
)

const chartPayload = `{"chart":{"result":[{
  "meta":{"symbol":"^GSPC","gmtoffset":-14400},
  "timestamp":[1712151000,1712064600,1712237400],
  "indicators":{
    "quote":[{"open":[101,100,null],"high":[103,102,null],"low":[100,99,null],"close":[102,101,null],"volume":[2000,1000,null]}],
    "adjclose":[{"adjclose":[101.5,100.5,null]}]
  }}],"error":null}}`

func yahooServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath() + "?" + r.URL.RawQuery
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotPath
}

func TestYahooFetchDailyBars(t *testing.T) {
	srv, gotPath := yahooServer(t, http.StatusOK, chartPayload)
	f := collector.NewYahooFetcher("")
	f.BaseURL = srv.URL

	bars, err := f.FetchDailyBars(context.Background(), "SPX", "1y")
	require.NoError(t, err)
	assert.Contains(t, *gotPath, "/%5EGSPC?interval=1d&range=1y")

	// null bar dropped, remaining sorted oldest first
	require.Len(t, bars, 2)
	assert.Equal(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), bars[1].Time)
	assert.Equal(t, 101.0, bars[0].Close)
	assert.Equal(t, 100.5, bars[0].AdjClose)
	assert.Equal(t, 2000.0, bars[1].Volume)
}

func TestYahooErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http status", http.StatusTooManyRequests, "slow down"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := yahooServer(t, tt.status, tt.body)
			f := collector.NewYahooFetcher("")
			f.BaseURL = srv.URL
			_, err := f.FetchDailyBars(context.Background(), "AAPL", "")
			assert.Error(t, err)
		})
	}
}

func TestYahooNoData(t *testing.T) {
	srv, _ := yahooServer(t, http.StatusOK, `{"chart":{"result":[],"error":null}}`)
	f := collector.NewYahooFetcher("")
	f.BaseURL = srv.URL
	_, err := f.FetchDailyBars(context.Background(), "AAPL", "1mo")
	assert.ErrorIs(t, err, collector.ErrNoData)
}

func TestMockFetcher(t *testing.T) {
	m := &collector.MockFetcher{Price: 50}
	bars, err := m.FetchDailyBars(context.Background(), "X", "1mo")
	require.NoError(t, err)
	assert.Len(t, bars, collector.RangeDays("1mo"))
	assert.True(t, bars[0].Time.Before(bars[len(bars)-1].Time))

	m.Err = errors.New("offline")
	_, err = m.FetchDailyBars(context.Background(), "X", "1mo")
	assert.EqualError(t, err, "offline")
}

func TestCollectWritesIngestibleWorkbook(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	m := &collector.MockFetcher{DailyData: []model.OHLCV{
		{Time: day(2), Open: 10, High: 11, Low: 9, Close: 10.5, AdjClose: 10.25, Volume: 100},
		{Time: day(3), Open: 10.5, High: 12, Low: 10, Close: 11.5, AdjClose: 11.25, Volume: 200},
	}}
	dir := t.TempDir()
	raw := filepath.Join(dir, "data", "raw.xlsx")

	n, err := collector.NewCollector(m, "X", "1mo").Collect(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	processed := filepath.Join(dir, "processed_prices.csv")
	frame, err := ingest.Ingest(raw, "", processed)
	require.NoError(t, err)
	assert.Equal(t, []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}, frame.Columns)

	series, err := ingest.LoadSeries(processed, "")
	require.NoError(t, err)
	assert.Equal(t, "Adj Close", series.Field)
	assert.Equal(t, []float64{10.25, 11.25}, series.Prices())
	assert.Equal(t, day(3), series.Points[1].Date)
}

func TestCollectEmpty(t *testing.T) {
	m := &collector.MockFetcher{DailyData: []model.OHLCV{}}
	_, err := collector.NewCollector(m, "X", "1mo").Collect(context.Background(), filepath.Join(t.TempDir(), "raw.xlsx"))
	assert.Error(t, err)
}
