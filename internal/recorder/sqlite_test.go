package recorder_test

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceLens/internal/model"
	"PriceLens/internal/recorder"
)

func kpi(cagr float64, sharpe *float64) *model.KPISummary {
	return &model.KPISummary{
		StartDate:   time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		CAGR:        cagr,
		AnnualVol:   0.2,
		Sharpe:      sharpe,
		MaxDrawdown: -0.35,
	}
}

func openTemp(t *testing.T) *recorder.SQLiteRecorder {
	t.Helper()
	r, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRoundTrip(t *testing.T) {
	r := openTemp(t)

	_, err := r.Latest()
	assert.ErrorIs(t, err, recorder.ErrNoRuns)

	sharpe := 0.9
	first := recorder.NewRunRecord("a.csv", "Adj Close", 1200, kpi(0.1, &sharpe))
	first.Timestamp = time.Unix(1_700_000_000, 0)
	second := recorder.NewRunRecord("b.csv", "Close", 1, kpi(math.NaN(), nil))
	second.Timestamp = time.Unix(1_700_000_100, 0)
	second.KPI.AnnualVol = math.NaN()
	second.KPI.MaxDrawdown = math.NaN()

	require.NoError(t, r.RecordRun(first))
	require.NoError(t, r.RecordRun(second))

	latest, err := r.Latest()
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "Close", latest.PriceField)
	assert.Equal(t, 1, latest.Rows)
	assert.True(t, math.IsNaN(latest.KPI.CAGR))
	assert.True(t, math.IsNaN(latest.KPI.AnnualVol))
	assert.True(t, math.IsNaN(latest.KPI.MaxDrawdown))
	assert.Nil(t, latest.KPI.Sharpe)
	assert.True(t, second.Timestamp.Equal(latest.Timestamp))

	runs, err := r.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 0.1, runs[1].KPI.CAGR)
	require.NotNil(t, runs[1].KPI.Sharpe)
	assert.Equal(t, 0.9, *runs[1].KPI.Sharpe)
	assert.Equal(t, first.KPI.StartDate, runs[1].KPI.StartDate)
	assert.Equal(t, first.KPI.EndDate, runs[1].KPI.EndDate)

	runs, err = r.List(1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := recorder.NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(recorder.NewRunRecord("a.csv", "Close", 3, kpi(0.05, nil))))
	require.NoError(t, r.Close())

	r, err = recorder.NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r.Close()
	runs, err := r.List(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestOpen(t *testing.T) {
	assert.IsType(t, &recorder.NoopRecorder{}, recorder.Open(""))

	r := recorder.Open(filepath.Join(t.TempDir(), "h.db"))
	defer r.Close()
	assert.IsType(t, &recorder.SQLiteRecorder{}, r)
}

func TestNoop(t *testing.T) {
	n := recorder.NewNoopRecorder()
	assert.NoError(t, n.RecordRun(recorder.NewRunRecord("", "", 0, kpi(0, nil))))
	_, err := n.Latest()
	assert.ErrorIs(t, err, recorder.ErrNoRuns)
	runs, err := n.List(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
}
