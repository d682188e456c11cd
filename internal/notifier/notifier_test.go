package notifier_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceLens/internal/model"
	"PriceLens/internal/notifier"
	"PriceLens/internal/recorder"
)

func newNotifier(srv *httptest.Server) *notifier.TelegramNotifier {
	n := notifier.NewTelegramNotifier("TOKEN", "42", "")
	n.APIBase = srv.URL
	n.Backoff = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	require.NoError(t, newNotifier(srv).Send("hello"))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, "42", got["chat_id"])
	assert.Equal(t, "hello", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
}

func TestSendWithRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	n := newNotifier(srv)
	require.NoError(t, n.SendWithRetry(context.Background(), "hi", 3))
	assert.Equal(t, int32(3), calls.Load())

	calls.Store(-10)
	err := n.SendWithRetry(context.Background(), "hi", 1)
	assert.ErrorContains(t, err, "all 2 retries exhausted")
}

func TestStartPolling(t *testing.T) {
	var (
		mu      sync.Mutex
		replies []string
		served  atomic.Bool
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/botTOKEN/getUpdates":
			if served.CompareAndSwap(false, true) {
				_, _ = w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":" /kpi ","chat":{"id":42}}},
					{"update_id":8,"message":{"text":"/run","chat":{"id":99}}}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case "/botTOKEN/sendMessage":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
			cancel()
		}
	}))
	defer srv.Close()

	var commands []string
	done := make(chan struct{})
	go func() {
		newNotifier(srv).StartPolling(ctx, func(cmd string) string {
			commands = append(commands, cmd)
			return "reply to " + cmd
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/kpi"}, commands)
	assert.Equal(t, []string{"reply to /kpi"}, replies)
}

func TestFormatKPIReport(t *testing.T) {
	s := 1.234
	msg := notifier.FormatKPIReport("Adj Close", &model.KPISummary{
		StartDate:   time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
		CAGR:        0.1,
		AnnualVol:   math.NaN(),
		Sharpe:      &s,
		MaxDrawdown: -0.25,
	})
	assert.Contains(t, msg, "Series: Adj Close")
	assert.Contains(t, msg, "2020-01-02 → 2021-01-02")
	assert.Contains(t, msg, "CAGR: +10.00%")
	assert.Contains(t, msg, "Annualized Volatility: n/a")
	assert.Contains(t, msg, "Sharpe (ann.): 1.23")
	assert.Contains(t, msg, "Max Drawdown: -25.00%")

	msg = notifier.FormatKPIReport("Close", &model.KPISummary{CAGR: math.NaN()})
	assert.Contains(t, msg, "Sharpe (ann.): n/a")
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "No runs recorded yet.", notifier.FormatHistory(nil))

	msg := notifier.FormatHistory([]recorder.RunRecord{{
		Timestamp:  time.Date(2024, 5, 1, 18, 30, 0, 0, time.Local),
		PriceField: "Close",
		KPI:        model.KPISummary{CAGR: 0.05, AnnualVol: 0.2, MaxDrawdown: -0.1},
	}})
	assert.Contains(t, msg, "2024-05-01 18:30  Close  CAGR +5.00%  Vol +20.00%  MaxDD -10.00%")
}
