package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"PriceLens/internal/model"
	"PriceLens/internal/recorder"
)

func pct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

func sharpe(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatKPIReport formats a KPI summary into a Telegram message.
func FormatKPIReport(field string, k *model.KPISummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>PriceLens KPI</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Series: %s\n", field))
	b.WriteString(fmt.Sprintf("Period: %s → %s\n\n",
		k.StartDate.Format("2006-01-02"), k.EndDate.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("CAGR: %s\n", pct(k.CAGR)))
	b.WriteString(fmt.Sprintf("Annualized Volatility: %s\n", pct(k.AnnualVol)))
	b.WriteString(fmt.Sprintf("Sharpe (ann.): %s\n", sharpe(k.Sharpe)))
	b.WriteString(fmt.Sprintf("Max Drawdown: %s\n", pct(k.MaxDrawdown)))

	return b.String()
}

// FormatHistory lists recorded runs, newest first.
func FormatHistory(runs []recorder.RunRecord) string {
	if len(runs) == 0 {
		return "No runs recorded yet."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Run history</b>\n\n")
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("%s  %s  CAGR %s  Vol %s  MaxDD %s\n",
			r.Timestamp.Format("2006-01-02 15:04"), r.PriceField,
			pct(r.KPI.CAGR), pct(r.KPI.AnnualVol), pct(r.KPI.MaxDrawdown)))
	}
	return b.String()
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "<b>PriceLens commands</b>\n" +
		"/kpi - latest KPI summary\n" +
		"/run - run the pipeline now\n" +
		"/history - recent runs\n" +
		"/help - this message"
}
