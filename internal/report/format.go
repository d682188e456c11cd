package report

import (
	"math"
	"strconv"

	"PriceLens/internal/model"
)

// DateLayout formats every date cell.
const DateLayout = "2006-01-02"

// KPIHeader is the column order of the KPI summary.
var KPIHeader = []string{"start_date", "end_date", "CAGR", "Annualized Volatility", "Sharpe (ann.)", "Max Drawdown"}

// TimeSeriesHeader returns the column order of the analytics table for the
// given price field.
func TimeSeriesHeader(field string) []string {
	return []string{"Date", field, "return", "cumulative_return", "rolling_vol_30d", "SMA_50", "SMA_200"}
}

// FormatFloat renders v in its shortest exact decimal form. NaN is the
// empty cell.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatOptional renders a nullable value; nil is the empty cell.
func FormatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v)
}

// KPIRecord renders the KPI summary as one row matching KPIHeader.
func KPIRecord(k *model.KPISummary) []string {
	return []string{
		k.StartDate.Format(DateLayout),
		k.EndDate.Format(DateLayout),
		FormatFloat(k.CAGR),
		FormatFloat(k.AnnualVol),
		FormatOptional(k.Sharpe),
		FormatFloat(k.MaxDrawdown),
	}
}

// TimeSeriesRecords renders one row per input date.
func TimeSeriesRecords(s *model.PriceSeries, d *model.DerivedSeries) [][]string {
	records := make([][]string, len(s.Points))
	for i, p := range s.Points {
		records[i] = []string{
			p.Date.Format(DateLayout),
			FormatFloat(p.Price),
			FormatFloat(d.Returns[i]),
			FormatFloat(d.CumulativeReturns[i]),
			FormatFloat(d.RollingVol[i]),
			FormatFloat(d.SMAShort[i]),
			FormatFloat(d.SMALong[i]),
		}
	}
	return records
}
