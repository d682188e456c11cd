package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/phuslu/log"

	"PriceLens/internal/model"
)

// Dashboard describes the contents of the PDF summary.
type Dashboard struct {
	Title      string
	PriceField string
	KPI        *model.KPISummary
	Charts     []string // PNG paths, drawn in order
	Generated  time.Time
}

// percent renders a fraction as a percentage, or "n/a" when undefined.
func percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

func ratio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

// WritePDF renders the KPI table followed by the charts on A4 pages.
func WritePDF(path string, d Dashboard) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Title, true)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, d.Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Price field: %s  |  Generated %s",
		d.PriceField, d.Generated.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	k := d.KPI
	rows := [][2]string{
		{"Period", k.StartDate.Format(DateLayout) + " to " + k.EndDate.Format(DateLayout)},
		{"CAGR", percent(k.CAGR)},
		{"Annualized Volatility", percent(k.AnnualVol)},
		{"Sharpe (ann.)", ratio(k.Sharpe)},
		{"Max Drawdown", percent(k.MaxDrawdown)},
	}
	pdf.SetFillColor(235, 239, 244)
	for i, r := range rows {
		fill := i%2 == 0
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 7, r[0], "1", 0, "L", fill, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(70, 7, r[1], "1", 1, "R", fill, 0, "")
	}
	pdf.Ln(6)

	for _, chart := range d.Charts {
		if _, err := os.Stat(chart); err != nil {
			log.Warn().Str("chart", chart).Err(err).Msg("chart missing from dashboard")
			continue
		}
		pdf.ImageOptions(chart, 10, pdf.GetY(), 190, 0, true,
			fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		pdf.Ln(4)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	log.Info().Str("path", path).Int("charts", len(d.Charts)).Msg("saved dashboard")
	return nil
}
