package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/phuslu/log"

	"PriceLens/internal/model"
)

// WriteProcessed writes the frame as CSV with ISO dates in the first column.
func WriteProcessed(path string, f *Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(append([]string{ColDate}, f.Columns...)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, d := range f.Dates {
		if err := w.Write(append([]string{d.Format(ISODate)}, f.Cells[i]...)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return out.Close()
}

// PriceField picks the column to analyze: field when non-empty, otherwise
// Adj Close when present, otherwise Close.
func PriceField(t *RawTable, field string) (string, error) {
	if field != "" {
		if t.Column(field) < 0 {
			return "", fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
		return field, nil
	}
	if t.Column(ColAdjClose) >= 0 {
		return ColAdjClose, nil
	}
	if t.Column(ColClose) >= 0 {
		return ColClose, nil
	}
	return "", fmt.Errorf("%w: neither %q nor %q present", ErrMissingColumn, ColAdjClose, ColClose)
}

// LoadSeries reads a processed CSV and returns the chosen price field as a
// date-sorted series. Unparseable price cells become NaN.
func LoadSeries(path, field string) (*model.PriceSeries, error) {
	t, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	dateIdx := t.Column(ColDate)
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColDate)
	}
	field, err = PriceField(t, field)
	if err != nil {
		return nil, err
	}
	priceIdx := t.Column(field)

	series := &model.PriceSeries{Field: field, Points: make([]model.PricePoint, 0, len(t.Rows))}
	bad := 0
	for n, r := range t.Rows {
		d, err := ParseDate(r[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		p, err := ParseNumber(r[priceIdx])
		if err != nil {
			bad++
		}
		series.Points = append(series.Points, model.PricePoint{Date: d, Price: p})
	}
	if bad > 0 {
		log.Warn().Str("field", field).Int("cells", bad).Msg("unparseable prices treated as missing")
	}
	sort.SliceStable(series.Points, func(i, j int) bool {
		return series.Points[i].Date.Before(series.Points[j].Date)
	})
	return series, nil
}

// Ingest reads a raw spreadsheet, normalizes it and writes the processed CSV.
func Ingest(rawPath, sheet, processedPath string) (*Frame, error) {
	t, err := Read(rawPath, sheet)
	if err != nil {
		return nil, err
	}
	f, err := Normalize(t)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", rawPath, err)
	}
	if err := WriteProcessed(processedPath, f); err != nil {
		return nil, err
	}
	log.Info().Str("input", rawPath).Str("output", processedPath).Int("rows", f.Len()).Msg("saved processed CSV")
	return f, nil
}
