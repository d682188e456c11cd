package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phuslu/log"

	"PriceLens/internal/model"
)

// WriteCSV writes a header and records to path, creating parent
// directories and truncating any existing file.
func WriteCSV(path string, header []string, records [][]string) error {
	log.Debug().Str("path", path).Int("records", len(records)).Msg("writing CSV file")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteKPIs writes the one-row KPI summary.
func WriteKPIs(path string, k *model.KPISummary) error {
	if err := WriteCSV(path, KPIHeader, [][]string{KPIRecord(k)}); err != nil {
		return fmt.Errorf("write KPIs: %w", err)
	}
	log.Info().Str("path", path).Msg("saved KPI summary")
	return nil
}

// WriteTimeSeries writes the per-date analytics table.
func WriteTimeSeries(path string, s *model.PriceSeries, d *model.DerivedSeries) error {
	if err := WriteCSV(path, TimeSeriesHeader(s.Field), TimeSeriesRecords(s, d)); err != nil {
		return fmt.Errorf("write time series: %w", err)
	}
	log.Info().Str("path", path).Int("rows", s.Len()).Msg("saved time series")
	return nil
}
