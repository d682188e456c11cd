package ingest

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// ErrMissingColumn is returned when a required column is absent.
var ErrMissingColumn = errors.New("missing required column")

// Standard column names produced by normalization.
const (
	ColDate     = "Date"
	ColOpen     = "Open"
	ColHigh     = "High"
	ColLow      = "Low"
	ColClose    = "Close"
	ColAdjClose = "Adj Close"
	ColVolume   = "Volume"
)

// Frame is a normalized table: parsed dates plus the remaining columns as
// trimmed strings, sorted ascending by date.
type Frame struct {
	Columns []string
	Dates   []time.Time
	Cells   [][]string
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Dates) }

// StandardName maps a raw header onto a standard column name. Later rules
// override earlier ones, so "Adj Close**" becomes Adj Close even though it
// also mentions close.
func StandardName(header string) string {
	name := header
	low := strings.ToLower(header)
	if strings.Contains(low, "close") && !strings.Contains(low, "adj") {
		name = ColClose
	}
	if strings.Contains(low, "adj close") || (strings.Contains(low, "adj") && strings.Contains(low, "close")) {
		name = ColAdjClose
	}
	if strings.Contains(low, "open") {
		name = ColOpen
	}
	if strings.Contains(low, "high") {
		name = ColHigh
	}
	if strings.Contains(low, "low") {
		name = ColLow
	}
	if strings.Contains(low, "volume") {
		name = ColVolume
	}
	return name
}

// Normalize trims header names, parses the Date column, renames price
// columns to their standard names and sorts rows by date. Rows with an
// empty date are dropped.
func Normalize(t *RawTable) (*Frame, error) {
	header := make([]string, len(t.Header))
	for i, h := range t.Header {
		header[i] = strings.TrimSpace(h)
	}
	dateIdx := -1
	for i, h := range header {
		if h == ColDate {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColDate)
	}

	frame := &Frame{}
	keep := make([]int, 0, len(header)-1)
	for i, h := range header {
		if i == dateIdx {
			continue
		}
		keep = append(keep, i)
		frame.Columns = append(frame.Columns, StandardName(h))
	}

	type row struct {
		date  time.Time
		cells []string
	}
	rows := make([]row, 0, len(t.Rows))
	skipped := 0
	for n, r := range t.Rows {
		raw := strings.TrimSpace(r[dateIdx])
		if raw == "" {
			skipped++
			continue
		}
		d, err := ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		cells := make([]string, len(keep))
		for j, idx := range keep {
			cells[j] = strings.TrimSpace(r[idx])
		}
		rows = append(rows, row{date: d, cells: cells})
	}
	if skipped > 0 {
		log.Warn().Int("rows", skipped).Msg("dropped rows without a date")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })
	frame.Dates = make([]time.Time, len(rows))
	frame.Cells = make([][]string, len(rows))
	for i, r := range rows {
		frame.Dates[i] = r.date
		frame.Cells[i] = r.cells
	}
	return frame, nil
}
