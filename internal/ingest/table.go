package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"
	"github.com/xuri/excelize/v2"
)

// ErrNoHeader is returned when a file has no header row.
var ErrNoHeader = errors.New("no header row found")

// RawTable is a header plus string rows as read from a spreadsheet.
// Every row is padded to the header width.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the named column, or -1.
func (t *RawTable) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Read loads a raw table from path, choosing the reader by extension.
// sheet selects an xlsx worksheet; empty means the first one.
func Read(path, sheet string) (*RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return ReadXLSX(path, sheet)
	case ".csv", ".txt":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

// ReadXLSX reads a worksheet; the first non-empty row is the header.
func ReadXLSX(path, sheet string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	log.Debug().Str("path", path).Str("sheet", sheet).Int("rows", len(rows)).Msg("workbook read")
	return newRawTable(rows)
}

// ReadCSV reads a comma-separated file, tolerating a UTF-8 BOM and ragged rows.
func ReadCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return newRawTable(rows)
}

func newRawTable(rows [][]string) (*RawTable, error) {
	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoHeader
	}
	t := &RawTable{Header: rows[start]}
	width := len(t.Header)
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		} else if len(row) > width {
			row = row[:width]
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
