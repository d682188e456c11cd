package collector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"PriceLens/internal/model"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Prices"

// XLSXHeader is the column order of the raw spreadsheet.
var XLSXHeader = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// WriteXLSX writes bars as a raw price workbook.
func WriteXLSX(path string, bars []model.OHLCV) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(XLSXHeader))
	for i, h := range XLSXHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, b := range bars {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{b.Time.Format("2006-01-02"), b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
