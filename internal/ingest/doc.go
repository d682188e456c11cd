// Package ingest turns raw spreadsheet exports into a normalized,
// date-sorted price table and loads that table back as a price series.
//
// The raw side accepts xlsx workbooks (first sheet unless one is named)
// and csv files. Column names are trimmed and mapped onto the standard
// Open, High, Low, Close, Adj Close and Volume names; a Date column is
// mandatory. The normalized table is written as processed_prices.csv
// with ISO dates, which LoadSeries reads for the analytics stage.
package ingest
