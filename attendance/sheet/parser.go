package sheet

import (
	"fmt"
	"time"

	"fleetops.com/fleetops/attendance/model"
)

// ParsedEntry is one (driver name, date, status) triple read from a sheet.
// RowRef is kept only for error reporting.
type ParsedEntry struct {
	DriverName string
	Date       time.Time
	Status     model.Status
	Notes      *string
	Row        int
	RowRef     string
}

// RowError is a problem with one sheet row. Row is 1-indexed as the user
// sees it in a spreadsheet program, header included.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

type ParseResult struct {
	Format   Format
	Entries  []ParsedEntry
	Errors   []RowError
	Warnings []string
}

// Parser turns decoded sheet rows into entries. A returned error means the
// sheet as a whole is unusable; row problems go into ParseResult.Errors.
type Parser interface {
	Parse(rows [][]string) (*ParseResult, error)
}

// NewParser returns the parser for format. now supplies the current time for
// the grid layout's missing-year fallback; nil means time.Now.
func NewParser(format Format, now func() time.Time) Parser {
	if format == GridFormat {
		return &GridParser{Now: now}
	}
	return &ListParser{}
}

// Parse detects the layout of rows and runs the matching parser.
func Parse(rows [][]string, now func() time.Time) (*ParseResult, error) {
	format := DetectFormat(rows)
	result, err := NewParser(format, now).Parse(rows)
	if err != nil {
		return nil, err
	}
	result.Format = format
	return result, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return trimCell(row[idx])
}

func rowIsEmpty(row []string) bool {
	for _, c := range row {
		if trimCell(c) != "" {
			return false
		}
	}
	return true
}
