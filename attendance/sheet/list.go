package sheet

import (
	"fmt"
	"strings"

	"fleetops.com/fleetops/attendance/model"
)

// Accepted column names per logical field, tried in order.
var (
	DriverNameAliases = []string{"Driver Name", "driver_name", "Driver", "Name"}
	DateAliases       = []string{"Date", "date"}
	StatusAliases     = []string{"Status", "status", "Attendance"}
	NotesAliases      = []string{"Notes", "notes", "Remarks"}
)

// ListParser reads the row-per-record layout: a header row followed by one
// driver/date/status row each.
type ListParser struct{}

func trimCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}

// record maps header names to a row's values.
type record map[string]string

// field returns the first alias with a non-empty value.
func (r record) field(aliases []string) string {
	for _, alias := range aliases {
		if v := r[alias]; v != "" {
			return v
		}
	}
	return ""
}

func (p *ListParser) Parse(rows [][]string) (*ParseResult, error) {
	result := &ParseResult{Format: ListFormat}
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = trimCell(h)
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1
		if rowIsEmpty(row) {
			continue
		}

		rec := make(record, len(headers))
		for col, h := range headers {
			if h == "" {
				continue
			}
			if _, taken := rec[h]; taken && rec[h] != "" {
				continue
			}
			rec[h] = cellValue(row, col)
		}

		name := rec.field(DriverNameAliases)
		dateText := rec.field(DateAliases)
		if name == "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: "missing driver name"})
			continue
		}
		if dateText == "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: "missing date"})
			continue
		}

		date, err := NormalizeDate(dateText)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("invalid date %q", dateText)})
			continue
		}

		entry := ParsedEntry{
			DriverName: name,
			Date:       date,
			Status:     model.StatusOrDefault(rec.field(StatusAliases)),
			Row:        rowNum,
			RowRef:     fmt.Sprintf("Row %d", rowNum),
		}
		if notes := rec.field(NotesAliases); notes != "" {
			entry.Notes = &notes
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}
