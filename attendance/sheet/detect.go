package sheet

import (
	"regexp"
	"strings"
)

type Format int

const (
	ListFormat Format = iota
	GridFormat
)

func (f Format) String() string {
	if f == GridFormat {
		return "grid"
	}
	return "list"
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var serialHeaders = map[string]bool{
	"SNO":      true,
	"SRNO":     true,
	"SLNO":     true,
	"SERIAL":   true,
	"SERIALNO": true,
}

var nonAlphaNum = regexp.MustCompile(`[^A-Z0-9]+`)

func normalizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return nonAlphaNum.ReplaceAllString(strings.ToUpper(strings.TrimSpace(s)), "")
}

func isSerialHeader(cell string) bool {
	return serialHeaders[normalizeHeader(cell)]
}

func isNameHeader(cell string) bool {
	return strings.Contains(normalizeHeader(cell), "NAME")
}

// containsMonth reports whether cell mentions one of the twelve month names.
func containsMonth(cell string) bool {
	lower := strings.ToLower(cell)
	for _, m := range monthNames {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// DetectFormat classifies a sheet from its header row. The grid layout is
// recognised by its "serial | name | <month>,<year>" header; anything else,
// including an empty sheet, falls back to the list layout.
func DetectFormat(rows [][]string) Format {
	if len(rows) == 0 {
		return ListFormat
	}

	var hasSerial, hasName, hasMonth bool
	for _, cell := range rows[0] {
		switch {
		case isSerialHeader(cell):
			hasSerial = true
		case isNameHeader(cell):
			hasName = true
		}
		if containsMonth(cell) {
			hasMonth = true
		}
	}

	if hasSerial && hasName && hasMonth {
		return GridFormat
	}
	return ListFormat
}
