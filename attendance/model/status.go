package model

import "strings"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	// StatusNone is never stored; the read path reports it for drivers
	// without a record on the requested date.
	StatusNone Status = "none"
)

// DefaultUnrecognisedStatus is applied to non-empty status text that is not
// one of P/PRESENT/A/ABSENT, and to list rows without a status value.
const DefaultUnrecognisedStatus = StatusAbsent

// ParseStatus matches P/PRESENT and A/ABSENT case-insensitively.
// ok is false for anything else, including empty text.
func ParseStatus(text string) (Status, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "P", "PRESENT":
		return StatusPresent, true
	case "A", "ABSENT":
		return StatusAbsent, true
	}
	return "", false
}

// StatusOrDefault maps status text with the default policy applied.
func StatusOrDefault(text string) Status {
	if s, ok := ParseStatus(text); ok {
		return s
	}
	return DefaultUnrecognisedStatus
}

func (s Status) Stored() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Mark is the single-letter code written into the legacy workbook.
func (s Status) Mark() string {
	switch s {
	case StatusPresent:
		return "P"
	case StatusAbsent:
		return "A"
	}
	return ""
}
