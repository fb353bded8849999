package utils

import "strings"

// NormalizeName folds case and collapses whitespace (including non-breaking
// spaces and line breaks) so names typed in spreadsheets compare equal.
func NormalizeName(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
