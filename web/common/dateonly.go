package common

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fleetops.com/fleetops/utils"
)

// DateOnly is a calendar date carried as "yyyy-MM-dd" in JSON.
type DateOnly struct {
	time.Time
}

// ParseDateOnly reads "yyyy-MM-dd" as UTC midnight.
func ParseDateOnly(s string) (DateOnly, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateOnly{}, nil
	}
	t, err := time.ParseInLocation(utils.DateLayout, s, time.UTC)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q, expected yyyy-MM-dd", s)
	}
	return DateOnly{Time: t}, nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	// b is a quoted string like `"2025-10-29"`
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(utils.DateLayout))
}
