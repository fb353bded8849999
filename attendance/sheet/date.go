package sheet

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fleetops.com/fleetops/utils"
)

var ErrDateParse = errors.New("unrecognised date")

// Serial 1 is 1899-12-31: the epoch is the day before.
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// 9999-12-31
const maxSerial = 2958465

// minTextSerial is the smallest serial accepted from text (1927-05-18).
// Shorter numbers typed into a date column are years or day numbers.
const minTextSerial = 10000

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006.01.02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"01/02/06",
	"1-2-2006",
	"01-02-2006",
	"01-02-06",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"02-Jan-06",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006",
}

// NormalizeDate converts a spreadsheet serial number, a date string or a
// time value into a calendar date at UTC midnight.
func NormalizeDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrDateParse)
		}
		return utils.DateOnly(v), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: nil time", ErrDateParse)
		}
		return NormalizeDate(*v)
	case float64:
		return FromSerial(v)
	case float32:
		return FromSerial(float64(v))
	case int:
		return FromSerial(float64(v))
	case int64:
		return FromSerial(float64(v))
	case string:
		return ParseDateString(v)
	case nil:
		return time.Time{}, fmt.Errorf("%w: empty value", ErrDateParse)
	}
	return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrDateParse, value)
}

// FromSerial treats serial as a day offset from the spreadsheet epoch and
// discards any fractional (time of day) part.
func FromSerial(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 0 || serial > maxSerial {
		return time.Time{}, fmt.Errorf("%w: serial %v out of range", ErrDateParse, serial)
	}
	return spreadsheetEpoch.AddDate(0, 0, int(math.Floor(serial))), nil
}

// ParseDateString accepts numeric serials surfaced as text, ISO strings and
// the common locale layouts (month first, as spreadsheet exports write them).
func ParseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrDateParse)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < minTextSerial {
			return time.Time{}, fmt.Errorf("%w: %q is not a date serial", ErrDateParse, s)
		}
		return FromSerial(serial)
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return utils.DateOnly(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrDateParse, s)
}
