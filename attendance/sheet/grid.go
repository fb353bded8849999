package sheet

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/utils"
)

var ErrNoHeaderRow = errors.New("no header row with a name column")

// PlaceholderLabels are section headings found in the name column of grid
// sheets. Rows carrying them are not drivers.
var PlaceholderLabels = map[string]bool{
	"OFFICE":  true,
	"SITE":    true,
	"STAFF":   true,
	"DRIVERS": true,
	"DRIVER":  true,
	"TOTAL":   true,
	"NAME":    true,
}

var periodTokens = regexp.MustCompile(`[A-Za-z]+|[0-9]+`)

// GridPeriod is the month a grid sheet covers. Month is 0-based.
type GridPeriod struct {
	Month int
	Year  int
}

func (p GridPeriod) String() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month+1), p.Year)
}

// DefaultGridPeriod is used when the header carries no readable month/year:
// January of the current year.
func DefaultGridPeriod(now time.Time) GridPeriod {
	return GridPeriod{Month: 0, Year: now.Year()}
}

// GridParser reads the driver-by-day matrix layout: row 0 holds the headers
// and a "<Month>,<Year>" token, row 1 the day numbers and every following
// row one driver.
type GridParser struct {
	Now func() time.Time
}

func (p *GridParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// ParsePeriod extracts the month and year from a header cell such as
// "November,2025" or "NOV 2025".
func ParsePeriod(cell string) (period GridPeriod, monthFound, yearFound bool) {
	period.Month = -1
	for _, token := range periodTokens.FindAllString(cell, -1) {
		if m := monthIndex(token); m >= 0 && !monthFound {
			period.Month = m
			monthFound = true
			continue
		}
		if y, err := strconv.Atoi(token); err == nil && y >= 1900 && y <= 9999 && !yearFound {
			period.Year = y
			yearFound = true
		}
	}
	return period, monthFound, yearFound
}

// monthIndex matches full month names and their three letter prefixes.
func monthIndex(token string) int {
	lower := strings.ToLower(token)
	for i, name := range monthNames {
		if lower == name || (len(lower) >= 3 && strings.HasPrefix(name, lower)) {
			return i
		}
	}
	return -1
}

// GridPeriodFromHeader scans a header row for the month/year token. Missing
// parts are filled from DefaultGridPeriod and reported as a warning.
func GridPeriodFromHeader(header []string, now time.Time) (period GridPeriod, monthFound, yearFound bool, warning string) {
	def := DefaultGridPeriod(now)
	for _, cell := range header {
		if monthIndexInCell(cell) < 0 {
			continue
		}
		period, monthFound, yearFound = ParsePeriod(cell)
		if !monthFound {
			continue
		}
		if !yearFound {
			period.Year = def.Year
			return period, true, false, fmt.Sprintf("no year in header %q, assuming %s", cell, period)
		}
		return period, true, true, ""
	}
	return def, false, false, fmt.Sprintf("no month/year in header row, assuming %s", def)
}

func monthIndexInCell(cell string) int {
	for _, token := range periodTokens.FindAllString(cell, -1) {
		if m := monthIndex(token); m >= 0 {
			return m
		}
	}
	return -1
}

// dayNumber reads a day header cell. Numeric cells may surface as "1" or "1.0".
func dayNumber(cell string) (int, bool) {
	f, err := strconv.ParseFloat(trimCell(cell), 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > 31 {
		return 0, false
	}
	return int(f), true
}

func isPlaceholderName(name string) bool {
	return PlaceholderLabels[normalizeHeader(name)]
}

// isNumeric catches serial numbers and totals that end up in the name column.
func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// maxHeaderScan bounds how far down LocateGrid looks for the header row.
const maxHeaderScan = 10

// GridLayout is the structure shared by grid imports and the legacy
// workbook. Row and column indexes are 0-based.
type GridLayout struct {
	HeaderRow int
	NameCol   int
	Period    GridPeriod
	// MonthFound and YearFound report which parts of Period the header
	// named; the rest came from DefaultGridPeriod.
	MonthFound bool
	YearFound  bool
	Warning    string
	// Days maps a column to the day of month in the row under the header.
	Days map[int]int
}

// DayRow is the row holding the day numbers.
func (l *GridLayout) DayRow() int {
	return l.HeaderRow + 1
}

// FirstDriverRow is the first row that may hold a driver.
func (l *GridLayout) FirstDriverRow() int {
	return l.HeaderRow + 2
}

// DayColumn returns the column whose day header equals day.
func (l *GridLayout) DayColumn(day int) (int, bool) {
	found := -1
	for col, d := range l.Days {
		if d == day && (found < 0 || col < found) {
			found = col
		}
	}
	return found, found >= 0
}

// DriverName returns the name cell of row, or "" when the row is not a driver.
func (l *GridLayout) DriverName(row []string) string {
	name := cellValue(row, l.NameCol)
	if name == "" || isNumeric(name) || isPlaceholderName(name) {
		return ""
	}
	return name
}

// LocateGrid finds the header row (the first row with a name column among
// the top rows), its month/year and the day numbers below it.
func LocateGrid(rows [][]string, now time.Time) (*GridLayout, error) {
	for r := 0; r < len(rows) && r < maxHeaderScan; r++ {
		nameCol := -1
		for i, cell := range rows[r] {
			if isNameHeader(cell) && !isSerialHeader(cell) {
				nameCol = i
				break
			}
		}
		if nameCol < 0 {
			continue
		}

		layout := &GridLayout{HeaderRow: r, NameCol: nameCol, Days: map[int]int{}}
		layout.Period, layout.MonthFound, layout.YearFound, layout.Warning = GridPeriodFromHeader(rows[r], now)

		if dayRow := layout.DayRow(); dayRow < len(rows) {
			for col, cell := range rows[dayRow] {
				if col == nameCol {
					continue
				}
				if d, ok := dayNumber(cell); ok {
					layout.Days[col] = d
				}
			}
		}
		return layout, nil
	}
	return nil, ErrNoHeaderRow
}

func (p *GridParser) Parse(rows [][]string) (*ParseResult, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyWorkbook
	}

	layout, err := LocateGrid(rows, p.now())
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Format: GridFormat}
	if layout.Warning != "" {
		result.Warnings = append(result.Warnings, layout.Warning)
	}
	period := layout.Period

	for i := layout.FirstDriverRow(); i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1
		name := layout.DriverName(row)
		if name == "" {
			continue
		}

		for col := range row {
			day, ok := layout.Days[col]
			if !ok {
				continue
			}
			text := cellValue(row, col)
			if text == "" {
				continue
			}

			date := time.Date(period.Year, time.Month(period.Month+1), day, 0, 0, 0, 0, time.UTC)
			if date.Day() != day {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Row %d: day %d is not a valid date in %s", rowNum, day, period))
				continue
			}

			result.Entries = append(result.Entries, ParsedEntry{
				DriverName: name,
				Date:       utils.DateOnly(date),
				Status:     model.StatusOrDefault(text),
				Row:        rowNum,
				RowRef:     fmt.Sprintf("Row %d", rowNum),
			})
		}
	}

	return result, nil
}
