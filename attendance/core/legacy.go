package core

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/attendance/sheet"
	"fleetops.com/fleetops/utils"
	"github.com/xuri/excelize/v2"
)

// SyncEntry is one committed mark to mirror into the legacy workbook.
type SyncEntry struct {
	DriverName string
	Date       time.Time
	Status     model.Status
}

// Synchronizer mirrors committed marks somewhere outside the ledger.
type Synchronizer interface {
	Sync(entries ...SyncEntry) error
}

// LegacyWorkbook mirrors marks into the grid workbook kept at Path. The
// file is opened, edited and saved within one Sync call and never held
// open between calls. There is no lock: concurrent syncs to the same file
// are last write wins.
type LegacyWorkbook struct {
	Path string
	Now  func() time.Time
}

func NewLegacyWorkbook(path string) *LegacyWorkbook {
	return &LegacyWorkbook{Path: path, Now: time.Now}
}

func (w *LegacyWorkbook) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// Sync writes "P" or "A" into the driver row and day column of each entry.
// Entries that cannot be placed are skipped and reported in the returned
// error; the workbook is saved when at least one cell changed.
func (w *LegacyWorkbook) Sync(entries ...SyncEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if w.Path == "" {
		return fmt.Errorf("%w: no workbook path configured", ErrSynchronization)
	}
	if _, err := os.Stat(w.Path); err != nil {
		return fmt.Errorf("%w: %w", ErrSynchronization, err)
	}

	f, err := excelize.OpenFile(w.Path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrSynchronization, w.Path, err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrSynchronization, sheetName, err)
	}

	layout, err := sheet.LocateGrid(rows, w.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSynchronization, err)
	}

	driverRows := map[string]int{}
	for i := layout.FirstDriverRow(); i < len(rows); i++ {
		name := layout.DriverName(rows[i])
		if name == "" {
			continue
		}
		key := utils.NormalizeName(name)
		if _, seen := driverRows[key]; !seen {
			driverRows[key] = i
		}
	}

	var errs []error
	written := 0
	for _, e := range entries {
		cell, err := w.locate(layout, driverRows, e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := f.SetCellValue(sheetName, cell, e.Status.Mark()); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", cell, err))
			continue
		}
		written++
	}

	if written > 0 {
		if err := f.Save(); err != nil {
			return fmt.Errorf("%w: save %s: %w", ErrSynchronization, w.Path, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrSynchronization, errors.Join(errs...))
	}
	return nil
}

// locate returns the cell name for an entry, e.g. "D7".
func (w *LegacyWorkbook) locate(layout *sheet.GridLayout, driverRows map[string]int, e SyncEntry) (string, error) {
	if e.Status.Mark() == "" {
		return "", fmt.Errorf("%s on %s: %w", e.DriverName, utils.FormatDate(e.Date), ErrInvalidStatus)
	}
	if layout.MonthFound && int(e.Date.Month())-1 != layout.Period.Month {
		return "", fmt.Errorf("%s on %s: workbook covers %s", e.DriverName, utils.FormatDate(e.Date), time.Month(layout.Period.Month+1))
	}
	if layout.YearFound && e.Date.Year() != layout.Period.Year {
		return "", fmt.Errorf("%s on %s: workbook covers %s", e.DriverName, utils.FormatDate(e.Date), layout.Period)
	}

	row, ok := driverRows[utils.NormalizeName(e.DriverName)]
	if !ok {
		return "", fmt.Errorf("%s: driver row not found", e.DriverName)
	}
	col, ok := layout.DayColumn(e.Date.Day())
	if !ok {
		return "", fmt.Errorf("%s on %s: day column %d not found", e.DriverName, utils.FormatDate(e.Date), e.Date.Day())
	}

	return excelize.CoordinatesToCellName(col+1, row+1)
}
