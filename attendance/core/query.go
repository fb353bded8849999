package core

import (
	"time"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/core/models"
	"fleetops.com/fleetops/utils"
	"gorm.io/gorm"
)

// AttendanceFilter selects rows for the read path. IncludeAllDrivers only
// applies when Date is set.
type AttendanceFilter struct {
	Date              *time.Time
	DriverID          string
	IncludeAllDrivers bool
}

// AttendanceRow is a ledger row joined with the driver name. Rows made up
// for unmarked drivers have no ID and status none.
type AttendanceRow struct {
	ID        *string      `json:"id"`
	DriverID  string       `json:"driver_id"`
	FullName  string       `json:"full_name"`
	Date      string       `json:"date"`
	Status    model.Status `json:"status"`
	InTime    *string      `json:"in_time"`
	OutTime   *string      `json:"out_time"`
	Notes     *string      `json:"notes"`
	UpdatedAt *time.Time   `json:"updated_at"`
}

func newAttendanceRow(r model.AttendanceRecord) AttendanceRow {
	row := AttendanceRow{
		ID:        utils.Ptr(r.ID),
		DriverID:  r.DriverID,
		Date:      utils.FormatDate(r.Date),
		Status:    r.Status,
		InTime:    r.InTime,
		OutTime:   r.OutTime,
		Notes:     r.Notes,
		UpdatedAt: utils.Ptr(r.UpdatedAt),
	}
	if r.Driver != nil {
		row.FullName = r.Driver.FullName
	}
	return row
}

func ListAttendance(db *gorm.DB, filter AttendanceFilter) ([]AttendanceRow, error) {
	query := db.Preload("Driver").Order("date DESC")
	if filter.Date != nil {
		query = query.Where("date = ?", utils.DateOnly(*filter.Date))
	}
	if filter.DriverID != "" {
		query = query.Where("driver_id = ?", filter.DriverID)
	}

	var records []model.AttendanceRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, storageError("list attendance", err)
	}

	if filter.IncludeAllDrivers && filter.Date != nil {
		return withUnmarkedDrivers(db, records, filter)
	}

	return utils.Map(records, newAttendanceRow), nil
}

// withUnmarkedDrivers returns one row per active driver for the filter date.
func withUnmarkedDrivers(db *gorm.DB, records []model.AttendanceRecord, filter AttendanceFilter) ([]AttendanceRow, error) {
	drivers, err := models.ListDrivers(db, true)
	if err != nil {
		return nil, storageError("list drivers", err)
	}
	if filter.DriverID != "" {
		drivers = utils.Filter(drivers, func(d models.Driver) bool { return d.ID == filter.DriverID })
	}

	byDriver := make(map[string]model.AttendanceRecord, len(records))
	for _, r := range records {
		byDriver[r.DriverID] = r
	}

	date := utils.FormatDate(*filter.Date)
	rows := make([]AttendanceRow, 0, len(drivers))
	for _, d := range drivers {
		if r, ok := byDriver[d.ID]; ok {
			row := newAttendanceRow(r)
			row.FullName = d.FullName
			rows = append(rows, row)
			continue
		}
		rows = append(rows, AttendanceRow{
			DriverID: d.ID,
			FullName: d.FullName,
			Date:     date,
			Status:   model.StatusNone,
		})
	}

	return rows, nil
}
