package core

import (
	"errors"
	"fmt"
	"time"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a resolved attendance mark ready for the ledger. Nil optional
// fields are left untouched on an existing record.
type Entry struct {
	DriverID string
	Date     time.Time
	Status   model.Status
	Notes    *string
	InTime   *string
	OutTime  *string
}

func (e Entry) validate() error {
	if !e.Status.Stored() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if e.DriverID == "" {
		return fmt.Errorf("%w: empty driver id", ErrDriverNotFound)
	}
	return nil
}

var conflictColumns = []clause.Column{{Name: "driver_id"}, {Name: "date"}}

// upsert inserts the entry or, when (driver_id, date) already exists,
// overwrites status and whichever optional fields were supplied.
func upsert(tx *gorm.DB, e Entry) error {
	record := model.AttendanceRecord{
		DriverID: e.DriverID,
		Date:     utils.DateOnly(e.Date),
		Status:   e.Status,
		Notes:    e.Notes,
		InTime:   e.InTime,
		OutTime:  e.OutTime,
	}

	updates := []string{"status", "updated_at"}
	if e.Notes != nil {
		updates = append(updates, "notes")
	}
	if e.InTime != nil {
		updates = append(updates, "in_time")
	}
	if e.OutTime != nil {
		updates = append(updates, "out_time")
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   conflictColumns,
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&record).Error
}

// FindRecord loads the ledger row for a driver and day.
func FindRecord(db *gorm.DB, driverID string, date time.Time) (*model.AttendanceRecord, error) {
	var record model.AttendanceRecord
	err := db.Where("driver_id = ? AND date = ?", driverID, utils.DateOnly(date)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, storageError("load attendance", err)
	}
	return &record, nil
}

// UpsertOne applies a single mark and returns the stored row. Run it inside
// a transaction to make the write and the read back one unit.
func UpsertOne(tx *gorm.DB, e Entry) (*model.AttendanceRecord, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	if err := upsert(tx, e); err != nil {
		return nil, storageError("upsert attendance", err)
	}
	return FindRecord(tx, e.DriverID, e.Date)
}

// UpsertBatch applies entries in input order inside one transaction. Any
// failure rolls back every entry.
func UpsertBatch(db *gorm.DB, entries []Entry) (int, error) {
	for i, e := range entries {
		if err := e.validate(); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	if len(entries) == 0 {
		return 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := upsert(tx, e); err != nil {
				return storageError(fmt.Sprintf("upsert attendance for driver %s on %s", e.DriverID, utils.FormatDate(e.Date)), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// DeleteRecord removes one ledger row by id.
func DeleteRecord(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&model.AttendanceRecord{})
	if result.Error != nil {
		return storageError("delete attendance", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
