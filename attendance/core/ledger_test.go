package core

import (
	"errors"
	"testing"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countRecords(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.AttendanceRecord{}).Count(&n).Error)
	return n
}

func TestUpsertOneOverwritesInPlace(t *testing.T) {
	db := newTestDB(t)
	driver := seedDriver(t, db, "Ramesh Kumar", "active")
	day := date(2025, 11, 5)

	first, err := UpsertOne(db, Entry{DriverID: driver.ID, Date: day, Status: model.StatusPresent, Notes: utils.Ptr("on time")})
	require.NoError(t, err)

	second, err := UpsertOne(db, Entry{DriverID: driver.ID, Date: day, Status: model.StatusAbsent, InTime: utils.Ptr("09:00")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.StatusAbsent, second.Status)
	require.NotNil(t, second.Notes)
	assert.Equal(t, "on time", *second.Notes, "notes stay when not supplied")
	assert.Equal(t, "09:00", utils.Deref(second.InTime))
	assert.Equal(t, int64(1), countRecords(t, db))
}

func TestUpsertOneValidates(t *testing.T) {
	db := newTestDB(t)
	driver := seedDriver(t, db, "Ramesh Kumar", "active")

	_, err := UpsertOne(db, Entry{DriverID: driver.ID, Date: date(2025, 11, 5), Status: model.StatusNone})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = UpsertOne(db, Entry{DriverID: driver.ID, Status: model.StatusPresent})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUpsertBatchKeepsOneRecordPerPair(t *testing.T) {
	db := newTestDB(t)
	a := seedDriver(t, db, "Ramesh Kumar", "active")
	b := seedDriver(t, db, "Suresh Singh", "active")

	entries := []Entry{
		{DriverID: a.ID, Date: date(2025, 11, 1), Status: model.StatusPresent},
		{DriverID: a.ID, Date: date(2025, 11, 2), Status: model.StatusPresent},
		{DriverID: b.ID, Date: date(2025, 11, 1), Status: model.StatusPresent},
		{DriverID: a.ID, Date: date(2025, 11, 1), Status: model.StatusAbsent},
		{DriverID: b.ID, Date: date(2025, 11, 1), Status: model.StatusAbsent},
	}

	count, err := UpsertBatch(db, entries)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.Equal(t, int64(3), countRecords(t, db))

	record, err := FindRecord(db, a.ID, date(2025, 11, 1))
	require.NoError(t, err)
	assert.Equal(t, model.StatusAbsent, record.Status, "later entries in the batch win")

	// A second identical batch changes nothing.
	_, err = UpsertBatch(db, entries)
	require.NoError(t, err)
	assert.Equal(t, int64(3), countRecords(t, db))
}

func TestUpsertBatchRollsBackOnStorageFailure(t *testing.T) {
	db := newTestDB(t)
	a := seedDriver(t, db, "Ramesh Kumar", "active")

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail", func(tx *gorm.DB) {
		if rec, ok := tx.Statement.Dest.(*model.AttendanceRecord); ok && rec.DriverID == "broken" {
			tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := UpsertBatch(db, []Entry{
		{DriverID: a.ID, Date: date(2025, 11, 1), Status: model.StatusPresent},
		{DriverID: "broken", Date: date(2025, 11, 1), Status: model.StatusPresent},
	})
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, int64(0), countRecords(t, db))
}

func TestDeleteRecord(t *testing.T) {
	db := newTestDB(t)
	a := seedDriver(t, db, "Ramesh Kumar", "active")
	record, err := UpsertOne(db, Entry{DriverID: a.ID, Date: date(2025, 11, 1), Status: model.StatusPresent})
	require.NoError(t, err)

	require.NoError(t, DeleteRecord(db, record.ID))
	assert.ErrorIs(t, DeleteRecord(db, record.ID), ErrRecordNotFound)

	_, err = FindRecord(db, a.ID, date(2025, 11, 1))
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
