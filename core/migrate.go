package core

import (
	"fmt"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/core/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the driver, attendance and audit tables,
// including the (driver_id, date) unique index the ledger upserts on.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Driver{}, &model.AttendanceRecord{}, &model.AuditLog{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
