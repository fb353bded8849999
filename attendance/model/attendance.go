package model

import (
	"time"

	"fleetops.com/fleetops/core/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is one driver's status on one calendar day. The composite
// unique index on (driver_id, date) is what every upsert conflicts on.
type AttendanceRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	DriverID  string    `gorm:"column:driver_id;type:varchar(36);not null;uniqueIndex:idx_attendance_driver_date,priority:1" json:"driver_id"`
	Date      time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_driver_date,priority:2" json:"date"`
	Status    Status    `gorm:"column:status;type:varchar(20);not null" json:"status"`
	InTime    *string   `gorm:"column:in_time;type:varchar(5)" json:"in_time"`
	OutTime   *string   `gorm:"column:out_time;type:varchar(5)" json:"out_time"`
	Notes     *string   `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Driver *models.Driver `gorm:"foreignKey:DriverID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

func (r *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
