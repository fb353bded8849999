package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const EmploymentStatusActive = "active"

// Driver is fleet master data. Attendance only reads id and full name.
type Driver struct {
	ID               string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	FullName         string    `gorm:"column:full_name;type:varchar(100);not null" json:"full_name"`
	Phone            *string   `gorm:"column:phone;type:varchar(20)" json:"phone"`
	LicenseNumber    *string   `gorm:"column:license_number;type:varchar(50)" json:"license_number"`
	EmploymentStatus string    `gorm:"column:employment_status;type:varchar(20);default:active" json:"employment_status"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.EmploymentStatus == "" {
		d.EmploymentStatus = EmploymentStatusActive
	}
	return nil
}

// ListDrivers returns the roster ordered by name. activeOnly restricts it to
// drivers whose employment status is active.
func ListDrivers(db *gorm.DB, activeOnly bool) ([]Driver, error) {
	var drivers []Driver
	query := db.Model(&Driver{}).Order("full_name ASC")
	if activeOnly {
		query = query.Where("employment_status = ?", EmploymentStatusActive)
	}
	if err := query.Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func FindDriverByID(db *gorm.DB, id string) (*Driver, error) {
	var driver Driver
	result := db.Where("id = ?", id).First(&driver)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &driver, nil
}
