package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID        string         `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	UserID    *string        `gorm:"column:user_id;type:varchar(36)" json:"user_id"`
	Action    string         `gorm:"column:action;type:varchar(100);not null" json:"action"`
	Details   datatypes.JSON `gorm:"column:details" json:"details"`
	Timestamp time.Time      `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
