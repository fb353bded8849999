package core

import (
	"context"
	"encoding/json"
	"fmt"

	"fleetops.com/fleetops/attendance/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ActionMark   = "attendance.mark"
	ActionBulk   = "attendance.bulk"
	ActionImport = "attendance.import"
	ActionDelete = "attendance.delete"
)

// AuditLogger records coarse actions. A failed write is logged and dropped.
type AuditLogger struct {
	db *gorm.DB
}

func NewAuditLogger(db *gorm.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

func (a *AuditLogger) Record(ctx context.Context, userID *string, action string, details any) {
	if a == nil || a.db == nil {
		return
	}

	payload, err := json.Marshal(details)
	if err != nil {
		fmt.Printf("[WARN] audit %s: encode details: %v\n", action, err)
		return
	}

	entry := model.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: datatypes.JSON(payload),
	}
	if err := a.db.WithContext(ctx).Create(&entry).Error; err != nil {
		fmt.Printf("[WARN] audit %s: %v\n", action, err)
	}
}

// ListAuditLogs returns the newest entries first.
func ListAuditLogs(db *gorm.DB, action string, limit int) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	query := db.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true})
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, storageError("list audit logs", err)
	}
	return logs, nil
}
