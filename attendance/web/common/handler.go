package common

import (
	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/core"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler carries what every attendance endpoint needs.
type Handler struct {
	Dm                 *core.DatabaseManager
	Reconciler         *attendance.Reconciler
	LegacyWorkbookPath string
}

func (h *Handler) GetDB(c *gin.Context) *gorm.DB {
	return h.Dm.DB.WithContext(c.Request.Context())
}
