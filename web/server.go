package web

import (
	"net/http"

	attendanceweb "fleetops.com/fleetops/attendance/web/common"
	"fleetops.com/fleetops/attendance/web/handlers"
	"fleetops.com/fleetops/security"
	"fleetops.com/fleetops/web/common"
	"fleetops.com/fleetops/web/middlewares"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the public ping route and the authenticated attendance API.
func NewRouter(h attendanceweb.Handler, jwtSecret []byte) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			c.JSON(http.StatusOK, common.NewSuccessResponse(middlewares.Claims(c)))
		})
		handlers.Register(protected, h, middlewares.RequireRoles(security.RoleAdmin, security.RoleSiteManager))
	}

	return r
}
