package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/attendance/sheet"
	common "fleetops.com/fleetops/attendance/web/common"
	"fleetops.com/fleetops/core/models"
	web "fleetops.com/fleetops/web/common"
	"fleetops.com/fleetops/web/middlewares"
	"github.com/gin-gonic/gin"
)

// maxUploadSize caps spreadsheet uploads (10 MB).
const maxUploadSize = 10 << 20

type Endpoint struct {
	base common.Handler
}

// Register mounts the attendance routes. guard protects every route that
// writes to the ledger.
func Register(r *gin.RouterGroup, h common.Handler, guard gin.HandlerFunc) {
	endpoint := &Endpoint{base: h}
	r.GET("/drivers", endpoint.Drivers)
	r.GET("/attendance", endpoint.List)
	r.GET("/attendance/export", endpoint.Export)
	r.POST("/attendance", guard, endpoint.Mark)
	r.POST("/attendance/bulk", guard, endpoint.Bulk)
	r.POST("/attendance/import", guard, endpoint.Import)
	r.DELETE("/attendance/:id", guard, endpoint.Delete)
}

// errorStatus maps core errors to HTTP codes. Storage failures are not
// described to the client.
func errorStatus(err error) (int, string) {
	var importErr *attendance.ImportError
	switch {
	case errors.As(err, &importErr):
		return http.StatusBadRequest, importErr.Message
	case errors.Is(err, attendance.ErrDriverNotFound), errors.Is(err, attendance.ErrRecordNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, sheet.ErrEmptyWorkbook),
		errors.Is(err, sheet.ErrUnsupportedFile),
		errors.Is(err, sheet.ErrNoHeaderRow):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "Internal server error"
}

func respondError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		fmt.Printf("[ERROR] %s %s: %v\n", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, web.NewErrorResponse(message))
}

func (ep *Endpoint) List(c *gin.Context) {
	var filter attendance.AttendanceFilter

	if s := c.Query("date"); s != "" {
		date, err := web.ParseDateOnly(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
			return
		}
		filter.Date = &date.Time
	}
	filter.DriverID = c.Query("driver_id")
	if s := c.Query("include_all_drivers"); s != "" {
		include, err := strconv.ParseBool(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("include_all_drivers must be true or false"))
			return
		}
		filter.IncludeAllDrivers = include
	}

	rows, err := ep.base.Reconciler.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(rows, int64(len(rows))))
}

// Drivers lists the roster the attendance screens pick from.
func (ep *Endpoint) Drivers(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"
	drivers, err := models.ListDrivers(ep.base.GetDB(c), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(drivers, int64(len(drivers))))
}

func (ep *Endpoint) Mark(c *gin.Context) {
	var dto MarkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	record, err := ep.base.Reconciler.Mark(c.Request.Context(), middlewares.UserID(c), dto.toRequest())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(record))
}

func (ep *Endpoint) Bulk(c *gin.Context) {
	var dto BulkDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	result, err := ep.base.Reconciler.BulkMark(c.Request.Context(), middlewares.UserID(c), dto.toRecords())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BulkResponseDTO{
		Message:  "Bulk attendance uploaded successfully",
		Count:    result.Count,
		Warnings: nonNil(result.Warnings),
	})
}

func (ep *Endpoint) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("No file uploaded"))
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, web.NewErrorResponse("File is too large"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := ep.base.Reconciler.Import(c.Request.Context(), middlewares.UserID(c), header.Filename, data)
	if err != nil {
		var importErr *attendance.ImportError
		if errors.As(err, &importErr) {
			c.JSON(http.StatusBadRequest, ImportFailureDTO{
				Error:        importErr.Message,
				Errors:       nonNil(importErr.Errors),
				SuccessCount: importErr.SuccessCount,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResponseDTO{
		Message:  fmt.Sprintf("Successfully imported %d attendance records", result.Count),
		Count:    result.Count,
		Format:   result.Format.String(),
		Warnings: nonNil(result.Warnings),
	})
}

// Export streams the legacy workbook as it is on disk.
func (ep *Endpoint) Export(c *gin.Context) {
	path := ep.base.LegacyWorkbookPath
	if path == "" {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Legacy workbook is not configured"))
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Legacy workbook not found"))
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

func (ep *Endpoint) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := ep.base.Reconciler.Delete(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"id": id}))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
