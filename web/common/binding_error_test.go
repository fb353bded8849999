package common

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type markBody struct {
	Status string   `json:"status" binding:"required,oneof=present absent"`
	InTime string   `json:"in_time" binding:"omitempty,datetime=15:04"`
	Date   DateOnly `json:"date"`
}

func bindError(t *testing.T, body string) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dto markBody
	return FormatBindingError(c.ShouldBindJSON(&dto))
}

func TestFormatBindingError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "Request body is empty"},
		{"syntax", `{"status":}`, "Invalid JSON"},
		{"missing status", `{}`, "Field 'status' is required"},
		{"bad status", `{"status":"late"}`, "Field 'status' must be one of: present absent"},
		{"bad time", `{"status":"present","in_time":"9am"}`, "Field 'in_time' must match the format 15:04"},
		{"bad date", `{"status":"present","date":"04/11/2025"}`, "expected yyyy-MM-dd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, bindError(t, tt.body), tt.want)
		})
	}

	assert.Equal(t, "", FormatBindingError(nil))
}
