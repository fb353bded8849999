package handlers

import (
	attendance "fleetops.com/fleetops/attendance/core"
	"fleetops.com/fleetops/attendance/model"
	web "fleetops.com/fleetops/web/common"
)

type MarkDTO struct {
	DriverID string       `json:"driver_id" binding:"required"`
	Date     web.DateOnly `json:"date"`
	Status   string       `json:"status" binding:"required,oneof=present absent"`
	InTime   *string      `json:"in_time" binding:"omitempty,datetime=15:04"`
	OutTime  *string      `json:"out_time" binding:"omitempty,datetime=15:04"`
	Notes    *string      `json:"notes"`
}

func (d MarkDTO) toRequest() attendance.MarkRequest {
	return attendance.MarkRequest{
		DriverID: d.DriverID,
		Date:     d.Date.Time,
		Status:   model.Status(d.Status),
		InTime:   d.InTime,
		OutTime:  d.OutTime,
		Notes:    d.Notes,
	}
}

type BulkRecordDTO struct {
	DriverID   string       `json:"driver_id" binding:"required_without=DriverName"`
	DriverName string       `json:"driver_name"`
	Date       web.DateOnly `json:"date"`
	Status     string       `json:"status" binding:"required,oneof=present absent"`
	InTime     *string      `json:"in_time" binding:"omitempty,datetime=15:04"`
	OutTime    *string      `json:"out_time" binding:"omitempty,datetime=15:04"`
	Notes      *string      `json:"notes"`
}

type BulkDTO struct {
	Records []BulkRecordDTO `json:"records" binding:"required,dive"`
}

func (d BulkDTO) toRecords() []attendance.BulkRecord {
	records := make([]attendance.BulkRecord, 0, len(d.Records))
	for _, r := range d.Records {
		records = append(records, attendance.BulkRecord{
			DriverID:   r.DriverID,
			DriverName: r.DriverName,
			Date:       r.Date.Time,
			Status:     model.Status(r.Status),
			InTime:     r.InTime,
			OutTime:    r.OutTime,
			Notes:      r.Notes,
		})
	}
	return records
}

type BulkResponseDTO struct {
	Message  string   `json:"message"`
	Count    int      `json:"count"`
	Warnings []string `json:"warnings"`
}

type ImportResponseDTO struct {
	Message  string   `json:"message"`
	Count    int      `json:"count"`
	Format   string   `json:"format"`
	Warnings []string `json:"warnings"`
}

type ImportFailureDTO struct {
	Error        string   `json:"error"`
	Errors       []string `json:"errors"`
	SuccessCount int      `json:"successCount"`
}
