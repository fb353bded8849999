package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleetops.com/fleetops/attendance/model"
	"fleetops.com/fleetops/attendance/sheet"
	"fleetops.com/fleetops/core/models"
	"fleetops.com/fleetops/utils"
	"gorm.io/gorm"
)

// Notifier receives import outcomes and mirror failures.
type Notifier interface {
	Info(message string) error
	Error(message string) error
}

// Reconciler runs the three write paths: single mark, bulk mark and
// spreadsheet import. The ledger write always commits before the legacy
// workbook is touched, and mirror failures never reach the caller.
type Reconciler struct {
	db       *gorm.DB
	legacy   Synchronizer
	audit    *AuditLogger
	notifier Notifier
	now      func() time.Time
}

type Option func(*Reconciler)

func WithSynchronizer(s Synchronizer) Option {
	return func(r *Reconciler) { r.legacy = s }
}

func WithNotifier(n Notifier) Option {
	return func(r *Reconciler) { r.notifier = n }
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

func NewReconciler(db *gorm.DB, opts ...Option) *Reconciler {
	r := &Reconciler{db: db, audit: NewAuditLogger(db), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type MarkRequest struct {
	DriverID string
	Date     time.Time
	Status   model.Status
	Notes    *string
	InTime   *string
	OutTime  *string
}

// Mark records one driver's status for one day and returns the stored row.
func (r *Reconciler) Mark(ctx context.Context, userID *string, req MarkRequest) (*model.AttendanceRecord, error) {
	entry := Entry{
		DriverID: req.DriverID,
		Date:     utils.DateOnly(req.Date),
		Status:   req.Status,
		Notes:    req.Notes,
		InTime:   req.InTime,
		OutTime:  req.OutTime,
	}
	if err := entry.validate(); err != nil {
		return nil, err
	}

	var (
		record *model.AttendanceRecord
		driver *models.Driver
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		driver, err = models.FindDriverByID(tx, req.DriverID)
		if err != nil {
			return storageError("load driver", err)
		}
		if driver == nil {
			return fmt.Errorf("%w: %s", ErrDriverNotFound, req.DriverID)
		}
		record, err = UpsertOne(tx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.synchronize(SyncEntry{DriverName: driver.FullName, Date: record.Date, Status: record.Status})
	r.audit.Record(ctx, userID, ActionMark, map[string]any{
		"driver_id": record.DriverID,
		"date":      utils.FormatDate(record.Date),
		"status":    record.Status,
	})
	return record, nil
}

// BulkRecord identifies its driver by id or, failing that, by name.
type BulkRecord struct {
	DriverID   string
	DriverName string
	Date       time.Time
	Status     model.Status
	Notes      *string
	InTime     *string
	OutTime    *string
}

type BulkResult struct {
	Count    int
	Warnings []string
}

// BulkMark applies records as one atomic batch. Records whose driver is
// unknown are skipped with a warning; an invalid status or date rejects
// the whole request.
func (r *Reconciler) BulkMark(ctx context.Context, userID *string, records []BulkRecord) (*BulkResult, error) {
	db := r.db.WithContext(ctx)
	roster, err := LoadRoster(db)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	entries := make([]Entry, 0, len(records))
	synced := make([]SyncEntry, 0, len(records))
	for i, rec := range records {
		driver, err := resolveBulkDriver(roster, rec)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}

		entry := Entry{
			DriverID: driver.ID,
			Date:     utils.DateOnly(rec.Date),
			Status:   rec.Status,
			Notes:    rec.Notes,
			InTime:   rec.InTime,
			OutTime:  rec.OutTime,
		}
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		entries = append(entries, entry)
		synced = append(synced, SyncEntry{DriverName: driver.FullName, Date: entry.Date, Status: entry.Status})
	}

	count, err := UpsertBatch(db, entries)
	if err != nil {
		return nil, err
	}
	result.Count = count

	r.synchronize(synced...)
	r.audit.Record(ctx, userID, ActionBulk, map[string]any{
		"count":    count,
		"skipped":  len(records) - count,
		"warnings": result.Warnings,
	})
	return result, nil
}

func resolveBulkDriver(roster *Roster, rec BulkRecord) (models.Driver, error) {
	if rec.DriverID != "" {
		if d, ok := roster.Driver(rec.DriverID); ok {
			return d, nil
		}
		return models.Driver{}, fmt.Errorf("%w: %s", ErrDriverNotFound, rec.DriverID)
	}
	id, err := roster.Resolve(rec.DriverName)
	if err != nil {
		return models.Driver{}, err
	}
	d, _ := roster.Driver(id)
	return d, nil
}

type ImportResult struct {
	Format   sheet.Format
	Count    int
	Warnings []string
}

// Import reads an uploaded spreadsheet and applies it only when every row
// parsed and resolved. List sheets fail on any row error. Grid sheets skip
// drivers missing from the roster with a warning. A rejection comes back
// as *ImportError and persists nothing.
func (r *Reconciler) Import(ctx context.Context, userID *string, filename string, data []byte) (*ImportResult, error) {
	rows, err := sheet.ReadRows(data, filename)
	if err != nil {
		return nil, err
	}

	parsed, err := sheet.Parse(rows, r.now)
	if err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	roster, err := LoadRoster(db)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Format: parsed.Format, Warnings: parsed.Warnings}
	rowErrors := append([]sheet.RowError(nil), parsed.Errors...)
	entries := make([]Entry, 0, len(parsed.Entries))
	synced := make([]SyncEntry, 0, len(parsed.Entries))
	skippedRows := map[int]bool{}

	for _, pe := range parsed.Entries {
		id, err := roster.Resolve(pe.DriverName)
		if err != nil {
			if parsed.Format == sheet.GridFormat {
				if !skippedRows[pe.Row] {
					skippedRows[pe.Row] = true
					result.Warnings = append(result.Warnings, fmt.Sprintf("%s: driver %q not found, row skipped", pe.RowRef, pe.DriverName))
				}
				continue
			}
			rowErrors = append(rowErrors, sheet.RowError{Row: pe.Row, Message: fmt.Sprintf("driver %q not found", pe.DriverName)})
			continue
		}

		driver, _ := roster.Driver(id)
		entries = append(entries, Entry{DriverID: id, Date: pe.Date, Status: pe.Status, Notes: pe.Notes})
		synced = append(synced, SyncEntry{DriverName: driver.FullName, Date: pe.Date, Status: pe.Status})
	}

	if len(rowErrors) > 0 {
		sort.SliceStable(rowErrors, func(i, j int) bool { return rowErrors[i].Row < rowErrors[j].Row })
		importErr := &ImportError{
			Message:      "Import failed due to validation errors",
			Errors:       utils.Map(rowErrors, func(e sheet.RowError) string { return e.Error() }),
			SuccessCount: len(entries),
		}
		r.notify(false, fmt.Sprintf("Attendance import of %s rejected: %d row error(s)", filename, len(rowErrors)))
		return nil, importErr
	}
	if len(entries) == 0 {
		return nil, &ImportError{Message: "No attendance records found in file"}
	}

	count, err := UpsertBatch(db, entries)
	if err != nil {
		return nil, err
	}
	result.Count = count

	r.synchronize(synced...)
	r.audit.Record(ctx, userID, ActionImport, map[string]any{
		"file":     filename,
		"format":   parsed.Format.String(),
		"count":    count,
		"warnings": len(result.Warnings),
	})
	r.notify(true, fmt.Sprintf("Attendance import of %s: %d record(s) applied (%s format, %d warning(s))",
		filename, count, parsed.Format, len(result.Warnings)))
	return result, nil
}

// Delete removes one ledger row. The legacy workbook is left alone.
func (r *Reconciler) Delete(ctx context.Context, userID *string, id string) error {
	if err := DeleteRecord(r.db.WithContext(ctx), id); err != nil {
		return err
	}
	r.audit.Record(ctx, userID, ActionDelete, map[string]any{"id": id})
	return nil
}

func (r *Reconciler) List(ctx context.Context, filter AttendanceFilter) ([]AttendanceRow, error) {
	return ListAttendance(r.db.WithContext(ctx), filter)
}

// synchronize mirrors committed entries. Errors stop here.
func (r *Reconciler) synchronize(entries ...SyncEntry) {
	if r.legacy == nil || len(entries) == 0 {
		return
	}
	if err := r.legacy.Sync(entries...); err != nil {
		fmt.Printf("[WARN] legacy sync: %v\n", err)
		r.notify(false, fmt.Sprintf("Legacy attendance workbook not updated: %v", err))
	}
}

func (r *Reconciler) notify(ok bool, message string) {
	if r.notifier == nil {
		return
	}
	send := r.notifier.Error
	if ok {
		send = r.notifier.Info
	}
	if err := send(message); err != nil {
		fmt.Printf("[WARN] notify: %v\n", err)
	}
}
