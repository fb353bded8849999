package core

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	dbcore "fleetops.com/fleetops/core"
	"fleetops.com/fleetops/core/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	dm, err := dbcore.New(dbcore.DialectSQLite, dsn, 1, dbcore.LogLevelSilent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dm.Close() })
	require.NoError(t, dbcore.Migrate(dm.DB))
	return dm.DB
}

func seedDriver(t *testing.T, db *gorm.DB, name string, status string) models.Driver {
	t.Helper()
	d := models.Driver{FullName: name, EmploymentStatus: status}
	require.NoError(t, db.Create(&d).Error)
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clock() time.Time {
	return time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)
}

// legacyRows is a November 2025 register with days 1 to 3.
var legacyRows = [][]any{
	{"S.NO", "NAME", "November,2025"},
	{"", "", 1, 2, 3},
	{"", "OFFICE"},
	{1, "Ramesh Kumar", "P", "", "A"},
	{2, "Suresh  Singh", "", "", ""},
}

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	_, err := f.NewSheet("Summary")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Summary", "A1", "kept as is"))
	require.NoError(t, f.SaveAs(path))
}

func workbookData(t *testing.T, rows [][]any) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.xlsx")
	writeWorkbook(t, path, rows)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func readSheet(t *testing.T, path, sheetName string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func cellAt(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

type recordingNotifier struct {
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(message string) error {
	n.infos = append(n.infos, message)
	return nil
}

func (n *recordingNotifier) Error(message string) error {
	n.errors = append(n.errors, message)
	return nil
}
