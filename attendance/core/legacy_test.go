package core

import (
	"path/filepath"
	"testing"

	"fleetops.com/fleetops/attendance/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLegacy(t *testing.T) (*LegacyWorkbook, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "register.xlsx")
	writeWorkbook(t, path, legacyRows)
	return &LegacyWorkbook{Path: path, Now: clock}, path
}

func TestLegacySyncWritesOnlyTargetCell(t *testing.T) {
	legacy, path := newLegacy(t)
	before := readSheet(t, path, "Sheet1")

	err := legacy.Sync(SyncEntry{DriverName: "suresh singh", Date: date(2025, 11, 2), Status: model.StatusPresent})
	require.NoError(t, err)

	after := readSheet(t, path, "Sheet1")
	// Suresh is on the fifth row, day 2 in the fourth column.
	assert.Equal(t, "P", cellAt(after, 4, 3))

	rowCount := max(len(before), len(after))
	for r := 0; r < rowCount; r++ {
		cols := 0
		if r < len(before) {
			cols = len(before[r])
		}
		if r < len(after) && len(after[r]) > cols {
			cols = len(after[r])
		}
		for c := 0; c < cols; c++ {
			if r == 4 && c == 3 {
				continue
			}
			assert.Equal(t, cellAt(before, r, c), cellAt(after, r, c), "cell %d,%d", r, c)
		}
	}

	summary := readSheet(t, path, "Summary")
	assert.Equal(t, "kept as is", cellAt(summary, 0, 0))
}

func TestLegacySyncOverwritesExistingMark(t *testing.T) {
	legacy, path := newLegacy(t)

	require.NoError(t, legacy.Sync(
		SyncEntry{DriverName: "Ramesh Kumar", Date: date(2025, 11, 1), Status: model.StatusAbsent},
		SyncEntry{DriverName: "Ramesh Kumar", Date: date(2025, 11, 3), Status: model.StatusPresent},
	))

	rows := readSheet(t, path, "Sheet1")
	assert.Equal(t, "A", cellAt(rows, 3, 2))
	assert.Equal(t, "P", cellAt(rows, 3, 4))
}

func TestLegacySyncFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		legacy := &LegacyWorkbook{Path: filepath.Join(t.TempDir(), "missing.xlsx"), Now: clock}
		err := legacy.Sync(SyncEntry{DriverName: "Ramesh Kumar", Date: date(2025, 11, 1), Status: model.StatusPresent})
		assert.ErrorIs(t, err, ErrSynchronization)
	})

	t.Run("month mismatch leaves the file alone", func(t *testing.T) {
		legacy, path := newLegacy(t)
		before := readSheet(t, path, "Sheet1")
		err := legacy.Sync(SyncEntry{DriverName: "Ramesh Kumar", Date: date(2025, 12, 1), Status: model.StatusAbsent})
		assert.ErrorIs(t, err, ErrSynchronization)
		assert.Equal(t, before, readSheet(t, path, "Sheet1"))
	})

	t.Run("month mismatch with no year in the header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "register.xlsx")
		rows := append([][]any{{"S.NO", "NAME", "November"}}, legacyRows[1:]...)
		writeWorkbook(t, path, rows)
		legacy := &LegacyWorkbook{Path: path, Now: clock}
		before := readSheet(t, path, "Sheet1")

		err := legacy.Sync(SyncEntry{DriverName: "Ramesh Kumar", Date: date(2025, 12, 2), Status: model.StatusPresent})
		assert.ErrorIs(t, err, ErrSynchronization)
		assert.Contains(t, err.Error(), "workbook covers November")
		assert.Equal(t, before, readSheet(t, path, "Sheet1"))

		// Without a year in the header any year's November is accepted.
		require.NoError(t, legacy.Sync(SyncEntry{DriverName: "Ramesh Kumar", Date: date(2026, 11, 2), Status: model.StatusPresent}))
		assert.Equal(t, "P", cellAt(readSheet(t, path, "Sheet1"), 3, 3))
	})

	t.Run("unknown driver does not block the others", func(t *testing.T) {
		legacy, path := newLegacy(t)
		err := legacy.Sync(
			SyncEntry{DriverName: "Ghost Driver", Date: date(2025, 11, 1), Status: model.StatusPresent},
			SyncEntry{DriverName: "Suresh Singh", Date: date(2025, 11, 1), Status: model.StatusAbsent},
		)
		assert.ErrorIs(t, err, ErrSynchronization)
		assert.Contains(t, err.Error(), "Ghost Driver")
		assert.Equal(t, "A", cellAt(readSheet(t, path, "Sheet1"), 4, 2))
	})

	t.Run("missing day column", func(t *testing.T) {
		legacy, _ := newLegacy(t)
		err := legacy.Sync(SyncEntry{DriverName: "Ramesh Kumar", Date: date(2025, 11, 20), Status: model.StatusPresent})
		assert.ErrorIs(t, err, ErrSynchronization)
	})
}
