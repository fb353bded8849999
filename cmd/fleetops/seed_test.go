package main

import (
	"context"
	"testing"

	"fleetops.com/fleetops/core"
	"fleetops.com/fleetops/core/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseDriversCSV(t *testing.T) {
	data := []byte("Full_Name,Phone,License_Number\nJohn Smith,0400 000 000,\n,,\nMary Jones,,QLD-123\n")

	drivers, err := parseDriversCSV(data)
	require.NoError(t, err)
	require.Len(t, drivers, 2)
	assert.Equal(t, "John Smith", drivers[0].FullName)
	assert.Equal(t, "0400 000 000", *drivers[0].Phone)
	assert.Nil(t, drivers[0].LicenseNumber)
	assert.Equal(t, "QLD-123", *drivers[1].LicenseNumber)

	_, err = parseDriversCSV([]byte("name\nJohn\n"))
	assert.ErrorContains(t, err, "full_name")
}

func TestSeedDriversSkipsKnownNames(t *testing.T) {
	dm, err := core.New(core.DialectSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", 1, core.LogLevelSilent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dm.Close() })
	ctx := context.Background()
	require.NoError(t, dm.Exec(ctx, core.Migrate))

	seed := func(drivers []models.Driver) int {
		var created int
		require.NoError(t, dm.Transaction(ctx, func(tx *gorm.DB) error {
			var err error
			created, err = seedDrivers(tx, drivers)
			return err
		}))
		return created
	}

	assert.Equal(t, 2, seed([]models.Driver{{FullName: "John Smith"}, {FullName: "Mary Jones"}}))
	assert.Equal(t, 1, seed([]models.Driver{{FullName: "  john   SMITH "}, {FullName: "Ali Khan"}}))

	drivers, err := models.ListDrivers(dm.DB, false)
	require.NoError(t, err)
	assert.Len(t, drivers, 3)
}
