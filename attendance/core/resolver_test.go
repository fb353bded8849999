package core

import (
	"testing"

	"fleetops.com/fleetops/core/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterResolve(t *testing.T) {
	roster := NewRoster([]models.Driver{
		{ID: "d1", FullName: "Ramesh Kumar"},
		{ID: "d2", FullName: "Suresh Singh"},
		{ID: "d3", FullName: "Anil Das"},
		{ID: "d4", FullName: "anil  das"},
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact", "Ramesh Kumar", "d1"},
		{"case and spacing", "  ramesh   KUMAR ", "d1"},
		{"non-breaking space", "Suresh\u00a0Singh", "d2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := roster.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	for _, name := range []string{"Ramesh", "Ramesh Kumar Jr", "", "Anil Das"} {
		_, err := roster.Resolve(name)
		assert.ErrorIs(t, err, ErrDriverNotFound, name)
	}

	d, ok := roster.Driver("d2")
	assert.True(t, ok)
	assert.Equal(t, "Suresh Singh", d.FullName)
	assert.Equal(t, 4, roster.Len())
}

func TestLoadRosterIncludesInactiveDrivers(t *testing.T) {
	db := newTestDB(t)
	seedDriver(t, db, "Ramesh Kumar", "active")
	retired := seedDriver(t, db, "Old Timer", "inactive")

	roster, err := LoadRoster(db)
	require.NoError(t, err)

	id, err := roster.Resolve("old timer")
	require.NoError(t, err)
	assert.Equal(t, retired.ID, id)
}
