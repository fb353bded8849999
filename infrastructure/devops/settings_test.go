package devops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleetops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listenAddr: ":9000"
database:
  dialect: postgres
  dsn: host=db user=fleet
  maxConnections: 4
legacyWorkbookPath: /data/register.xlsx
slack:
  infoChannel: C1
`), 0o600))

	t.Setenv("DSN", "host=override")
	t.Setenv("SLACK_ERROR_CHANNEL", "C2")
	t.Setenv("DB_MAX_CONNECTIONS", "")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", s.ListenAddr)
	assert.Equal(t, "postgres", s.Database.Dialect)
	assert.Equal(t, "host=override", s.Database.DSN)
	assert.Equal(t, 4, s.Database.MaxConnections)
	assert.Equal(t, "warn", s.Database.LogLevel)
	assert.Equal(t, "/data/register.xlsx", s.LegacyWorkbookPath)
	assert.Equal(t, "C1", s.Slack.InfoChannel)
	assert.Equal(t, "C2", s.Slack.ErrorChannel)
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8090", s.ListenAddr)
	assert.Equal(t, 10, s.Database.MaxConnections)
}

func TestLoadSettingsRejectsBadEnv(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "many")
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDBEntries(t *testing.T) {
	entries, err := ParseDBEntries([]byte(`
- name: Fleet
  host: db.internal
  username: app
  password: secret
- name: reporting
  host: pg.internal:6432
  username: ro
  password: pw
  dialect: postgres
`))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	fleet, err := FindDBEntry(entries, "fleet")
	require.NoError(t, err)
	assert.Equal(t, "app:secret@tcp(db.internal:3306)/fleetops?parseTime=true", fleet.GetDSN("fleetops"))

	reporting, err := FindDBEntry(entries, "REPORTING")
	require.NoError(t, err)
	assert.Equal(t, "host=pg.internal port=6432 user=ro password=pw dbname=fleetops sslmode=require", reporting.GetDSN("fleetops"))

	_, err = FindDBEntry(entries, "missing")
	assert.Error(t, err)
}
