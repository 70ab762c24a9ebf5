package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-maintenance/internal/app"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/csvio"
	"github.com/ukydev/fleet-maintenance/internal/db"
)

// sqliteOpener opens the same on-disk store on every call, like separate
// fleetctl invocations would.
func sqliteOpener(t *testing.T) opener {
	t.Helper()
	cfg := config.Config{Store: db.Options{
		Backend:    db.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "fleet.db"),
	}}
	return func(ctx context.Context) (*app.App, error) {
		return app.Open(ctx, cfg)
	}
}

func run(t *testing.T, open opener, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTemplate(t *testing.T) {
	out, err := run(t, nil, "", "template")
	require.NoError(t, err)
	assert.Equal(t, string(csvio.ProduceTemplate()), out)
}

func TestExportImportRoundTrip(t *testing.T) {
	open := sqliteOpener(t)
	file := filepath.Join(t.TempDir(), "fleet.csv")

	_, err := run(t, open, "", "export", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Len(t, csvio.Parse(data), 3)

	// Every row duplicates an existing plate.
	out, err := run(t, open, "", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 of 3 items")

	extra := filepath.Join(t.TempDir(), "extra.csv")
	require.NoError(t, os.WriteFile(extra, []byte(strings.Join(csvio.Header, ",")+
		"\nVEHICLE,Isuzu,D-Max,2021,NEW-77,1000,ACTIVE,,,,,,\nbad,row\n"), 0o644))
	out, err = run(t, open, "", "import", extra)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 1 items (1 rows skipped)")

	out, err = run(t, open, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "NEW-77")
}

func TestImport_NoRows(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(file, csvio.ProduceTemplate(), 0o644))

	_, err := run(t, sqliteOpener(t), "", "import", file)
	assert.ErrorIs(t, err, csvio.ErrNoRows)
}

func TestRemindersAndDashboard(t *testing.T) {
	open := sqliteOpener(t)

	out, err := run(t, open, "", "reminders")
	require.NoError(t, err)
	assert.Contains(t, out, "DXB-10293")
	assert.Contains(t, out, "45,000 km")

	out, err = run(t, open, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Vehicles:     2")
	assert.Contains(t, out, "Hydraulic leak fix")
}

func TestClear(t *testing.T) {
	open := sqliteOpener(t)

	out, err := run(t, open, "n\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "[y/N]")
	assert.Contains(t, out, "Nothing changed.")

	out, err = run(t, open, "y\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared.")

	out, err = run(t, open, "", "export")
	require.NoError(t, err)
	assert.Equal(t, string(csvio.ProduceTemplate()), out)
}

func TestClear_Yes(t *testing.T) {
	out, err := run(t, sqliteOpener(t), "", "clear", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Contains(t, out, "All data cleared.")
}
