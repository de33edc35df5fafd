package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"launchdash/adapters/db"
	"launchdash/adapters/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
		[]byte("Launch Site,Payload Mass (kg),class\nA,100,1\nB,200,0\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "more"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "more", "b.CSV"),
		[]byte("Launch Site,Payload Mass (kg),class\nC,300,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.csv"),
		[]byte("Site,Payload\nA,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	files, err := findLaunchFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	conn, err := db.Connect(ctx, db.DriverSQLite, filepath.Join(t.TempDir(), "launches.db"))
	require.NoError(t, err)
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	repo, err := db.NewLaunchRepository(conn, "launches")
	require.NoError(t, err)

	migrated, skipped, err := migrateFiles(ctx, repo, files, "Sheet1", excel.DefaultColumnMapping())
	require.NoError(t, err)
	assert.Equal(t, 3, migrated)
	assert.Equal(t, 1, skipped)

	ds, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.ElementsMatch(t, []string{"A", "B", "C"}, ds.Sites())
}
