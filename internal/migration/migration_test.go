package migration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestRunCreatesTableAndIndex(t *testing.T) {
	ctx := context.Background()
	db, err := sqlx.ConnectContext(ctx, "sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	runner := NewRunner("launches")
	assert.Equal(t, "1.0.0", runner.Version())

	require.NoError(t, runner.Run(ctx, db))
	// a second run is a no-op
	require.NoError(t, runner.Run(ctx, db))

	var indexes []string
	require.NoError(t, db.SelectContext(ctx, &indexes,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = 'launches'`))
	assert.Contains(t, indexes, "idx_launches_site")

	for i := 0; i < 2; i++ {
		_, err = db.ExecContext(ctx, `INSERT INTO launches (launch_site, payload_mass_kg, outcome) VALUES ('A', 1.5, 1)`)
		require.NoError(t, err)
	}

	var ids []int64
	require.NoError(t, db.SelectContext(ctx, &ids, `SELECT id FROM launches ORDER BY id`))
	assert.Equal(t, []int64{1, 2}, ids)
}

func TestSurrogateKey(t *testing.T) {
	assert.Equal(t, "BIGSERIAL PRIMARY KEY", surrogateKey("postgres"))
	assert.Equal(t, "BIGINT AUTO_INCREMENT PRIMARY KEY", surrogateKey("mysql"))
	assert.Equal(t, "INTEGER PRIMARY KEY AUTOINCREMENT", surrogateKey("sqlite"))
}
