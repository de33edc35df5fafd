package migration

import (
	"context"
	"fmt"

	"launchdash/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner creates the launch records table and its indexes
type MigrationRunner struct {
	version string
	table   string
}

// NewRunner creates a migration runner for the given launch table. The name
// is interpolated into DDL, so callers validate it first.
func NewRunner(table string) *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		table:   table,
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all migrations in order; each step is idempotent
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createLaunchTable(ctx, db); err != nil {
		return errors.Wrapf(err, "failed to create %s table", r.table)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrapf(err, "failed to create %s indexes", r.table)
	}

	return nil
}

func (r *MigrationRunner) createLaunchTable(ctx context.Context, db *sqlx.DB) error {
	// MySQL has no CREATE INDEX IF NOT EXISTS, so its index lives in the table definition
	siteIndex := ""
	if db.DriverName() == "mysql" {
		siteIndex = fmt.Sprintf(",\n\t\t\tINDEX %s (launch_site)", r.indexName("site"))
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id %s,
			launch_site VARCHAR(64) NOT NULL,
			payload_mass_kg DOUBLE PRECISION NOT NULL,
			outcome INTEGER NOT NULL,
			flight_number INTEGER,
			booster_version VARCHAR(64),
			booster_version_category VARCHAR(32)%s
		)
	`, r.table, surrogateKey(db.DriverName()), siteIndex))
	return err
}

// surrogateKey returns the auto-increment key column type; it breaks ties
// between rows with no flight number so loads keep insertion order
func surrogateKey(driver string) string {
	switch driver {
	case "postgres":
		return "BIGSERIAL PRIMARY KEY"
	case "mysql":
		return "BIGINT AUTO_INCREMENT PRIMARY KEY"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	if db.DriverName() == "mysql" {
		return nil
	}

	_, err := db.ExecContext(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s ON %s (launch_site)`, r.indexName("site"), r.table))
	return err
}

func (r *MigrationRunner) indexName(column string) string {
	return fmt.Sprintf("idx_%s_%s", r.table, column)
}
