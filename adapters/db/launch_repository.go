package db

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"launchdash/domain/core"
	"launchdash/domain/launch"
	"launchdash/internal/migration"
	"launchdash/ports"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsSupportedDriver reports whether name is one of the registered drivers
func IsSupportedDriver(name string) bool {
	switch name {
	case DriverPostgres, DriverMySQL, DriverSQLite:
		return true
	}
	return false
}

// LaunchRepository reads and writes launch records in a SQL table
type LaunchRepository struct {
	db    *sqlx.DB
	table string
}

var _ ports.LaunchSource = (*LaunchRepository)(nil)

// Connect opens a database with the given driver and verifies it answers
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	if !IsSupportedDriver(driver) {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// NewLaunchRepository creates a repository over table
func NewLaunchRepository(db *sqlx.DB, table string) (*LaunchRepository, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	return &LaunchRepository{db: db, table: table}, nil
}

// Describe implements ports.LaunchSource
func (r *LaunchRepository) Describe() string {
	return fmt.Sprintf("%s:%s", r.db.DriverName(), r.table)
}

// EnsureSchema creates the launch table and its indexes when missing
func (r *LaunchRepository) EnsureSchema(ctx context.Context) error {
	return migration.NewRunner(r.table).Run(ctx, r.db)
}

// Insert writes records in one transaction
func (r *LaunchRepository) Insert(ctx context.Context, records []launch.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT INTO %s (
		launch_site, payload_mass_kg, outcome, flight_number, booster_version, booster_version_category
	) VALUES (
		:launch_site, :payload_mass_kg, :outcome, :flight_number, :booster_version, :booster_version_category
	)`, r.table)

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := tx.NamedExecContext(ctx, query, rec); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit launch records: %w", err)
	}
	return nil
}

// Load implements ports.LaunchSource. Rows come back ordered by flight
// number, which is the order the file exports use; rows without one keep
// insertion order.
func (r *LaunchRepository) Load(ctx context.Context) (*launch.Dataset, error) {
	query := fmt.Sprintf(`SELECT
		launch_site, payload_mass_kg, outcome,
		COALESCE(flight_number, 0) AS flight_number,
		COALESCE(booster_version, '') AS booster_version,
		COALESCE(booster_version_category, '') AS booster_version_category
	FROM %s ORDER BY COALESCE(flight_number, 0), id`, r.table)

	var records []launch.Record
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load launches from %s: %w", r.table, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", r.table, core.ErrEmptyDataset)
	}

	ds, err := launch.NewDataset(r.Describe(), records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.table, err)
	}

	log.Printf("[LaunchRepository] Loaded %d launch records from %s (dataset %s)", ds.Len(), r.Describe(), ds.ID().Short())
	return ds, nil
}
