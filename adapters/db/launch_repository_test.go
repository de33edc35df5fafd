package db

import (
	"context"
	"testing"

	"launchdash/domain/core"
	"launchdash/domain/launch"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	// one connection, so every statement sees the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLaunchRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewLaunchRepository(openSQLite(t), "launches")
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	records := []launch.Record{
		{Site: "CCAFS LC-40", PayloadKg: 0, Outcome: launch.OutcomeFailure, FlightNumber: 1, BoosterVersion: "F9 v1.0  B0003", BoosterCategory: "v1.0"},
		{Site: "KSC LC-39A", PayloadKg: 2490, Outcome: launch.OutcomeSuccess, FlightNumber: 20},
		{Site: "VAFB SLC-4E", PayloadKg: 500, Outcome: launch.OutcomeFailure, FlightNumber: 7},
	}
	require.NoError(t, repo.Insert(ctx, records))

	ds, err := repo.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, 3, ds.Len())
	got := ds.Records()
	assert.Equal(t, records[0], got[0])
	assert.Equal(t, records[2], got[1])
	assert.Equal(t, records[1], got[2])
	assert.Equal(t, "sqlite:launches", ds.Source())
}

func TestLaunchRepositoryKeepsInsertionOrderWithoutFlightNumbers(t *testing.T) {
	ctx := context.Background()
	repo, err := NewLaunchRepository(openSQLite(t), "launches")
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	first := []launch.Record{
		{Site: "VAFB SLC-4E", PayloadKg: 500, Outcome: launch.OutcomeFailure},
		{Site: "CCAFS LC-40", PayloadKg: 2000, Outcome: launch.OutcomeSuccess},
	}
	second := []launch.Record{
		{Site: "KSC LC-39A", PayloadKg: 3000, Outcome: launch.OutcomeSuccess},
		{Site: "CCAFS LC-40", PayloadKg: 100, Outcome: launch.OutcomeFailure},
	}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	a, err := repo.Load(ctx)
	require.NoError(t, err)
	b, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, append(append([]launch.Record{}, first...), second...), a.Records())
	assert.Equal(t, []string{"VAFB SLC-4E", "CCAFS LC-40", "KSC LC-39A"}, a.Sites())
	assert.True(t, a.Fingerprint().Equals(b.Fingerprint()))
}

func TestLaunchRepositoryEmptyTable(t *testing.T) {
	ctx := context.Background()
	repo, err := NewLaunchRepository(openSQLite(t), "launches")
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestLaunchRepositoryRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	repo, err := NewLaunchRepository(openSQLite(t), "launches")
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	err = repo.Insert(ctx, []launch.Record{
		{Site: "A", PayloadKg: 10, Outcome: launch.OutcomeSuccess},
		{Site: "A", PayloadKg: -10, Outcome: launch.OutcomeSuccess},
	})
	assert.ErrorIs(t, err, core.ErrInvalidPayload)

	// the transaction was rolled back
	var count int
	require.NoError(t, repo.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM launches"))
	assert.Equal(t, 0, count)
}

func TestLaunchRepositoryLoadRejectsBadOutcome(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	repo, err := NewLaunchRepository(db, "launches")
	require.NoError(t, err)
	require.NoError(t, repo.EnsureSchema(ctx))

	_, err = db.ExecContext(ctx, "INSERT INTO launches (launch_site, payload_mass_kg, outcome) VALUES ('A', 1, 3)")
	require.NoError(t, err)

	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, core.ErrInvalidOutcome)
}

func TestNewLaunchRepositoryValidatesTable(t *testing.T) {
	db := openSQLite(t)
	for _, name := range []string{"", "launches; DROP TABLE x", "1abc", "a-b"} {
		_, err := NewLaunchRepository(db, name)
		assert.Error(t, err, "table %q", name)
	}
	_, err := NewLaunchRepository(db, "spacex_launches")
	assert.NoError(t, err)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), "oracle", "dsn")
	assert.Error(t, err)
	assert.True(t, IsSupportedDriver(DriverPostgres))
	assert.True(t, IsSupportedDriver(DriverMySQL))
	assert.False(t, IsSupportedDriver("oracle"))
}
