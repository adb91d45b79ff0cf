package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/migrations"
	"github.com/pkordes/trip-planner/backend/testutil"
)

// schemaTables lists every table the migrations are expected to own.
var schemaTables = []string{"trips", "participants", "activities", "links"}

// TestMigrations walks the full goose round-trip against a real database:
// reset, up, check tables and the schedule constraint, down, check tables gone.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// Other packages' TestMain may already have migrated this shared database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err, "migrations.Up")
	assert.Equal(t, len(schemaTables), applied, "one migration per table")

	for _, table := range schemaTables {
		assert.True(t, tableExists(t, db, table), "expected table %q to exist", table)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO trips (destination, starts_at, ends_at) VALUES ('Nowhere', now(), now() - interval '1 day')`)
	assert.Error(t, err, "trips_ends_after_starts must reject an inverted schedule")

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	for _, table := range schemaTables {
		assert.False(t, tableExists(t, db, table), "expected table %q to be dropped", table)
	}
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists), "check table %q", table)
	return exists
}
