package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/verb/internal/domain"
	"github.com/footprint-tools/verb/internal/store"
	"github.com/footprint-tools/verb/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, migrations.Run(db), "failed to run migrations")
	return db
}

// NewTestStore wraps NewTestDB in a history store.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedHistory records entries one minute apart, oldest first, ending at base.
func SeedHistory(t *testing.T, s domain.HistoryStore, base time.Time, entries ...domain.HistoryEntry) []domain.HistoryEntry {
	t.Helper()

	out := make([]domain.HistoryEntry, 0, len(entries))
	for i, e := range entries {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = base.Add(-time.Duration(len(entries)-1-i) * time.Minute)
		}
		recorded, err := s.Record(e)
		require.NoError(t, err, "failed to seed entry: %+v", e)
		out = append(out, recorded)
	}
	return out
}
