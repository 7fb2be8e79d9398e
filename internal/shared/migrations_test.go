package shared

import (
	"database/sql"
	"testing"
)

func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRunMigrations(t *testing.T) {
	db := newMigratedDB(t)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Applying twice is a no-op.
	if err := RunMigrations(db); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}

	for _, table := range []string{"collections", "collection_videos", "collection_channels", "collection_playlists", "collection_settings"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s to exist: %v", table, err)
		}
	}
}

func TestRollbackMigration(t *testing.T) {
	db := newMigratedDB(t)

	if err := RollbackMigration(db); err == nil {
		t.Error("expected error rolling back with no applied migrations")
	}

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if err := RollbackMigration(db); err != nil {
		t.Fatalf("failed to rollback: %v", err)
	}

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = 'collections'").Scan(&name)
	if err == nil {
		t.Error("expected collections table to be dropped after rollback")
	}
}
