package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("parseMigrationName", func(t *testing.T) {
		tests := []struct {
			name    string
			version int
			up      bool
			wantErr bool
		}{
			{name: "0000_create_catalog_up.sql", version: 0, up: true},
			{name: "0000_create_catalog_down.sql", version: 0, up: false},
			{name: "0003_add_isrc_index_up.sql", version: 3, up: true},
			{name: "create_catalog_up.sql", wantErr: true},
			{name: "0001_orphan.sql", wantErr: true},
			{name: "0001.sql", wantErr: true},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				version, up, err := parseMigrationName(tc.name)
				if tc.wantErr {
					if err == nil {
						t.Fatalf("expected error for %s", tc.name)
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if version != tc.version || up != tc.up {
					t.Errorf("got version=%d up=%v, want version=%d up=%v", version, up, tc.version, tc.up)
				}
			})
		}
	})

	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM catalog_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query catalog_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one migration to be applied")
		}

		_, err = db.Exec("SELECT 1 FROM songs LIMIT 1")
		if err != nil {
			t.Errorf("songs table should exist after migrations: %v", err)
		}

		_, err = db.Exec("SELECT 1 FROM artists LIMIT 1")
		if err != nil {
			t.Errorf("artists table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		var newCount int
		err = db.QueryRow("SELECT COUNT(*) FROM catalog_migrations").Scan(&newCount)
		if err != nil {
			t.Fatalf("failed to query catalog_migrations after rollback: %v", err)
		}
		if newCount >= count {
			t.Errorf("expected migration count to decrease after rollback, got %d (was %d)", newCount, count)
		}
	})

	t.Run("Rollback Without Applied Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := createTrackingTable(db); err != nil {
			t.Fatalf("failed to create tracking table: %v", err)
		}

		if err := RollbackMigration(db); err == nil {
			t.Error("expected error when no migrations have been applied")
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM catalog_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query catalog_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})
}
