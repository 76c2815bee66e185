package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// The embedded scripts define the catalog schema (songs, artists) that
// `spindle setup` imports the CSV sources into. Files follow the pattern
// NNNN_description_up.sql / NNNN_description_down.sql.
//
//go:embed sql/*.sql
var migrationFiles embed.FS

// Migration pairs the up and down scripts for one catalog schema version.
type Migration struct {
	Version int
	Up      string
	Down    string
}

// parseMigrationName extracts the version and direction from a script name.
func parseMigrationName(name string) (version int, up bool, err error) {
	base, found := strings.CutSuffix(name, "_up.sql")
	up = found
	if !found {
		if base, found = strings.CutSuffix(name, "_down.sql"); !found {
			return 0, false, fmt.Errorf("migration %s has no _up.sql or _down.sql suffix", name)
		}
	}

	prefix, _, found := strings.Cut(base, "_")
	if !found {
		return 0, false, fmt.Errorf("migration %s has no version prefix", name)
	}

	version, err = strconv.Atoi(prefix)
	if err != nil {
		return 0, false, fmt.Errorf("migration %s has a non-numeric version: %w", name, err)
	}

	return version, up, nil
}

// loadMigrations reads the embedded schema scripts, pairing up and down
// halves per version and returning them in ascending version order. A
// malformed script name or an unpaired half is an error: the catalog schema
// must be fully reversible.
func loadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		version, up, err := parseMigrationName(name)
		if err != nil {
			return nil, err
		}

		content, err := migrationFiles.ReadFile(filepath.Join("sql", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		m := byVersion[version]
		if m == nil {
			m = &Migration{Version: version}
			byVersion[version] = m
		}
		if up {
			m.Up = string(content)
		} else {
			m.Down = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("incomplete migration for version %d", m.Version)
		}
		migrations = append(migrations, *m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// RunMigrations brings the catalog schema up to date, applying any versions
// not yet recorded in the catalog_migrations tracking table. Safe to run on
// every `spindle setup`; already-applied versions are skipped.
func RunMigrations(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := createTrackingTable(db); err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("failed to read applied versions: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// RollbackMigration reverts the highest applied catalog schema version.
func RollbackMigration(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read current version: %w", err)
	}
	if current < 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	for _, m := range migrations {
		if m.Version == current {
			if err := revertMigration(db, m); err != nil {
				return fmt.Errorf("failed to rollback migration %d: %w", m.Version, err)
			}
			return nil
		}
	}

	return fmt.Errorf("migration version %d not found", current)
}

func createTrackingTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS catalog_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	return err
}

// appliedVersions returns the set of schema versions already recorded.
func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM catalog_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// currentVersion returns the highest applied version, or -1 when the
// tracking table is empty.
func currentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), -1) FROM catalog_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// applyMigration runs a version's up script and records it, atomically.
func applyMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := runScript(tx, m.Up); err != nil {
		return err
	}

	if _, err := tx.Exec("INSERT INTO catalog_migrations (version) VALUES (?)", m.Version); err != nil {
		return err
	}

	return tx.Commit()
}

// revertMigration runs a version's down script and removes its record, atomically.
func revertMigration(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := runScript(tx, m.Down); err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM catalog_migrations WHERE version = ?", m.Version); err != nil {
		return err
	}

	return tx.Commit()
}

// runScript executes a migration script statement by statement. Statements
// are split on semicolons, so the schema scripts keep comments line-scoped.
func runScript(tx *sql.Tx, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stripComments(stmt))
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}
	return nil
}

// stripComments drops line comments so a "--" comment containing a semicolon
// cannot break statement splitting.
func stripComments(script string) string {
	lines := strings.Split(script, "\n")
	var kept []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
