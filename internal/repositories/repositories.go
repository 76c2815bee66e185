// package repositories provides the SQLite persistence layer for the catalog.
//
// The song and artist repositories mirror the CSV catalog tables; row ids
// are the stable catalog ids, so imports write them explicitly instead of
// letting SQLite assign rowids.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spindle-fm/spindle/internal/catalog"
)

// genreSeparator joins a song's genre list into a single TEXT column.
const genreSeparator = ","

func joinGenres(genres []string) string {
	return strings.Join(genres, genreSeparator)
}

func splitGenres(raw string) []string {
	if raw == "" {
		return nil
	}

	var genres []string
	for _, g := range strings.Split(raw, genreSeparator) {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// ImportCatalog replaces the catalog tables with the contents of src inside
// a single transaction. Used by the setup command to turn the CSV catalog
// into a SQLite one.
func ImportCatalog(db *sql.DB, src catalog.Source) error {
	songs, err := src.Songs()
	if err != nil {
		return fmt.Errorf("failed to load songs: %w", err)
	}

	artists, err := src.Artists()
	if err != nil {
		return fmt.Errorf("failed to load artists: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"songs", "artists"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertSongs(tx, songs); err != nil {
		return err
	}
	if err := insertArtists(tx, artists); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return nil
}
