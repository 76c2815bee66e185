package repositories

import (
	"database/sql"
	"fmt"

	"github.com/spindle-fm/spindle/internal/models"
)

// ArtistRepository reads and writes the artists catalog table.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new ArtistRepository with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// All retrieves every artist ordered by catalog id.
func (r *ArtistRepository) All() ([]models.Artist, error) {
	query := `
		SELECT id, name, description
		FROM artists
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.Description); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Count returns the number of artists in the table.
func (r *ArtistRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM artists").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}
	return count, nil
}

// insertArtists writes artists with their explicit catalog ids.
func insertArtists(tx *sql.Tx, artists []models.Artist) error {
	query := `INSERT INTO artists (id, name, description) VALUES (?, ?, ?)`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare artist insert: %w", err)
	}
	defer stmt.Close()

	for _, artist := range artists {
		if _, err := stmt.Exec(artist.ID, artist.Name, artist.Description); err != nil {
			return fmt.Errorf("failed to insert artist %d: %w", artist.ID, err)
		}
	}

	return nil
}
