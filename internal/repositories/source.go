package repositories

import (
	"database/sql"

	"github.com/spindle-fm/spindle/internal/models"
)

// SQLiteSource adapts the catalog tables into a catalog.Source, so the store
// can be built from an imported database instead of the CSV files.
type SQLiteSource struct {
	songs   *SongRepository
	artists *ArtistRepository
}

// NewSQLiteSource creates a catalog source backed by the given database.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{
		songs:   NewSongRepository(db),
		artists: NewArtistRepository(db),
	}
}

func (s *SQLiteSource) Songs() ([]models.Song, error) {
	return s.songs.All()
}

func (s *SQLiteSource) Artists() ([]models.Artist, error) {
	return s.artists.All()
}
