package repositories

import (
	"database/sql"
	"fmt"

	"github.com/spindle-fm/spindle/internal/models"
)

// SongRepository reads and writes the songs catalog table.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// All retrieves every song ordered by catalog id.
func (r *SongRepository) All() ([]models.Song, error) {
	query := `
		SELECT id, name, artist, genres, external_id, cover_art, isrc, preview_url, download_url
		FROM songs
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// Count returns the number of songs in the table.
func (r *SongRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// insertSongs writes songs with their explicit catalog ids.
func insertSongs(tx *sql.Tx, songs []models.Song) error {
	query := `
		INSERT INTO songs (id, name, artist, genres, external_id, cover_art, isrc, preview_url, download_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare song insert: %w", err)
	}
	defer stmt.Close()

	for _, song := range songs {
		_, err := stmt.Exec(
			song.ID,
			song.Name,
			song.Artist,
			joinGenres(song.Genres),
			song.ExternalID,
			song.CoverArt,
			song.ISRC,
			song.PreviewURL,
			song.DownloadURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert song %d: %w", song.ID, err)
		}
	}

	return nil
}

// scanSong scans a row from [sql.Rows] into a [models.Song]
func scanSong(rows *sql.Rows) (models.Song, error) {
	var (
		song        models.Song
		genres      string
		externalID  sql.NullString
		coverArt    sql.NullString
		isrc        sql.NullString
		previewURL  sql.NullString
		downloadURL sql.NullString
	)

	err := rows.Scan(&song.ID, &song.Name, &song.Artist, &genres,
		&externalID, &coverArt, &isrc, &previewURL, &downloadURL)
	if err != nil {
		return models.Song{}, fmt.Errorf("failed to scan song: %w", err)
	}

	song.Genres = splitGenres(genres)
	song.ExternalID = nullable(externalID)
	song.CoverArt = nullable(coverArt)
	song.ISRC = nullable(isrc)
	song.PreviewURL = nullable(previewURL)
	song.DownloadURL = nullable(downloadURL)

	return song, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
