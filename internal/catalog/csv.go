package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spindle-fm/spindle/internal/models"
)

// Recognized song CSV headers. Sources are locale exports with overlapping
// but not identical column sets; a column missing from a source is treated
// as absent for every row of that source.
const (
	colName        = "name"
	colArtist      = "artist"
	colGenres      = "genres"
	colExternalID  = "external_id"
	colCoverArt    = "cover_art"
	colISRC        = "isrc"
	colPreviewURL  = "preview_url"
	colDownloadURL = "download_url"
	colDescription = "description"
)

// CSVSource loads the catalog from the four locale-partitioned CSV files.
type CSVSource struct {
	Dir       string
	SongsEN   string
	SongsFA   string
	ArtistsEN string
	ArtistsFA string
}

// Songs reads both song files and merges them into one table: the union of
// rows over the union of columns. The English export's download_url column
// is dropped before the merge; only the Persian catalog carries downloads.
func (s CSVSource) Songs() ([]models.Song, error) {
	en, err := readRows(filepath.Join(s.Dir, s.SongsEN))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.SongsEN, err)
	}
	for _, row := range en {
		delete(row, colDownloadURL)
	}

	fa, err := readRows(filepath.Join(s.Dir, s.SongsFA))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.SongsFA, err)
	}

	rows := append(en, fa...)
	songs := make([]models.Song, len(rows))
	for i, row := range rows {
		name, ok := row[colName]
		if !ok {
			return nil, fmt.Errorf("song row %d: missing name", i)
		}
		artist, ok := row[colArtist]
		if !ok {
			return nil, fmt.Errorf("song row %d (%s): missing artist", i, name)
		}

		songs[i] = models.Song{
			ID:          i,
			Name:        name,
			Artist:      artist,
			Genres:      splitGenres(row[colGenres]),
			ExternalID:  optional(row, colExternalID),
			CoverArt:    optional(row, colCoverArt),
			ISRC:        optional(row, colISRC),
			PreviewURL:  optional(row, colPreviewURL),
			DownloadURL: optional(row, colDownloadURL),
		}
	}
	return songs, nil
}

// Artists reads both artist files. Descriptions have newlines stripped and
// default to the empty string when the column is absent.
func (s CSVSource) Artists() ([]models.Artist, error) {
	en, err := readRows(filepath.Join(s.Dir, s.ArtistsEN))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.ArtistsEN, err)
	}
	fa, err := readRows(filepath.Join(s.Dir, s.ArtistsFA))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.ArtistsFA, err)
	}

	rows := append(en, fa...)
	artists := make([]models.Artist, len(rows))
	for i, row := range rows {
		name, ok := row[colName]
		if !ok {
			return nil, fmt.Errorf("artist row %d: missing name", i)
		}
		artists[i] = models.Artist{
			ID:          i,
			Name:        name,
			Description: strings.ReplaceAll(row[colDescription], "\n", ""),
		}
	}
	return artists, nil
}

// readRows parses a CSV file into header-keyed rows. Cells that are empty
// are omitted from the row map, so lookups distinguish absent from present.
func readRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(strings.ToLower(col))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(map[string]string, len(header))
		for i, cell := range record {
			if i >= len(header) || cell == "" {
				continue
			}
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

func optional(row map[string]string, col string) *string {
	if v, ok := row[col]; ok {
		return &v
	}
	return nil
}
