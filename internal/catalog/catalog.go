// package catalog implements the immutable in-memory song and artist store.
//
// A [Store] is built once at process start from a [Source] and never mutated
// afterwards, so all lookups are safe for unrestricted concurrent use.
package catalog

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spindle-fm/spindle/internal/genre"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
)

// Source provides the raw catalog tables. Implementations load from the
// locale-partitioned CSV exports ([CSVSource]) or from the sqlite tables
// written by the importer.
type Source interface {
	Songs() ([]models.Song, error)
	Artists() ([]models.Artist, error)
}

// Store owns the song and artist tables and every index derived from them:
// the genre universe and encoder, the per-song indicator matrix, the
// lowercase search dictionaries and the resolved song→artist references.
type Store struct {
	songs   []models.Song
	artists []models.Artist

	encoder   *genre.Encoder
	indicator [][]uint8

	// lowercase-keyed dictionaries consumed by the fuzzy search index
	songKeys   map[string]models.SimpleSong
	artistKeys map[string]models.SimpleArtist

	externalIDs  map[string]int
	artistByName map[string]int // exact display name → artist row
	songArtist   []int          // song row → artist row, -1 when unresolved
}

// New loads both tables from the source and builds the derived indices.
// Any load failure is returned as-is and is fatal at startup.
func New(src Source, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	logger.Debug("loading songs from catalog source")
	songs, err := src.Songs()
	if err != nil {
		return nil, fmt.Errorf("failed to load songs: %w", err)
	}

	logger.Debug("loading artists from catalog source")
	artists, err := src.Artists()
	if err != nil {
		return nil, fmt.Errorf("failed to load artists: %w", err)
	}

	s := &Store{
		songs:        songs,
		artists:      artists,
		songKeys:     make(map[string]models.SimpleSong, len(songs)),
		artistKeys:   make(map[string]models.SimpleArtist, len(artists)),
		externalIDs:  make(map[string]int),
		artistByName: make(map[string]int, len(artists)),
		songArtist:   make([]int, len(songs)),
	}

	logger.Debug("building search dictionaries")
	for _, artist := range artists {
		s.artistKeys[shared.NormalizeName(artist.Name)] = artist.Simple()
		if _, seen := s.artistByName[artist.Name]; !seen {
			s.artistByName[artist.Name] = artist.ID
		}
	}
	for _, song := range songs {
		s.songKeys[shared.NormalizeName(song.Name)] = song.Simple()
		if song.ExternalID != nil && *song.ExternalID != "" {
			if _, seen := s.externalIDs[*song.ExternalID]; !seen {
				s.externalIDs[*song.ExternalID] = song.ID
			}
		}
	}

	logger.Debug("encoding genres")
	s.encoder = genre.NewEncoder(universe(songs))
	s.indicator = make([][]uint8, len(songs))
	for i, song := range songs {
		s.indicator[i] = s.encoder.Encode(song.Genres)
	}

	// Resolve the implicit song.artist → artist.name reference once so the
	// ranker can use array lookups instead of repeated string scans.
	for i, song := range songs {
		if idx, ok := s.artistByName[song.Artist]; ok {
			s.songArtist[i] = idx
		} else {
			s.songArtist[i] = -1
		}
	}

	logger.Debug("catalog store ready", "songs", len(songs), "artists", len(artists), "genres", s.encoder.Size())
	return s, nil
}

// universe collects the ordered set of distinct genre tokens across the
// catalog. Tokens are sorted so vector positions are stable across runs.
func universe(songs []models.Song) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, song := range songs {
		for _, g := range song.Genres {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				out = append(out, g)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Song returns the song at id.
func (s *Store) Song(id int) (models.Song, error) {
	if id < 0 || id >= len(s.songs) {
		return models.Song{}, fmt.Errorf("%w: song id %d", shared.ErrSongNotFound, id)
	}
	return s.songs[id], nil
}

// Songs returns the songs for ids, aligned with the input. Any invalid id
// fails the whole lookup.
func (s *Store) Songs(ids []int) ([]models.Song, error) {
	out := make([]models.Song, len(ids))
	for i, id := range ids {
		song, err := s.Song(id)
		if err != nil {
			return nil, err
		}
		out[i] = song
	}
	return out, nil
}

// SongByExternalID returns the song carrying the given platform catalog
// reference.
func (s *Store) SongByExternalID(externalID string) (models.Song, error) {
	if externalID == "" {
		return models.Song{}, fmt.Errorf("%w: empty external id", shared.ErrInvalidArgument)
	}
	id, ok := s.externalIDs[externalID]
	if !ok {
		return models.Song{}, fmt.Errorf("%w: external id %q", shared.ErrSongNotFound, externalID)
	}
	return s.songs[id], nil
}

// Artist returns the artist at id.
func (s *Store) Artist(id int) (models.Artist, error) {
	if id < 0 || id >= len(s.artists) {
		return models.Artist{}, fmt.Errorf("%w: artist id %d", shared.ErrArtistNotFound, id)
	}
	return s.artists[id], nil
}

// Artists returns the artists for ids, aligned with the input. Any invalid
// id fails the whole lookup.
func (s *Store) Artists(ids []int) ([]models.Artist, error) {
	out := make([]models.Artist, len(ids))
	for i, id := range ids {
		artist, err := s.Artist(id)
		if err != nil {
			return nil, err
		}
		out[i] = artist
	}
	return out, nil
}

// ArtistByName resolves an exact display name to its artist row.
func (s *Store) ArtistByName(name string) (models.Artist, bool) {
	if idx, ok := s.artistByName[name]; ok {
		return s.artists[idx], true
	}
	return models.Artist{}, false
}

// SongArtist returns the resolved artist row for a song, or -1 when the
// song's artist text matches no catalog artist.
func (s *Store) SongArtist(songID int) int {
	if songID < 0 || songID >= len(s.songArtist) {
		return -1
	}
	return s.songArtist[songID]
}

// Encoder returns the genre encoder fitted to this catalog.
func (s *Store) Encoder() *genre.Encoder {
	return s.encoder
}

// GenreUniverse returns the ordered, immutable genre universe.
func (s *Store) GenreUniverse() []string {
	return s.encoder.Universe()
}

// Indicator returns the genre indicator vector for a song. Callers must not
// mutate the returned slice.
func (s *Store) Indicator(songID int) []uint8 {
	return s.indicator[songID]
}

// NumSongs returns the song count.
func (s *Store) NumSongs() int {
	return len(s.songs)
}

// NumArtists returns the artist count.
func (s *Store) NumArtists() int {
	return len(s.artists)
}

// SongKeys returns the lowercase-keyed song dictionary used by the fuzzy
// search index. Read-only.
func (s *Store) SongKeys() map[string]models.SimpleSong {
	return s.songKeys
}

// ArtistKeys returns the lowercase-keyed artist dictionary used by the fuzzy
// search index. Read-only.
func (s *Store) ArtistKeys() map[string]models.SimpleArtist {
	return s.artistKeys
}

// AllArtists returns the artist table for index construction. Read-only.
func (s *Store) AllArtists() []models.Artist {
	return s.artists
}
