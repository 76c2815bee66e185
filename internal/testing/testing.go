// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/spindle-fm/spindle/internal/models"
)

func strptr(s string) *string { return &s }

// StaticSource is an in-memory catalog.Source backed by fixed tables.
type StaticSource struct {
	SongTable   []models.Song
	ArtistTable []models.Artist
	SongsErr    error
	ArtistsErr  error
}

func (s StaticSource) Songs() ([]models.Song, error) {
	if s.SongsErr != nil {
		return nil, s.SongsErr
	}
	return s.SongTable, nil
}

func (s StaticSource) Artists() ([]models.Artist, error) {
	if s.ArtistsErr != nil {
		return nil, s.ArtistsErr
	}
	return s.ArtistTable, nil
}

// FixtureSource returns a small catalog covering both language partitions.
//
// Genre universe (sorted): country, persian, pop, rap, rnb, rock,
// traditional. Songs 6-8 are the persian partition; song 7 is download-only
// and song 3 has no file references at all. Song 5's artist has no artist
// row, exercising the unresolved reference path.
func FixtureSource() StaticSource {
	return StaticSource{
		ArtistTable: []models.Artist{
			{ID: 0, Name: "Eminem", Description: "Marshall Mathers is an american rapper from detroit known for dense rhyme schemes and rap battles"},
			{ID: 1, Name: "Rihanna", Description: "barbadian singer blending pop rnb and dancehall into global hits"},
			{ID: 2, Name: "Googoosh", Description: "iconic persian pop singer and actress active since the 1960s"},
			{ID: 3, Name: "Mohsen Yeganeh", Description: "persian singer songwriter known for melancholic pop ballads"},
			{ID: 4, Name: "Queen", Description: "british rock band formed in london fronted by freddie mercury"},
			{ID: 5, Name: "Dua Lipa", Description: "english pop singer known for disco influenced dance pop"},
			{ID: 6, Name: "Silent Author", Description: ""},
		},
		SongTable: []models.Song{
			{ID: 0, Name: "Rap God", Artist: "Eminem", Genres: []string{"rap"}, ExternalID: strptr("sp:0"), PreviewURL: strptr("https://cdn.example/0.mp3")},
			{ID: 1, Name: "Lose Yourself", Artist: "Eminem", Genres: []string{"rap"}, ExternalID: strptr("sp:1"), PreviewURL: strptr("https://cdn.example/1.mp3")},
			{ID: 2, Name: "Umbrella", Artist: "Rihanna", Genres: []string{"pop", "rnb"}, PreviewURL: strptr("https://cdn.example/2.mp3")},
			{ID: 3, Name: "Bohemian Rhapsody", Artist: "Queen", Genres: []string{"rock"}},
			{ID: 4, Name: "Levitating", Artist: "Dua Lipa", Genres: []string{"pop"}, PreviewURL: strptr("https://cdn.example/4.mp3")},
			{ID: 5, Name: "Jolene", Artist: "Dolly Parton", Genres: []string{"country"}, PreviewURL: strptr("https://cdn.example/5.mp3")},
			{ID: 6, Name: "Man Amadeam", Artist: "Googoosh", Genres: []string{"persian", "pop"}, PreviewURL: strptr("https://cdn.example/6.mp3"), DownloadURL: strptr("https://cdn.example/6-full.mp3")},
			{ID: 7, Name: "Behet Ghol Midam", Artist: "Mohsen Yeganeh", Genres: []string{"persian", "pop"}, DownloadURL: strptr("https://cdn.example/7-full.mp3")},
			{ID: 8, Name: "Ajab Sabri", Artist: "Mohsen Yeganeh", Genres: []string{"persian", "traditional"}, PreviewURL: strptr("https://cdn.example/8.mp3"), DownloadURL: strptr("https://cdn.example/8-full.mp3")},
		},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return dir
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if err == nil && !info.IsDir() {
		t.Errorf("Expected a directory at %s", path)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
