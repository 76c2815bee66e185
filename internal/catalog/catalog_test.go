package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spindle-fm/spindle/internal/shared"
	tu "github.com/spindle-fm/spindle/internal/testing"
)

func fixtureStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(tu.FixtureSource(), nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return store
}

func TestStoreLookups(t *testing.T) {
	store := fixtureStore(t)

	t.Run("song ids are row positions", func(t *testing.T) {
		for id := 0; id < store.NumSongs(); id++ {
			song, err := store.Song(id)
			if err != nil {
				t.Fatalf("Song(%d) failed: %v", id, err)
			}
			if song.ID != id {
				t.Errorf("Song(%d).ID = %d", id, song.ID)
			}
		}
	})

	t.Run("out of range song is NotFound", func(t *testing.T) {
		for _, id := range []int{-1, store.NumSongs(), store.NumSongs() + 100} {
			if _, err := store.Song(id); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("Song(%d) error = %v, want ErrNotFound", id, err)
			}
		}
	})

	t.Run("batch lookup is all or nothing", func(t *testing.T) {
		songs, err := store.Songs([]int{2, 0, 1})
		if err != nil {
			t.Fatalf("Songs failed: %v", err)
		}
		if songs[0].Name != "Umbrella" || songs[1].Name != "Rap God" {
			t.Error("batch lookup should align with input ids")
		}

		if _, err := store.Songs([]int{0, 99}); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound for partial batch, got %v", err)
		}
	})

	t.Run("external id lookup", func(t *testing.T) {
		song, err := store.SongByExternalID("sp:1")
		if err != nil {
			t.Fatalf("SongByExternalID failed: %v", err)
		}
		if song.Name != "Lose Yourself" {
			t.Errorf("unexpected song %q", song.Name)
		}

		if _, err := store.SongByExternalID("sp:missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		if _, err := store.SongByExternalID(""); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for empty id, got %v", err)
		}
	})

	t.Run("artist lookups", func(t *testing.T) {
		artist, err := store.Artist(0)
		if err != nil {
			t.Fatalf("Artist(0) failed: %v", err)
		}
		if artist.Name != "Eminem" {
			t.Errorf("unexpected artist %q", artist.Name)
		}

		if _, err := store.Artist(store.NumArtists()); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		if _, ok := store.ArtistByName("Eminem"); !ok {
			t.Error("exact name lookup should resolve")
		}
		if _, ok := store.ArtistByName("eminem"); ok {
			t.Error("name lookup is case sensitive")
		}
	})
}

func TestStoreIndices(t *testing.T) {
	store := fixtureStore(t)

	t.Run("genre universe is sorted and distinct", func(t *testing.T) {
		want := []string{"country", "persian", "pop", "rap", "rnb", "rock", "traditional"}
		if got := store.GenreUniverse(); !reflect.DeepEqual(got, want) {
			t.Errorf("GenreUniverse() = %v, want %v", got, want)
		}
	})

	t.Run("indicator matrix matches song genres", func(t *testing.T) {
		enc := store.Encoder()
		for id := 0; id < store.NumSongs(); id++ {
			song, _ := store.Song(id)
			if !reflect.DeepEqual(store.Indicator(id), enc.Encode(song.Genres)) {
				t.Errorf("indicator for song %d doesn't match its genres", id)
			}
		}
	})

	t.Run("song artist references resolved at load", func(t *testing.T) {
		if idx := store.SongArtist(0); idx != 0 {
			t.Errorf("Rap God should resolve to artist 0, got %d", idx)
		}
		// Jolene's artist has no catalog row
		if idx := store.SongArtist(5); idx != -1 {
			t.Errorf("unresolved artist should be -1, got %d", idx)
		}
		if idx := store.SongArtist(-3); idx != -1 {
			t.Errorf("invalid song id should be -1, got %d", idx)
		}
	})

	t.Run("search dictionaries are lowercase keyed", func(t *testing.T) {
		if _, ok := store.SongKeys()["rap god"]; !ok {
			t.Error("song dictionary should key by lowercased name")
		}
		if _, ok := store.ArtistKeys()["mohsen yeganeh"]; !ok {
			t.Error("artist dictionary should key by lowercased name")
		}
	})
}

func TestStoreLoadFailure(t *testing.T) {
	src := tu.StaticSource{SongsErr: errors.New("disk gone")}
	if _, err := New(src, nil); err == nil {
		t.Fatal("expected load failure to propagate")
	}
}

func TestCSVSource(t *testing.T) {
	src := CSVSource{
		Dir:       "testdata",
		SongsEN:   "tracks_en.csv",
		SongsFA:   "tracks_fa.csv",
		ArtistsEN: "artists_en.csv",
		ArtistsFA: "artists_fa.csv",
	}

	t.Run("songs merge both locales", func(t *testing.T) {
		songs, err := src.Songs()
		if err != nil {
			t.Fatalf("Songs failed: %v", err)
		}
		if len(songs) != 5 {
			t.Fatalf("expected 5 songs, got %d", len(songs))
		}

		// english rows come first, ids are positions
		for i, song := range songs {
			if song.ID != i {
				t.Errorf("song %d has id %d", i, song.ID)
			}
		}

		if songs[0].Name != "Rap God" || songs[3].Name != "Man Amadeam" {
			t.Error("rows out of order after merge")
		}
	})

	t.Run("english download urls are dropped", func(t *testing.T) {
		songs, err := src.Songs()
		if err != nil {
			t.Fatalf("Songs failed: %v", err)
		}
		if songs[0].DownloadURL != nil {
			t.Error("english source download_url should be ignored")
		}
		if songs[3].DownloadURL == nil || *songs[3].DownloadURL != "https://cdn.example/6-full.mp3" {
			t.Error("persian source download_url should survive")
		}
	})

	t.Run("absent cells become nil", func(t *testing.T) {
		songs, err := src.Songs()
		if err != nil {
			t.Fatalf("Songs failed: %v", err)
		}
		bohemian := songs[2]
		if bohemian.ExternalID != nil || bohemian.CoverArt != nil || bohemian.PreviewURL != nil {
			t.Error("empty cells should load as absent")
		}
		// column missing from the whole fa file
		if songs[3].ISRC != nil {
			t.Error("missing isrc column should load as absent")
		}
	})

	t.Run("multi genre cells split", func(t *testing.T) {
		songs, err := src.Songs()
		if err != nil {
			t.Fatalf("Songs failed: %v", err)
		}
		if !reflect.DeepEqual(songs[1].Genres, []string{"pop", "rnb"}) {
			t.Errorf("Umbrella genres = %v", songs[1].Genres)
		}
	})

	t.Run("artist descriptions normalized", func(t *testing.T) {
		artists, err := src.Artists()
		if err != nil {
			t.Fatalf("Artists failed: %v", err)
		}
		if len(artists) != 5 {
			t.Fatalf("expected 5 artists, got %d", len(artists))
		}
		// embedded newline stripped
		if artists[0].Description != "Marshall Mathers is an american rapperfrom detroit" {
			t.Errorf("unexpected description %q", artists[0].Description)
		}
		// empty cell defaults to ""
		if artists[2].Description != "" {
			t.Errorf("Queen description should be empty, got %q", artists[2].Description)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		bad := src
		bad.SongsEN = "nope.csv"
		if _, err := bad.Songs(); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
