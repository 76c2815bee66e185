// package models defines the data model for the song recommendation service
package models

import "fmt"

// Song is a full catalog entry. The id is the song's row position in the
// immutable catalog and is stable for the process lifetime.
type Song struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Artist      string   `json:"artist"`
	Genres      []string `json:"genres"`
	ExternalID  *string  `json:"external_id"`
	CoverArt    *string  `json:"cover_art"`
	ISRC        *string  `json:"isrc"`
	PreviewURL  *string  `json:"preview_url"`
	DownloadURL *string  `json:"download_url"`
}

// SimpleSong is a search hit without full info.
type SimpleSong struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Artist   string  `json:"artist"`
	CoverArt *string `json:"cover_art"`
}

// Artist is a catalog artist. The description is free text used for
// similarity scoring and may be empty.
type Artist struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SimpleArtist is a search hit without full info.
type SimpleArtist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Preferences holds a user's favorite genres and artists. Constructed per
// request and never mutated afterwards.
type Preferences struct {
	Genres  []string `json:"genres"`
	Artists []string `json:"artists"`
}

// Activity is one unit of a user's recent listening history on an external
// platform, already fetched and normalized by the services layer.
type Activity struct {
	Artist string   `json:"artist"`
	Tags   []string `json:"tags"`
}

// SongType filters which songs qualify for a recommendation result.
type SongType string

const (
	SongTypeAny         SongType = "any"
	SongTypeAnyFile     SongType = "any_file"
	SongTypePreview     SongType = "preview"
	SongTypeFull        SongType = "full"
	SongTypePreviewFull SongType = "preview,full"
)

// ParseSongType validates a raw song type string. An empty string maps to
// [SongTypeAny].
func ParseSongType(raw string) (SongType, error) {
	switch SongType(raw) {
	case "":
		return SongTypeAny, nil
	case SongTypeAny, SongTypeAnyFile, SongTypePreview, SongTypeFull, SongTypePreviewFull:
		return SongType(raw), nil
	default:
		return "", fmt.Errorf("unknown song type %q", raw)
	}
}

// Allows reports whether a song satisfies the type predicate.
func (st SongType) Allows(song Song) bool {
	hasPreview := song.PreviewURL != nil && *song.PreviewURL != ""
	hasDownload := song.DownloadURL != nil && *song.DownloadURL != ""

	switch st {
	case SongTypeAny:
		return true
	case SongTypeAnyFile:
		return hasPreview || hasDownload
	case SongTypePreview:
		return hasPreview
	case SongTypeFull:
		return hasDownload
	default:
		return hasPreview && hasDownload
	}
}

// Simple reduces a Song to its search-hit shape.
func (s Song) Simple() SimpleSong {
	return SimpleSong{ID: s.ID, Name: s.Name, Artist: s.Artist, CoverArt: s.CoverArt}
}

// Simple reduces an Artist to its search-hit shape.
func (a Artist) Simple() SimpleArtist {
	return SimpleArtist{ID: a.ID, Name: a.Name}
}
