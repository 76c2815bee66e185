// package search implements approximate, case-insensitive name lookup over
// the catalog's song and artist dictionaries.
package search

import (
	"sort"

	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
)

// matchCutoff is the minimum similarity ratio for a result to qualify.
const matchCutoff = 0.6

// maxSongResults caps song searches. Artist searches are uncapped since the
// artist table is small.
const maxSongResults = 10

// Dictionaries is the read view of the catalog the index is built over.
// *catalog.Store satisfies it.
type Dictionaries interface {
	SongKeys() map[string]models.SimpleSong
	ArtistKeys() map[string]models.SimpleArtist
}

// Index holds the lowercase keys in a deterministic order so equal-ratio
// matches always come back in the same sequence.
type Index struct {
	songKeys   []string
	songs      map[string]models.SimpleSong
	artistKeys []string
	artists    map[string]models.SimpleArtist
}

// NewIndex builds a search index over the catalog dictionaries.
func NewIndex(dicts Dictionaries) *Index {
	idx := &Index{
		songs:   dicts.SongKeys(),
		artists: dicts.ArtistKeys(),
	}
	idx.songKeys = sortedKeys(idx.songs)
	idx.artistKeys = sortedKeys(idx.artists)
	return idx
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Artists returns artists whose names approximately match the query, best
// first. Empty queries and queries with no close match return an empty list.
func (idx *Index) Artists(query string) []models.SimpleArtist {
	matches := closeMatches(query, idx.artistKeys, 0)
	out := make([]models.SimpleArtist, len(matches))
	for i, key := range matches {
		out[i] = idx.artists[key]
	}
	return out
}

// Songs returns up to 10 songs whose names approximately match the query,
// best first.
func (idx *Index) Songs(query string) []models.SimpleSong {
	matches := closeMatches(query, idx.songKeys, maxSongResults)
	out := make([]models.SimpleSong, len(matches))
	for i, key := range matches {
		out[i] = idx.songs[key]
	}
	return out
}

type scored struct {
	key   string
	ratio float64
}

// closeMatches scores every candidate against the lowercased query and keeps
// those at or above the cutoff, sorted by descending ratio. A limit of 0
// means unlimited.
func closeMatches(query string, candidates []string, limit int) []string {
	query = shared.NormalizeName(query)
	if query == "" {
		return nil
	}

	var hits []scored
	for _, candidate := range candidates {
		if upperBound(candidate, query) < matchCutoff {
			continue
		}
		if r := Ratio(candidate, query); r >= matchCutoff {
			hits = append(hits, scored{key: candidate, ratio: r})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].ratio > hits[j].ratio
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.key
	}
	return out
}
