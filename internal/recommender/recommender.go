// package recommender wires the catalog, genre encoder, fuzzy search index
// and similarity ranker into the recommendation engine consumed by the CLI,
// TUI and HTTP layers.
//
// Every operation is a stateless read against the immutable catalog; the
// only per-call mutable state is the sampler's random source.
package recommender

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spindle-fm/spindle/internal/catalog"
	"github.com/spindle-fm/spindle/internal/genre"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/search"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/spindle-fm/spindle/internal/similarity"
)

// persianGenre is the reserved genre acting as the catalog's language
// partition.
const persianGenre = "persian"

const (
	defaultSampleSize = 20
	defaultResultSize = 5
)

// Recommender is the engine facade. Construct once at startup and share
// freely across requests.
type Recommender struct {
	store  *catalog.Store
	index  *search.Index
	ranker *similarity.Ranker
	logger *log.Logger

	sampler    Sampler
	sampleSize int
	resultSize int
}

// Option adjusts a Recommender during construction.
type Option func(*Recommender)

// WithSampler substitutes the candidate sampler. Tests use this to make
// recommendations deterministic.
func WithSampler(s Sampler) Option {
	return func(r *Recommender) { r.sampler = s }
}

// WithSizes overrides the sample pool and result sizes. Non-positive values
// keep the defaults.
func WithSizes(sample, result int) Option {
	return func(r *Recommender) {
		if sample > 0 {
			r.sampleSize = sample
		}
		if result > 0 {
			r.resultSize = result
		}
	}
}

// New builds the engine on top of a loaded catalog store, deriving the
// search index and the artist similarity vectors.
func New(store *catalog.Store, logger *log.Logger, opts ...Option) *Recommender {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	logger.Debug("building fuzzy search index")
	index := search.NewIndex(store)

	logger.Debug("vectorizing artist descriptions")
	ranker := similarity.NewRanker(store.AllArtists())

	r := &Recommender{
		store:      store,
		index:      index,
		ranker:     ranker,
		logger:     logger,
		sampler:    randomSampler{},
		sampleSize: defaultSampleSize,
		resultSize: defaultResultSize,
	}
	for _, opt := range opts {
		opt(r)
	}

	logger.Debug("recommender ready")
	return r
}

// Song looks up a song by id.
func (r *Recommender) Song(id int) (models.Song, error) {
	return r.store.Song(id)
}

// Songs looks up several songs; any invalid id fails the whole call.
func (r *Recommender) Songs(ids []int) ([]models.Song, error) {
	return r.store.Songs(ids)
}

// SongByExternalID looks up a song by its platform catalog reference.
func (r *Recommender) SongByExternalID(externalID string) (models.Song, error) {
	return r.store.SongByExternalID(externalID)
}

// Artist looks up an artist by id.
func (r *Recommender) Artist(id int) (models.Artist, error) {
	return r.store.Artist(id)
}

// Artists looks up several artists; any invalid id fails the whole call.
func (r *Recommender) Artists(ids []int) ([]models.Artist, error) {
	return r.store.Artists(ids)
}

// GenreUniverse returns the ordered list of genres in the catalog.
func (r *Recommender) GenreUniverse() []string {
	return r.store.GenreUniverse()
}

// GenresForAge returns the fixed genre list for the user's age bracket.
func (r *Recommender) GenresForAge(age int) []string {
	return genre.ForAge(age)
}

// KnownGenre reports whether a genre is part of the universe.
func (r *Recommender) KnownGenre(g string) bool {
	return r.store.Encoder().Index(g) >= 0
}

// KnownArtist reports whether a display name exactly matches a catalog
// artist.
func (r *Recommender) KnownArtist(name string) bool {
	_, ok := r.store.ArtistByName(name)
	return ok
}

// SearchArtists finds artists by approximate name, best match first.
func (r *Recommender) SearchArtists(query string) []models.SimpleArtist {
	return r.index.Artists(query)
}

// SearchSongs finds songs by approximate name, best match first, capped at
// 10 results.
func (r *Recommender) SearchSongs(query string) []models.SimpleSong {
	return r.index.Songs(query)
}

// Recommend produces up to five songs matching the preferences.
//
// Songs pass through four stages: a language gate on the reserved persian
// genre, a genre-overlap filter on the remaining bits, random sampling with
// replacement from the candidate pool, and similarity ranking against the
// user's favorite artists when any resolve. The ranked list is walked in
// order keeping songs that satisfy the type filter. Duplicate draws survive
// into the result; sampling is intentionally non-repeating between calls.
func (r *Recommender) Recommend(prefs models.Preferences, songType models.SongType) []models.Song {
	enc := r.store.Encoder()
	userVec := enc.Encode(prefs.Genres)
	persianIdx := enc.Index(persianGenre)
	persianUser := persianIdx >= 0 && userVec[persianIdx] == 1

	var candidates []int
	for id := 0; id < r.store.NumSongs(); id++ {
		vec := r.store.Indicator(id)
		if persianIdx >= 0 && (vec[persianIdx] == 1) != persianUser {
			continue
		}
		for i, bit := range vec {
			if i != persianIdx && bit == 1 && userVec[i] == 1 {
				candidates = append(candidates, id)
				break
			}
		}
	}

	if len(candidates) == 0 {
		r.logger.Debug("no candidate songs for preferences", "genres", strings.Join(prefs.Genres, ","))
		return []models.Song{}
	}

	drawn := r.sampler.Sample(len(candidates), r.sampleSize)
	selected := make([]int, len(drawn))
	for i, d := range drawn {
		selected[i] = candidates[d]
	}
	r.logger.Debug("sampled candidate pool", "candidates", len(candidates), "drawn", len(selected))

	if favorites := r.resolveFavorites(prefs.Artists); len(favorites) > 0 {
		scores := make(map[int]float64, len(selected))
		for _, id := range selected {
			if _, ok := scores[id]; !ok {
				scores[id] = r.ranker.Score(r.store.SongArtist(id), favorites)
			}
		}
		sort.SliceStable(selected, func(i, j int) bool {
			return scores[selected[i]] > scores[selected[j]]
		})
	}

	hits := make([]models.Song, 0, r.resultSize)
	for _, id := range selected {
		song, err := r.store.Song(id)
		if err != nil {
			// should not happen with an immutable catalog; degrade
			// to fewer results instead of failing the request
			r.logger.Error("sampled song did not resolve", "id", id)
			continue
		}
		if songType.Allows(song) {
			hits = append(hits, song)
		}
		if len(hits) == r.resultSize {
			break
		}
	}
	return hits
}

// resolveFavorites maps user-supplied artist names to artist rows. Unknown
// names are silently skipped.
func (r *Recommender) resolveFavorites(names []string) []int {
	var favorites []int
	for _, name := range names {
		if artist, ok := r.store.ArtistByName(name); ok {
			favorites = append(favorites, artist.ID)
		}
	}
	return favorites
}

// inferenceThreshold is the share of tag matches a genre must strictly
// exceed to count as a preference.
const inferenceThreshold = 0.3

// InferPreferences aggregates normalized platform activity into preferences.
// It returns [shared.ErrInsufficientData] when no tags were supplied or no
// genre's share of tag matches strictly exceeds the threshold; callers treat
// that as an absent result, not a failure.
func (r *Recommender) InferPreferences(activity []models.Activity) (models.Preferences, error) {
	universe := r.store.GenreUniverse()

	counts := make(map[string]int)
	total := 0
	for _, act := range activity {
		for _, tag := range act.Tags {
			lowered := strings.ToLower(tag)
			for _, g := range universe {
				if strings.Contains(lowered, g) {
					counts[g]++
					total++
				}
			}
		}
	}

	if total == 0 {
		return models.Preferences{}, fmt.Errorf("%w: no genre tags matched", shared.ErrInsufficientData)
	}

	var genres []string
	for _, g := range universe {
		if share := float64(counts[g]) / float64(total); share > inferenceThreshold {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		return models.Preferences{}, fmt.Errorf("%w: no genre above %.0f%% of matches", shared.ErrInsufficientData, inferenceThreshold*100)
	}

	var artists []string
	seen := make(map[string]struct{})
	for _, act := range activity {
		if _, dup := seen[act.Artist]; dup {
			continue
		}
		if _, ok := r.store.ArtistByName(act.Artist); ok {
			seen[act.Artist] = struct{}{}
			artists = append(artists, act.Artist)
		}
	}

	return models.Preferences{Genres: genres, Artists: artists}, nil
}
