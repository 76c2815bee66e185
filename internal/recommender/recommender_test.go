package recommender

import (
	"errors"
	"testing"

	"github.com/spindle-fm/spindle/internal/catalog"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
	tu "github.com/spindle-fm/spindle/internal/testing"
)

// seqSampler replays a fixed sequence, wrapping around and clamping to the
// pool, so recommendation tests are deterministic.
type seqSampler struct {
	seq []int
}

func (s seqSampler) Sample(pool, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.seq[i%len(s.seq)] % pool
	}
	return out
}

// roundRobinSampler cycles through the whole pool in order.
type roundRobinSampler struct{}

func (roundRobinSampler) Sample(pool, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i % pool
	}
	return out
}

func newEngine(t *testing.T, opts ...Option) *Recommender {
	t.Helper()
	store, err := catalog.New(tu.FixtureSource(), nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return New(store, nil, opts...)
}

func hasGenre(song models.Song, g string) bool {
	for _, sg := range song.Genres {
		if sg == g {
			return true
		}
	}
	return false
}

func TestRecommendBasics(t *testing.T) {
	engine := newEngine(t, WithSampler(roundRobinSampler{}))

	t.Run("never more than five songs", func(t *testing.T) {
		hits := engine.Recommend(models.Preferences{Genres: []string{"pop", "rap"}}, models.SongTypeAny)
		if len(hits) > 5 {
			t.Errorf("got %d songs, want at most 5", len(hits))
		}
		if len(hits) == 0 {
			t.Error("expected some recommendations")
		}
	})

	t.Run("unsatisfiable genres give an empty list", func(t *testing.T) {
		hits := engine.Recommend(models.Preferences{Genres: []string{"persian", "rnb"}}, models.SongTypeAny)
		if len(hits) != 0 {
			t.Errorf("expected empty result, got %d songs", len(hits))
		}
	})

	t.Run("unknown genres give an empty list", func(t *testing.T) {
		hits := engine.Recommend(models.Preferences{Genres: []string{"zydeco"}}, models.SongTypeAny)
		if len(hits) != 0 {
			t.Errorf("expected empty result, got %d songs", len(hits))
		}
	})
}

func TestRecommendLanguageGate(t *testing.T) {
	engine := newEngine(t, WithSampler(roundRobinSampler{}))

	t.Run("persian user only sees persian songs", func(t *testing.T) {
		hits := engine.Recommend(models.Preferences{Genres: []string{"persian", "pop"}}, models.SongTypeAny)
		if len(hits) == 0 {
			t.Fatal("expected persian recommendations")
		}
		for _, song := range hits {
			if !hasGenre(song, "persian") {
				t.Errorf("song %q is not persian-tagged", song.Name)
			}
		}
	})

	t.Run("non-persian user never sees persian songs", func(t *testing.T) {
		hits := engine.Recommend(models.Preferences{Genres: []string{"pop"}}, models.SongTypeAny)
		if len(hits) == 0 {
			t.Fatal("expected recommendations")
		}
		for _, song := range hits {
			if hasGenre(song, "persian") {
				t.Errorf("song %q should be gated out", song.Name)
			}
		}
	})
}

func TestRecommendSongType(t *testing.T) {
	engine := newEngine(t, WithSampler(roundRobinSampler{}))
	persianPop := models.Preferences{Genres: []string{"persian", "pop"}}

	t.Run("full requires a download reference", func(t *testing.T) {
		hits := engine.Recommend(persianPop, models.SongTypeFull)
		if len(hits) == 0 {
			t.Fatal("expected downloadable recommendations")
		}
		for _, song := range hits {
			if song.DownloadURL == nil {
				t.Errorf("song %q has no download", song.Name)
			}
		}
	})

	t.Run("preview and full requires both", func(t *testing.T) {
		hits := engine.Recommend(persianPop, models.SongTypePreviewFull)
		for _, song := range hits {
			if song.PreviewURL == nil || song.DownloadURL == nil {
				t.Errorf("song %q is missing a file reference", song.Name)
			}
		}
		// fixture song 7 is download-only and must be filtered
		for _, song := range hits {
			if song.Name == "Behet Ghol Midam" {
				t.Error("download-only song leaked through preview,full")
			}
		}
	})

	t.Run("type filter can empty the result", func(t *testing.T) {
		// the only rock song has neither preview nor download
		hits := engine.Recommend(models.Preferences{Genres: []string{"rock"}}, models.SongTypeAnyFile)
		if len(hits) != 0 {
			t.Errorf("expected empty result, got %v", hits)
		}
	})
}

func TestRecommendRanking(t *testing.T) {
	engine := newEngine(t, WithSampler(roundRobinSampler{}))

	t.Run("favorite artists rank first", func(t *testing.T) {
		prefs := models.Preferences{
			Genres:  []string{"persian", "pop"},
			Artists: []string{"Mohsen Yeganeh"},
		}
		hits := engine.Recommend(prefs, models.SongTypeAny)
		if len(hits) == 0 {
			t.Fatal("expected recommendations")
		}
		if hits[0].Artist != "Mohsen Yeganeh" {
			t.Errorf("top song should be by the favorite artist, got %q by %q", hits[0].Name, hits[0].Artist)
		}
	})

	t.Run("unknown favorites are skipped", func(t *testing.T) {
		withUnknown := engine.Recommend(models.Preferences{
			Genres:  []string{"rap"},
			Artists: []string{"No Such Artist"},
		}, models.SongTypeAny)
		plain := engine.Recommend(models.Preferences{Genres: []string{"rap"}}, models.SongTypeAny)
		if len(withUnknown) != len(plain) {
			t.Fatalf("unknown favorite changed result size: %d vs %d", len(withUnknown), len(plain))
		}
		for i := range plain {
			if withUnknown[i].ID != plain[i].ID {
				t.Error("unknown favorite should leave the sampled order untouched")
			}
		}
	})
}

func TestRecommendDuplicates(t *testing.T) {
	// a sampler stuck on one index produces duplicate draws, which the
	// engine deliberately keeps
	engine := newEngine(t, WithSampler(seqSampler{seq: []int{0}}))
	hits := engine.Recommend(models.Preferences{Genres: []string{"rap"}}, models.SongTypeAny)
	if len(hits) != 5 {
		t.Fatalf("expected 5 hits, got %d", len(hits))
	}
	for _, song := range hits[1:] {
		if song.ID != hits[0].ID {
			t.Error("expected duplicate draws to propagate")
		}
	}
}

func TestInferPreferences(t *testing.T) {
	engine := newEngine(t)

	t.Run("no activity at all", func(t *testing.T) {
		_, err := engine.InferPreferences(nil)
		if !errors.Is(err, shared.ErrInsufficientData) {
			t.Errorf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("tags matching no genre", func(t *testing.T) {
		activity := []models.Activity{
			{Artist: "Eminem", Tags: []string{"chillwave", "vaporcore"}},
		}
		_, err := engine.InferPreferences(activity)
		if !errors.Is(err, shared.ErrInsufficientData) {
			t.Errorf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("threshold is strictly greater than 30 percent", func(t *testing.T) {
		// 7 pop matches vs 3 rock matches: pop at 70% clears, rock at
		// exactly 30% does not
		activity := []models.Activity{
			{Artist: "Dua Lipa", Tags: []string{"pop", "pop", "pop", "pop"}},
			{Artist: "Rihanna", Tags: []string{"pop", "pop", "pop"}},
			{Artist: "Queen", Tags: []string{"rock", "rock", "rock"}},
		}
		prefs, err := engine.InferPreferences(activity)
		if err != nil {
			t.Fatalf("InferPreferences failed: %v", err)
		}
		if len(prefs.Genres) != 1 || prefs.Genres[0] != "pop" {
			t.Errorf("expected only pop, got %v", prefs.Genres)
		}
	})

	t.Run("no genre clears the threshold", func(t *testing.T) {
		activity := []models.Activity{
			{Artist: "Eminem", Tags: []string{"pop", "rock", "rap", "country"}},
		}
		_, err := engine.InferPreferences(activity)
		if !errors.Is(err, shared.ErrInsufficientData) {
			t.Errorf("expected ErrInsufficientData, got %v", err)
		}
	})

	t.Run("substring containment against tags", func(t *testing.T) {
		activity := []models.Activity{
			{Artist: "Eminem", Tags: []string{"Gangsta Rap", "Rap Battles", "conscious rap"}},
		}
		prefs, err := engine.InferPreferences(activity)
		if err != nil {
			t.Fatalf("InferPreferences failed: %v", err)
		}
		if len(prefs.Genres) != 1 || prefs.Genres[0] != "rap" {
			t.Errorf("expected rap, got %v", prefs.Genres)
		}
	})

	t.Run("artists require exact catalog match", func(t *testing.T) {
		activity := []models.Activity{
			{Artist: "Eminem", Tags: []string{"rap"}},
			{Artist: "eminem", Tags: []string{"rap"}},
			{Artist: "MF DOOM", Tags: []string{"rap"}},
			{Artist: "Eminem", Tags: []string{"rap"}},
		}
		prefs, err := engine.InferPreferences(activity)
		if err != nil {
			t.Fatalf("InferPreferences failed: %v", err)
		}
		if len(prefs.Artists) != 1 || prefs.Artists[0] != "Eminem" {
			t.Errorf("expected deduplicated exact match [Eminem], got %v", prefs.Artists)
		}
	})
}

func TestLookupPassThrough(t *testing.T) {
	engine := newEngine(t)

	if _, err := engine.Song(999); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	song, err := engine.SongByExternalID("sp:0")
	if err != nil || song.Name != "Rap God" {
		t.Errorf("external id lookup = %v, %v", song.Name, err)
	}
	if got := engine.GenresForAge(0); len(got) == 0 {
		t.Error("expected genres for the lowest bracket")
	}
	if !engine.KnownGenre("persian") || engine.KnownGenre("zydeco") {
		t.Error("KnownGenre misreported")
	}
	if !engine.KnownArtist("Queen") || engine.KnownArtist("queen") {
		t.Error("KnownArtist should be exact and case sensitive")
	}
}
