package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spindle-fm/spindle/internal/catalog"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/recommender"
	"github.com/spindle-fm/spindle/internal/services"
	"github.com/spindle-fm/spindle/internal/shared"
	tu "github.com/spindle-fm/spindle/internal/testing"
)

// stubPlatform is a canned services.Platform.
type stubPlatform struct {
	activity  []models.Activity
	authErr   error
	recentErr error
}

func (s stubPlatform) Name() string { return "Stub" }

func (s stubPlatform) Authenticate(context.Context, map[string]string) error {
	return s.authErr
}

func (s stubPlatform) Recent(context.Context) ([]models.Activity, error) {
	return s.activity, s.recentErr
}

func newTestRouter(t *testing.T, platforms PlatformFactory) *BasicRouter {
	t.Helper()

	store, err := catalog.New(tu.FixtureSource(), nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}

	engine := recommender.New(store, nil)
	return New(engine, nil, platforms, shared.ServerConfig{RateLimit: 1000, Burst: 1000})
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := get(t, router, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", rec.Code)
	}

	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "OK" {
		t.Errorf("status = %q, want OK", body["status"])
	}

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}

	if rec := get(t, router, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST / = %d, want 405", rec.Code)
	}
}

func TestArtistEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("single", func(t *testing.T) {
		rec := get(t, router, "/artists/1")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string]models.Artist
		decode(t, rec, &body)
		if body["artist"].Name != "Rihanna" {
			t.Errorf("artist = %q, want Rihanna", body["artist"].Name)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if rec := get(t, router, "/artists/99"); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		if rec := get(t, router, "/artists/abc"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("batch", func(t *testing.T) {
		rec := get(t, router, "/artists?ids=0,1,2")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]models.Artist
		decode(t, rec, &body)
		if len(body["artists"]) != 3 {
			t.Errorf("got %d artists, want 3", len(body["artists"]))
		}
	})

	t.Run("batch all or nothing", func(t *testing.T) {
		if rec := get(t, router, "/artists?ids=0,99"); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("batch cap", func(t *testing.T) {
		ids := make([]string, 11)
		for i := range ids {
			ids[i] = fmt.Sprint(i % 3)
		}
		rec := get(t, router, "/artists?ids="+strings.Join(ids, ","))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing ids", func(t *testing.T) {
		if rec := get(t, router, "/artists"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGenresEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("universe", func(t *testing.T) {
		rec := get(t, router, "/genres")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]string
		decode(t, rec, &body)
		want := []string{"country", "persian", "pop", "rap", "rnb", "rock", "traditional"}
		if len(body["genres"]) != len(want) {
			t.Fatalf("genres = %v, want %v", body["genres"], want)
		}
		for i, g := range want {
			if body["genres"][i] != g {
				t.Errorf("genres[%d] = %q, want %q", i, body["genres"][i], g)
			}
		}
	})

	t.Run("by age", func(t *testing.T) {
		rec := get(t, router, "/genres?age=20")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]string
		decode(t, rec, &body)
		if len(body["genres"]) == 0 {
			t.Error("expected genres for age 20")
		}
	})

	t.Run("invalid age", func(t *testing.T) {
		for _, path := range []string{"/genres?age=abc", "/genres?age=-1", "/genres?age=200"} {
			if rec := get(t, router, path); rec.Code != http.StatusBadRequest {
				t.Errorf("GET %s = %d, want 400", path, rec.Code)
			}
		}
	})
}

func TestSearchEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("artists", func(t *testing.T) {
		rec := get(t, router, "/search/artists?q=emynem")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]models.SimpleArtist
		decode(t, rec, &body)
		if len(body["hits"]) == 0 || body["hits"][0].Name != "Eminem" {
			t.Errorf("hits = %v, want Eminem first", body["hits"])
		}
	})

	t.Run("songs", func(t *testing.T) {
		rec := get(t, router, "/search/songs?q=umbrela")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]models.SimpleSong
		decode(t, rec, &body)
		if len(body["hits"]) == 0 || body["hits"][0].Name != "Umbrella" {
			t.Errorf("hits = %v, want Umbrella first", body["hits"])
		}
	})

	t.Run("no matches is an empty list", func(t *testing.T) {
		rec := get(t, router, "/search/artists?q=zzzzzzzzzz")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"hits":[]`) {
			t.Errorf("body = %s, want empty hits array", rec.Body.String())
		}
	})

	t.Run("missing query", func(t *testing.T) {
		if rec := get(t, router, "/search/artists"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestSongEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := get(t, router, "/songs/0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]models.Song
	decode(t, rec, &body)
	if body["song"].Name != "Rap God" {
		t.Errorf("song = %q, want Rap God", body["song"].Name)
	}

	if rec := get(t, router, "/songs/99"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	rec = get(t, router, "/songs?ids=0,1")
	var batch map[string][]models.Song
	decode(t, rec, &batch)
	if len(batch["songs"]) != 2 {
		t.Errorf("got %d songs, want 2", len(batch["songs"]))
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("valid request", func(t *testing.T) {
		rec := get(t, router, "/recommendations?genres=rap&artists=Eminem")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]models.Song
		decode(t, rec, &body)
		if len(body["recommendations"]) == 0 || len(body["recommendations"]) > 5 {
			t.Errorf("got %d recommendations, want 1..5", len(body["recommendations"]))
		}
	})

	t.Run("missing genres", func(t *testing.T) {
		if rec := get(t, router, "/recommendations"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid genre", func(t *testing.T) {
		rec := get(t, router, "/recommendations?genres=rap,zydeco")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "zydeco") {
			t.Error("error detail should name the offending genre")
		}
	})

	t.Run("invalid artist", func(t *testing.T) {
		rec := get(t, router, "/recommendations?genres=rap&artists=Nobody")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Nobody") {
			t.Error("error detail should name the offending artist")
		}
	})

	t.Run("invalid song type", func(t *testing.T) {
		if rec := get(t, router, "/recommendations?genres=rap&song_type=vinyl"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("song type filter", func(t *testing.T) {
		rec := get(t, router, "/recommendations?genres=rock&song_type=any_file")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string][]models.Song
		decode(t, rec, &body)
		if len(body["recommendations"]) != 0 {
			t.Errorf("expected no downloadable rock songs, got %v", body["recommendations"])
		}
	})
}

func TestPreferencesEndpoint(t *testing.T) {
	factoryFor := func(p services.Platform) PlatformFactory {
		return func(name string) (services.Platform, error) {
			if name != "stub" {
				return nil, fmt.Errorf("unknown platform %q", name)
			}
			return p, nil
		}
	}

	t.Run("inferred preferences", func(t *testing.T) {
		router := newTestRouter(t, factoryFor(stubPlatform{activity: []models.Activity{
			{Artist: "Eminem", Tags: []string{"rap", "Gangsta Rap", "hip hop rap"}},
		}}))

		rec := get(t, router, "/preferences?platform=stub&code=abc")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body map[string]models.Preferences
		decode(t, rec, &body)
		prefs := body["preferences"]
		if len(prefs.Genres) != 1 || prefs.Genres[0] != "rap" {
			t.Errorf("genres = %v, want [rap]", prefs.Genres)
		}
		if len(prefs.Artists) != 1 || prefs.Artists[0] != "Eminem" {
			t.Errorf("artists = %v, want [Eminem]", prefs.Artists)
		}
	})

	t.Run("insufficient data is an empty object", func(t *testing.T) {
		router := newTestRouter(t, factoryFor(stubPlatform{activity: nil}))

		rec := get(t, router, "/preferences?platform=stub&code=abc")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"genres":[]`) {
			t.Errorf("body = %s, want empty genres array", rec.Body.String())
		}
	})

	t.Run("missing code", func(t *testing.T) {
		router := newTestRouter(t, factoryFor(stubPlatform{}))
		if rec := get(t, router, "/preferences?platform=stub"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown platform", func(t *testing.T) {
		router := newTestRouter(t, factoryFor(stubPlatform{}))
		if rec := get(t, router, "/preferences?platform=other&code=abc"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("auth failure", func(t *testing.T) {
		router := newTestRouter(t, factoryFor(stubPlatform{authErr: fmt.Errorf("denied")}))
		if rec := get(t, router, "/preferences?platform=stub&code=abc"); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("activity failure", func(t *testing.T) {
		router := newTestRouter(t, factoryFor(stubPlatform{recentErr: fmt.Errorf("down")}))
		if rec := get(t, router, "/preferences?platform=stub&code=abc"); rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})

	t.Run("no platforms configured", func(t *testing.T) {
		router := newTestRouter(t, nil)
		if rec := get(t, router, "/preferences?platform=stub&code=abc"); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestRateLimit(t *testing.T) {
	store, err := catalog.New(tu.FixtureSource(), nil)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}

	engine := recommender.New(store, nil)
	router := New(engine, nil, nil, shared.ServerConfig{RateLimit: 0.001, Burst: 1})

	if rec := get(t, router, "/"); rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", rec.Code)
	}
	if rec := get(t, router, "/"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request = %d, want 429", rec.Code)
	}
}

func TestBasicRouter(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("method not allowed carries Allow header", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/thing", okHandler)

		req := httptest.NewRequest(http.MethodPost, "/thing", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != "GET" {
			t.Errorf("Allow = %q, want GET", allow)
		}
	})

	t.Run("middleware runs in registration order", func(t *testing.T) {
		router := NewBasicRouter()

		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router.Use(tag("first"), tag("second"))
		router.Handle(http.MethodGet, "/thing", okHandler)

		rec := get(t, router, "/thing")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("middleware order = %v, want [first second]", order)
		}
	})
}
