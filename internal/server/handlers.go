package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/recommender"
	"github.com/spindle-fm/spindle/internal/services"
	"github.com/spindle-fm/spindle/internal/shared"
)

// maxBatchIDs caps the ids= query parameter on batch lookups.
const maxBatchIDs = 10

// PlatformFactory builds a listening platform client by name ("spotify",
// "genius"). The preferences handler uses it so tests can substitute canned
// platforms.
type PlatformFactory func(name string) (services.Platform, error)

// API is the JSON adapter over the recommendation engine.
type API struct {
	engine    *recommender.Recommender
	logger    *log.Logger
	platforms PlatformFactory
}

// NewAPI creates the handler set for the HTTP surface. platforms may be nil,
// which disables the preferences endpoint.
func NewAPI(engine *recommender.Recommender, logger *log.Logger, platforms PlatformFactory) *API {
	if logger == nil {
		logger = log.Default()
	}
	return &API{engine: engine, logger: logger, platforms: platforms}
}

// Register mounts every endpoint on the router.
func (a *API) Register(r Router) {
	r.Handle(http.MethodGet, "/{$}", http.HandlerFunc(a.status))
	r.Handle(http.MethodGet, "/artists/{id}", http.HandlerFunc(a.artist))
	r.Handle(http.MethodGet, "/artists", http.HandlerFunc(a.artists))
	r.Handle(http.MethodGet, "/genres", http.HandlerFunc(a.genres))
	r.Handle(http.MethodGet, "/search/artists", http.HandlerFunc(a.searchArtists))
	r.Handle(http.MethodGet, "/search/songs", http.HandlerFunc(a.searchSongs))
	r.Handle(http.MethodGet, "/songs/{id}", http.HandlerFunc(a.song))
	r.Handle(http.MethodGet, "/songs", http.HandlerFunc(a.songs))
	r.Handle(http.MethodGet, "/recommendations", http.HandlerFunc(a.recommendations))
	r.Handle(http.MethodGet, "/preferences", http.HandlerFunc(a.preferences))
}

func (a *API) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response", "error", err)
	}
}

// writeError mirrors the {"detail": ...} error body of the original service.
func (a *API) writeError(w http.ResponseWriter, status int, detail string) {
	a.writeJSON(w, status, map[string]string{"detail": detail})
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// parseIDList splits a comma-separated ids parameter into ints.
func parseIDList(raw string) ([]int, error) {
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("wrong item type: %q is not an integer", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseList splits a comma-separated string parameter, dropping empty items.
func parseList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func (a *API) artist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "Artist id must be an integer.")
		return
	}

	artist, err := a.engine.Artist(id)
	if err != nil {
		a.writeError(w, http.StatusNotFound, "Artist not found")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]models.Artist{"artist": artist})
}

func (a *API) artists(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		a.writeError(w, http.StatusBadRequest, "Missing parameter: 'ids'")
		return
	}

	ids, err := parseIDList(raw)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(ids) > maxBatchIDs {
		a.writeError(w, http.StatusBadRequest, "IDs can't be more than 10.")
		return
	}

	artists, err := a.engine.Artists(ids)
	if err != nil {
		a.writeError(w, http.StatusNotFound, "One of the artists was not found.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string][]models.Artist{"artists": artists})
}

func (a *API) genres(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("age")
	if raw == "" {
		a.writeJSON(w, http.StatusOK, map[string][]string{"genres": a.engine.GenreUniverse()})
		return
	}

	age, err := strconv.Atoi(raw)
	if err != nil || age < 0 || age > 100 {
		a.writeError(w, http.StatusBadRequest, "Age must be an integer between 0 and 100.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string][]string{"genres": a.engine.GenresForAge(age)})
}

func (a *API) searchArtists(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		a.writeError(w, http.StatusBadRequest, "Missing parameter: 'q'")
		return
	}

	hits := a.engine.SearchArtists(q)
	if hits == nil {
		hits = []models.SimpleArtist{}
	}
	a.writeJSON(w, http.StatusOK, map[string][]models.SimpleArtist{"hits": hits})
}

func (a *API) searchSongs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		a.writeError(w, http.StatusBadRequest, "Missing parameter: 'q'")
		return
	}

	hits := a.engine.SearchSongs(q)
	if hits == nil {
		hits = []models.SimpleSong{}
	}
	a.writeJSON(w, http.StatusOK, map[string][]models.SimpleSong{"hits": hits})
}

func (a *API) song(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "Song id must be an integer.")
		return
	}

	song, err := a.engine.Song(id)
	if err != nil {
		a.writeError(w, http.StatusNotFound, "Song not found")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]models.Song{"song": song})
}

func (a *API) songs(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		a.writeError(w, http.StatusBadRequest, "Missing parameter: 'ids'")
		return
	}

	ids, err := parseIDList(raw)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(ids) > maxBatchIDs {
		a.writeError(w, http.StatusBadRequest, "IDs can't be more than 10.")
		return
	}

	songs, err := a.engine.Songs(ids)
	if err != nil {
		a.writeError(w, http.StatusNotFound, "One of the songs was not found.")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string][]models.Song{"songs": songs})
}

func (a *API) recommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	genres := parseList(query.Get("genres"))
	if len(genres) == 0 {
		a.writeError(w, http.StatusBadRequest, "Genres can't be empty.")
		return
	}
	for _, genre := range genres {
		if !a.engine.KnownGenre(genre) {
			a.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid genre in genres: %q", genre))
			return
		}
	}

	artists := parseList(query.Get("artists"))
	for _, artist := range artists {
		if !a.engine.KnownArtist(artist) {
			a.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid artist in artists: %q", artist))
			return
		}
	}

	songType, err := models.ParseSongType(query.Get("song_type"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "Invalid song_type.")
		return
	}

	prefs := models.Preferences{Genres: genres, Artists: artists}
	a.writeJSON(w, http.StatusOK, map[string][]models.Song{
		"recommendations": a.engine.Recommend(prefs, songType),
	})
}

func (a *API) preferences(w http.ResponseWriter, r *http.Request) {
	if a.platforms == nil {
		a.writeError(w, http.StatusNotFound, "No platforms configured.")
		return
	}

	query := r.URL.Query()
	name := query.Get("platform")
	if name == "" {
		a.writeError(w, http.StatusBadRequest, "Missing parameter: 'platform'")
		return
	}

	code := query.Get("code")
	if code == "" {
		a.writeError(w, http.StatusBadRequest, "No code provided.")
		return
	}

	platform, err := a.platforms(name)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown platform: %q", name))
		return
	}

	ctx := r.Context()
	if err := platform.Authenticate(ctx, map[string]string{"auth_code": code}); err != nil {
		a.writeError(w, http.StatusBadRequest, "Failed to get the token.")
		return
	}

	activity, err := platform.Recent(ctx)
	if err != nil {
		a.logger.Error("failed to fetch platform activity", "platform", platform.Name(), "error", err)
		a.writeError(w, http.StatusBadGateway, "Failed to fetch platform activity.")
		return
	}

	prefs, err := a.engine.InferPreferences(activity)
	switch {
	case errors.Is(err, shared.ErrInsufficientData):
		prefs = models.Preferences{Genres: []string{}, Artists: []string{}}
	case err != nil:
		a.writeError(w, http.StatusInternalServerError, "Failed to infer preferences.")
		return
	}

	if prefs.Genres == nil {
		prefs.Genres = []string{}
	}
	if prefs.Artists == nil {
		prefs.Artists = []string{}
	}

	a.writeJSON(w, http.StatusOK, map[string]models.Preferences{"preferences": prefs})
}
