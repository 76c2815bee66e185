// Spotify API implementation of [Platform]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spindle-fm/spindle/internal/models"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	topTracksLimit  = 20
	topArtistsLimit = 5
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Genres []string       `json:"genres"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	DurationMS int             `json:"duration_ms"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// SpotifyTopTracks represents a paginated response from the top tracks
// endpoint.
type SpotifyTopTracks struct {
	Items  []SpotifyTrack `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Next   *string        `json:"next"`
}

// SpotifyTopArtists represents a paginated response from the top artists
// endpoint.
type SpotifyTopArtists struct {
	Items  []SpotifyArtist `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Next   *string         `json:"next"`
}

// SpotifyService implements the Platform interface for Spotify API interactions.
// Uses [oauth2] for authentication and reads the user's short-term listening
// history. Track tags come from the configured [TagSource] since Spotify does
// not expose per-track genres.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
	tags       TagSource
}

// NewSpotifyService creates a new Spotify platform client with the given
// OAuth2 credentials. tags may be nil, in which case activity entries carry
// artist names only.
func NewSpotifyService(credentials map[string]string, tags TagSource) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-read-private",
			"user-top-read",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
		tags:       tags,
	}, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.token = &oauth2.Token{AccessToken: accessToken}
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("failed to exchange auth code: %w", err)
		}
		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	return fmt.Errorf("missing access_token or auth_code in credentials")
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig returns the OAuth2 configuration for the callback server.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, result interface{}) error {
	if s.token == nil {
		return fmt.Errorf("not authenticated: call Authenticate first")
	}

	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("spotify API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// TopTracks retrieves the user's top tracks over the given time range
// ("short_term", "medium_term" or "long_term").
func (s *SpotifyService) TopTracks(ctx context.Context, timeRange string, limit int) (*SpotifyTopTracks, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	if timeRange == "" {
		timeRange = "short_term"
	}

	endpoint := fmt.Sprintf("/me/top/tracks?time_range=%s&limit=%d", timeRange, limit)

	var response SpotifyTopTracks
	if err := s.doRequest(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// TopArtists retrieves the user's top artists.
func (s *SpotifyService) TopArtists(ctx context.Context, limit int) (*SpotifyTopArtists, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/me/top/artists?limit=%d", limit)

	var response SpotifyTopArtists
	if err := s.doRequest(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// Recent returns the user's short-term top tracks and top artists as
// activity entries. Each track entry names the track's first artist and
// carries the tags the TagSource reports for it; each top artist gets a
// tagless entry so artist preferences survive even when no tags resolve.
func (s *SpotifyService) Recent(ctx context.Context) ([]models.Activity, error) {
	tracks, err := s.TopTracks(ctx, "short_term", topTracksLimit)
	if err != nil {
		return nil, err
	}

	artists, err := s.TopArtists(ctx, topArtistsLimit)
	if err != nil {
		return nil, err
	}

	var activity []models.Activity
	for _, track := range tracks.Items {
		if len(track.Artists) == 0 {
			continue
		}

		entry := models.Activity{Artist: track.Artists[0].Name}
		if s.tags != nil {
			tags, err := s.tags.TopTags(ctx, entry.Artist, track.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to tag track %q: %w", track.Name, err)
			}
			entry.Tags = tags
		}
		activity = append(activity, entry)
	}

	for _, artist := range artists.Items {
		activity = append(activity, models.Activity{Artist: artist.Name})
	}

	return activity, nil
}
