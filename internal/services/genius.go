// Genius API implementation of [Platform]
//
// Walks the user's pyonged songs; each pyonged song contributes its primary
// artist and its community tags to the activity list.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spindle-fm/spindle/internal/models"
	"golang.org/x/oauth2"
)

const (
	geniusAuthURL  = "https://api.genius.com/oauth/authorize"
	geniusTokenURL = "https://api.genius.com/oauth/token"
	geniusBaseURL  = "https://api.genius.com"
)

// GeniusUser represents a Genius account.
type GeniusUser struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GeniusSong represents a Genius song with its tag list.
type GeniusSong struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PrimaryArtist struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"primary_artist"`
	Tags []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"tags"`
}

// geniusEnvelope is the {"meta": ..., "response": ...} wrapper every Genius
// endpoint uses.
type geniusEnvelope struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`
}

type geniusPyong struct {
	PyongableType string `json:"pyongable_type"`
	Pyongable     struct {
		APIPath string `json:"api_path"`
	} `json:"pyongable"`
}

type geniusContributionGroup struct {
	Contributions []geniusPyong `json:"contributions"`
}

// GeniusService implements the Platform interface for Genius API interactions.
type GeniusService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseURL    string
}

// NewGeniusService creates a new Genius platform client with the given
// OAuth2 credentials.
func NewGeniusService(credentials map[string]string) (*GeniusService, error) {
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
		Scopes:       []string{"me", "vote"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  geniusAuthURL,
			TokenURL: geniusTokenURL,
		},
	}

	return &GeniusService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    geniusBaseURL,
	}, nil
}

// Authenticate performs OAuth2 authentication with Genius. Expects either an "access_token" or "auth_code" in credentials.
func (g *GeniusService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		g.token = &oauth2.Token{AccessToken: accessToken}
		g.httpClient = g.config.Client(ctx, g.token)
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := g.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("failed to exchange auth code: %w", err)
		}
		g.token = token
		g.httpClient = g.config.Client(ctx, g.token)
		return nil
	}

	return fmt.Errorf("missing access_token or auth_code in credentials")
}

func (g *GeniusService) Name() string {
	return "Genius"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (g *GeniusService) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(state)
}

// GetOAuthConfig returns the OAuth2 configuration for the callback server.
func (g *GeniusService) GetOAuthConfig() *oauth2.Config {
	return g.config
}

// doRequest performs an authenticated HTTP request and unwraps the Genius
// response envelope into result.
func (g *GeniusService) doRequest(ctx context.Context, method, endpoint string, result interface{}) error {
	if g.token == nil {
		return fmt.Errorf("not authenticated: call Authenticate first")
	}

	apiURL := g.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+g.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("genius API error: status %d", resp.StatusCode)
	}

	var envelope geniusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Response, result); err != nil {
			return fmt.Errorf("failed to decode response payload: %w", err)
		}
	}

	return nil
}

// Account retrieves the authenticated user's profile.
func (g *GeniusService) Account(ctx context.Context) (*GeniusUser, error) {
	var response struct {
		User GeniusUser `json:"user"`
	}
	if err := g.doRequest(ctx, http.MethodGet, "/account", &response); err != nil {
		return nil, err
	}
	return &response.User, nil
}

// Song retrieves a single song by ID.
func (g *GeniusService) Song(ctx context.Context, songID int) (*GeniusSong, error) {
	var response struct {
		Song GeniusSong `json:"song"`
	}
	endpoint := fmt.Sprintf("/songs/%d", songID)
	if err := g.doRequest(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}
	return &response.Song, nil
}

// PyongedSongs retrieves the IDs of the songs the user has pyonged, skipping
// pyongs that target annotations or other non-song objects.
func (g *GeniusService) PyongedSongs(ctx context.Context, userID int) ([]int, error) {
	var response struct {
		ContributionGroups []geniusContributionGroup `json:"contribution_groups"`
	}
	endpoint := fmt.Sprintf("/users/%d/pyongs", userID)
	if err := g.doRequest(ctx, http.MethodGet, endpoint, &response); err != nil {
		return nil, err
	}

	var songIDs []int
	for _, group := range response.ContributionGroups {
		if len(group.Contributions) == 0 {
			continue
		}

		pyong := group.Contributions[0]
		if pyong.PyongableType != "song" {
			continue
		}

		// api_path looks like "/songs/123"
		path := pyong.Pyongable.APIPath
		id, err := strconv.Atoi(path[strings.LastIndex(path, "/")+1:])
		if err != nil {
			continue
		}
		songIDs = append(songIDs, id)
	}

	return songIDs, nil
}

// Recent returns one activity entry per pyonged song, carrying the song's
// primary artist and its tag names.
func (g *GeniusService) Recent(ctx context.Context) ([]models.Activity, error) {
	account, err := g.Account(ctx)
	if err != nil {
		return nil, err
	}

	songIDs, err := g.PyongedSongs(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	var activity []models.Activity
	for _, id := range songIDs {
		song, err := g.Song(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pyonged song %d: %w", id, err)
		}

		entry := models.Activity{Artist: song.PrimaryArtist.Name}
		for _, tag := range song.Tags {
			entry.Tags = append(entry.Tags, tag.Name)
		}
		activity = append(activity, entry)
	}

	return activity, nil
}
