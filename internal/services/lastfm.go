// Last.fm tag lookup, the production [TagSource]
//
// Last.fm has no OAuth dance for read-only tag data; requests carry an API
// key. Calls are paced with a [rate.Limiter] because the client fires once
// per top track.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spindle-fm/spindle/internal/shared"
	"golang.org/x/time/rate"
)

const (
	lastFMBaseURL = "http://ws.audioscrobbler.com/2.0/"

	// Last.fm asks clients to stay under 5 requests per second.
	defaultLastFMRate = 5.0
)

// LastFMService looks up community tags for tracks via the Last.fm API.
type LastFMService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewLastFMService creates a Last.fm client from the configured API key and
// request budget. A zero rate limit falls back to the Last.fm guideline.
func NewLastFMService(cfg shared.LastFMConfig) (*LastFMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("lastfm: %w", shared.ErrMissingCredentials)
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultLastFMRate
	}

	return &LastFMService{
		baseURL:    lastFMBaseURL,
		apiKey:     cfg.APIKey,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(limit), 1),
	}, nil
}

// TopTags returns the names of the top community tags for a track, most
// popular first. A track Last.fm does not know yields an empty list, not an
// error.
func (l *LastFMService) TopTags(ctx context.Context, artist, track string) ([]string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("method", "track.gettoptags")
	params.Set("api_key", l.apiKey)
	params.Set("format", "json")
	params.Set("artist", artist)
	params.Set("track", track)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lastfm API error: status %d", resp.StatusCode)
	}

	// Unknown tracks come back as an error payload with a 200 status, so the
	// toptags key is simply absent.
	var response struct {
		TopTags *struct {
			Tag []struct {
				Name  string `json:"name"`
				Count int    `json:"count"`
			} `json:"tag"`
		} `json:"toptags"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if response.TopTags == nil {
		return nil, nil
	}

	tags := make([]string, 0, len(response.TopTags.Tag))
	for _, tag := range response.TopTags.Tag {
		tags = append(tags, tag.Name)
	}

	return tags, nil
}
