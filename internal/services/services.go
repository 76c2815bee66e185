// package services defines interface Platform for reading listening
// activity from HTTP APIs
//
// Spotify, Genius, Last.fm (tags only)
package services

import (
	"context"

	"github.com/spindle-fm/spindle/internal/models"
	"golang.org/x/oauth2"
)

// Platform defines the interface for music platforms the preference
// inferencer can read a user's listening activity from.
type Platform interface {
	// Authenticate performs OAuth or token authentication with the platform.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Recent retrieves the user's recent listening activity, one entry per
	// song or artist the platform reports.
	Recent(ctx context.Context) ([]models.Activity, error)

	// Name returns the name of the platform (e.g., "Spotify", "Genius")
	Name() string
}

// OAuthPlatform is a [Platform] that authorizes users through the OAuth2
// authorization code flow.
type OAuthPlatform interface {
	Platform

	// GetAuthURL returns the authorization URL the user opens in a browser.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config so a local callback
	// server can exchange the authorization code.
	GetOAuthConfig() *oauth2.Config
}

// TagSource labels a track with community genre tags.
//
// [LastFMService] is the production implementation; tests substitute their
// own.
type TagSource interface {
	TopTags(ctx context.Context, artist, track string) ([]string, error)
}
