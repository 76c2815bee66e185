// Package services defines the [Platform] interface for music listening
// platforms and implements it for Spotify and Genius, plus the Last.fm tag
// lookup that backs Spotify activity.
//
// # Platform Interface
//
// Both platforms implement a common abstraction producing normalized
// [models.Activity] entries, so the preference inferencer never sees
// provider-specific payloads.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token
// refresh. Activity comes from the user's short-term top tracks and top
// artists. Spotify exposes genres per artist but not per track, so each top
// track is labelled through the configured [TagSource].
//
// # Genius Implementation
//
// [GeniusService] walks the user's pyonged songs: account → pyongs → song.
// Each pyonged song contributes its primary artist and community tags.
// Every Genius endpoint wraps its payload in a meta/response envelope,
// which doRequest unwraps before decoding.
//
// # Last.fm
//
// [LastFMService] is not a Platform; it is the production [TagSource].
// Requests are keyed (no OAuth) and paced with a [rate.Limiter] since a
// single Recent call on Spotify can fan out into one tag lookup per track.
//
// # Error Handling
//
// Clients fail fast on missing credentials with [shared.ErrMissingCredentials]
// and report non-2xx responses with the provider name and status code. An
// unknown track on Last.fm is an empty tag list, not an error.
package services
