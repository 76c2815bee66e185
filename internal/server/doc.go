// Package server provides HTTP routing, middleware, and the JSON API over
// the recommendation engine, plus OAuth callback handling for CLI flows.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # JSON API
//
// [API] is a thin adapter: handlers parse and validate query parameters,
// call the engine, and render its results. No recommendation logic lives
// here. Error responses carry a {"detail": ...} body; catalog misses map to
// 404 and invalid input to 400.
//
// The stock middleware chain assembled by [New] tags requests with a UUID
// ([RequestID]), logs one line per request ([Logging]), and sheds load with
// a token bucket ([RateLimit]).
//
// # Preferences Endpoint
//
// GET /preferences bridges to the platform clients in internal/services: it
// exchanges the supplied authorization code, pulls recent listening
// activity, and runs the preference inferencer. Insufficient activity
// renders as an empty preferences object rather than an error.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// When the user runs authentication commands, a temporary HTTP server starts on localhost, handles the callback,
// and shuts down after receiving the OAuth token.
package server
