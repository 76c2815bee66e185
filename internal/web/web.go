// Package web implements an HTMX-based web application mirroring the TUI functionality.
//
// # HTMX Web Application Implementation Plan
//
// # Architecture
//
// The web app replicates the three-view TUI workflow using server-side rendering
// with HTMX for dynamic updates. Each view corresponds to a template and handler:
//
//  1. Genre Picker: Server-rendered checkbox grid with hx-post to sample
//  2. Song List: HTMX partial swap showing the sampled batch + reshuffle button
//  3. Song Detail: Modal partial with genres, external ids, and audio links
//
// Core Components
//
//   - HTTP Server: net/http server with html/template rendering
//   - Engine Integration: Uses the same recommender.Recommender and tasks.ExportEngine as the TUI
//   - Session Management: Cookie-based sessions for OAuth state when inferring preferences
//   - SSE Handler: Streams real-time progress during batch exports
//
// Routes
//
//	GET  /                       → Genre picker view
//	POST /recommend              → HTMX partial: sampled song list
//	GET  /songs/{id}             → HTMX partial: song detail
//	GET  /auth/spotify           → OAuth initiation for preference inference
//	GET  /auth/spotify/callback  → OAuth completion
//	POST /export                 → Start batch export, return SSE endpoint
//	GET  /export/{id}/stream     → SSE progress stream
//	GET  /export/{id}/result     → Final manifest view
//
// Templates
//
//   - base.html: Layout with navigation and auth status
//   - genres.html: Checkbox grid with hx-post on submit
//   - songs.html: Partial template for the sampled batch
//   - detail.html: Partial template for one song's availability
//   - progress.html: SSE consumer with progress bar
//
// # State Management
//
// Unlike the TUI's in-memory state, the web app persists state in:
//   - Session cookies: OAuth tokens for preference inference
//   - In-memory export registry: active ExportEngine runs keyed by id
//   - In-memory channels: SSE connections for active exports
//
// # Progress Streaming
//
// Export progress uses Server-Sent Events:
//  1. POST /export starts an ExportEngine.BulkExport run, returns a run ID
//  2. Client opens SSE connection to /export/{id}/stream
//  3. Handler drains the ProgressUpdate channel as SSE events
//  4. On completion, send "done" event with the manifest URL
//
// Dependencies
//
//   - html/template: Server-side rendering
//   - net/http: HTTP server and SSE
//   - gorilla/sessions or similar: Cookie management
//
// Implementation Tasks
//
//  1. HTTP server setup reusing server.BasicRouter registration
//  2. Template structure with HTMX integration
//  3. Session middleware for OAuth state
//  4. Genre picker handler backed by Recommender.GenreUniverse
//  5. Recommend handler (HTMX partial) with song-type filtering
//  6. Export endpoint wiring tasks.ExportEngine
//  7. SSE handler streaming ProgressUpdate events
//  8. Result handler rendering the export manifest
//  9. OAuth handlers wrapping the existing server.OAuthHandler
//  10. Error handling and validation
//
// # Testing Strategy
//
// Use httptest:
//   - Build the engine over a small in-memory catalog source
//   - Validate HTMX headers and response structure
//   - Test SSE stream formatting against a buffered progress channel
package web
