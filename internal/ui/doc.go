// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing recommendations:
//  1. [GenreSelectView] : Toggle genres from the catalog's genre universe
//  2. [SongListView] : Review the sampled recommendations, reshuffle for a new draw
//  3. [SongDetailView] : Inspect a single song's metadata and audio availability
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern. Because the
// recommendation engine is entirely in memory, sampling runs inside a tea.Cmd and reports back
// through a single message type rather than a progress channel.
//
// Keyboard navigation uses vim-style bindings (j/k, space, enter, esc, r, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
