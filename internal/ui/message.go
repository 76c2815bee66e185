package ui

import "github.com/spindle-fm/spindle/internal/models"

// recommendationsMsg carries a freshly sampled batch of songs back into the
// update loop. Sampling is randomized, so every message may differ even for
// the same preferences.
type recommendationsMsg struct {
	songs []models.Song
}
