package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/spindle-fm/spindle/internal/models"
)

var (
	_ list.Item = genreItem{}
	_ list.Item = songItem{}
)

// genreItem wraps a genre name plus its selection state to implement [list.Item].
type genreItem struct {
	name     string
	selected bool
}

func (i genreItem) FilterValue() string { return i.name }
func (i genreItem) Title() string {
	if i.selected {
		return fmt.Sprintf("[x] %s", i.name)
	}
	return fmt.Sprintf("[ ] %s", i.name)
}
func (i genreItem) Description() string {
	if i.selected {
		return "selected"
	}
	return ""
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Name }
func (i songItem) Title() string       { return i.song.Name }
func (i songItem) Description() string {
	desc := i.song.Artist
	if len(i.song.Genres) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, strings.Join(i.song.Genres, ", "))
	}
	return desc
}
