package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/recommender"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GenreSelectView ViewState = iota
	SongListView
	SongDetailView
)

// Model represents the TUI application state.
type Model struct {
	view     ViewState
	engine   *recommender.Recommender
	songType models.SongType
	width    int
	height   int

	genreList list.Model
	songList  list.Model
	selected  *models.Song
	notice    string

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over a ready recommendation engine.
func NewModel(engine *recommender.Recommender, songType models.SongType) *Model {
	if songType == "" {
		songType = models.SongTypeAny
	}

	genres := engine.GenreUniverse()
	items := make([]list.Item, len(genres))
	for i, g := range genres {
		items[i] = genreItem{name: g}
	}

	genreList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	genreList.Title = "Pick Genres"
	genreList.SetFilteringEnabled(false)

	return &Model{
		view:      GenreSelectView,
		engine:    engine,
		songType:  songType,
		genreList: genreList,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init performs no startup work; the catalog is already in memory.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.genreList.SetSize(msg.Width-4, msg.Height-8)
		m.songList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GenreSelectView:
			return m.handleGenreKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case SongDetailView:
			return m.handleDetailKeys(msg)
		}

	case recommendationsMsg:
		if len(msg.songs) == 0 {
			m.view = GenreSelectView
			m.notice = "No songs match that combination. Try fewer genres."
			return m, nil
		}
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = fmt.Sprintf("Recommendations: %s", strings.Join(m.pickedGenres(), ", "))
		m.songList.SetFilteringEnabled(false)
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = SongListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case GenreSelectView:
		return m.renderGenreSelect()
	case SongListView:
		return m.renderSongList()
	case SongDetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleGenreKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		idx := m.genreList.Index()
		if item, ok := m.genreList.SelectedItem().(genreItem); ok {
			item.selected = !item.selected
			m.notice = ""
			return m, m.genreList.SetItem(idx, item)
		}
	case "enter":
		if len(m.pickedGenres()) == 0 {
			m.notice = "Select at least one genre first."
			return m, nil
		}
		m.notice = ""
		return m, m.recommend()
	}

	var cmd tea.Cmd
	m.genreList, cmd = m.genreList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = GenreSelectView
		return m, nil
	case "r":
		return m, m.recommend()
	case "enter":
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			song := item.song
			m.selected = &song
			m.view = SongDetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = SongListView
		m.selected = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case GenreSelectView:
		m.genreList, cmd = m.genreList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

// pickedGenres returns the currently toggled genres in list order.
func (m *Model) pickedGenres() []string {
	var picked []string
	for _, item := range m.genreList.Items() {
		if gi, ok := item.(genreItem); ok && gi.selected {
			picked = append(picked, gi.name)
		}
	}
	return picked
}

func (m *Model) recommend() tea.Cmd {
	prefs := models.Preferences{Genres: m.pickedGenres()}
	return func() tea.Msg {
		return recommendationsMsg{songs: m.engine.Recommend(prefs, m.songType)}
	}
}

func (m *Model) renderGenreSelect() string {
	helpKeys := []key.Binding{m.keys.toggle, m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	out := fmt.Sprintf("%s\n\n%s", m.genreList.View(), helpView)
	if m.notice != "" {
		out = fmt.Sprintf("%s\n%s", out, styles.warn.Render(m.notice))
	}
	return out
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.reshuffle, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.selected == nil {
		return styles.err.Render("No song selected\n\nPress esc to go back")
	}

	song := m.selected
	title := styles.title.Render(fmt.Sprintf("%s - %s", song.Artist, song.Name))

	lines := []string{
		fmt.Sprintf("Genres: %s", strings.Join(song.Genres, ", ")),
	}
	if song.ExternalID != nil {
		lines = append(lines, fmt.Sprintf("External ID: %s", *song.ExternalID))
	}
	if song.ISRC != nil {
		lines = append(lines, fmt.Sprintf("ISRC: %s", *song.ISRC))
	}
	switch {
	case song.PreviewURL != nil && song.DownloadURL != nil:
		lines = append(lines, styles.ok.Render("Available: preview, full"))
		lines = append(lines, fmt.Sprintf("Preview: %s", *song.PreviewURL))
		lines = append(lines, fmt.Sprintf("Full: %s", *song.DownloadURL))
	case song.PreviewURL != nil:
		lines = append(lines, styles.ok.Render("Available: preview"))
		lines = append(lines, fmt.Sprintf("Preview: %s", *song.PreviewURL))
	case song.DownloadURL != nil:
		lines = append(lines, styles.ok.Render("Available: full"))
		lines = append(lines, fmt.Sprintf("Full: %s", *song.DownloadURL))
	default:
		lines = append(lines, styles.warn.Render("No audio files on record"))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, strings.Join(lines, "\n"), helpView)
}
