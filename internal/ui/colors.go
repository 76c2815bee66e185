package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// styles holds the shared palette for the browser views: the detail-view
// title, and the ok/warn/err accents used for audio availability lines.
var styles = newPalette("#7D56F4", "#04B575", "#FFA500", "#FF0000")

type palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
}

func newPalette(title, ok, warn, err string) *palette {
	return &palette{
		title: bold(title).MarginBottom(1),
		ok:    bold(ok),
		warn:  fg(warn),
		err:   bold(err),
	}
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func bold(color string) lipgloss.Style {
	return fg(color).Bold(true)
}
