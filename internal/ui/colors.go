package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Overlay stylesheet. The accent tracks the storefront brand color; status
// styles map onto the search session states rendered in the status line.
var styles = newStyles()

type stylesheet struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func newStyles() stylesheet {
	accent := lipgloss.Color("#5A56E0")
	return stylesheet{
		title: lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71")).Bold(true),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F39C12")),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#767676")).Italic(true),
	}
}
