package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Filter      lipgloss.Style
	FilterLabel lipgloss.Style
	Main        lipgloss.Style
	Name        lipgloss.Style
	Region      lipgloss.Style
	Count       lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Loading     lipgloss.Style
	Empty       lipgloss.Style
	Section     lipgloss.Style
	Link        lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		FilterLabel: lipgloss.NewStyle().Bold(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Name:        lipgloss.NewStyle().Bold(true),
		Region:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // blue
		Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		Empty:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		Link: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Help: lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
