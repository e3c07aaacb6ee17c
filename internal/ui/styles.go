package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// StyleManager encapsulates all styles used on the terminal
type StyleManager struct {
	// Browser list styles
	Section  lipgloss.Style
	Name     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style

	// Preview styles
	PreviewSection lipgloss.Style
	PreviewName    lipgloss.Style
	PreviewLink    lipgloss.Style

	// Chrome styles
	Divider lipgloss.Style

	// Diagnostics
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Section:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Name:           lipgloss.NewStyle(),
		Selected:       lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:         lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:            lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PreviewSection: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		PreviewName:    lipgloss.NewStyle().Bold(true),
		PreviewLink:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Underline(true),
		Divider:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Info:           lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Warn:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Error:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		SelectedBg:     lipgloss.Color("236"),
	}
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// Global style manager instance
var styles = DefaultStyles()
