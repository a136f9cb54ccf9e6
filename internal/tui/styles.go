package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles of the search screen.
type Styles struct {
	Prompt      lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Description lipgloss.Style
	Browser     lipgloss.Style
	Status      lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Title:       lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Browser:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}
