package tui

import (
	"github.com/charmbracelet/lipgloss"
)

type AppTheme struct {
	Primary    string
	Secondary  string
	Accent     string
	Text       string
	Subtle     string
	Error      string
	Warning    string
	Success    string
	Background string
}

func TealTheme() AppTheme {
	return AppTheme{
		Primary:    "#7fd9c2",
		Secondary:  "#2d5f54",
		Accent:     "#c5f3e6",
		Text:       "#e3e8e6",
		Subtle:     "#9fb3ad",
		Error:      "#ffb4ab",
		Warning:    "#eec98a",
		Success:    "#7fd9c2",
		Background: "#121715",
	}
}

func NewStyles(theme AppTheme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)).
			Bold(true).
			MarginLeft(1).
			MarginBottom(1),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)),

		Bold: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Text)).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Error)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Warning)),

		SpinnerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Primary)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)).
			Bold(true),

		SelectedOption: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Bold(true),
	}
}

type Styles struct {
	Title          lipgloss.Style
	Normal         lipgloss.Style
	Bold           lipgloss.Style
	Subtle         lipgloss.Style
	Warning        lipgloss.Style
	Error          lipgloss.Style
	SpinnerStyle   lipgloss.Style
	Success        lipgloss.Style
	SelectedOption lipgloss.Style
}
