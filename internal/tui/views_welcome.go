package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewWelcome() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render(fmt.Sprintf("zshup %s", m.version))
	b.WriteString(title)
	b.WriteString("\n")

	if m.platformSet {
		info := fmt.Sprintf("Platform: %s\n", m.platform)
		b.WriteString(m.styles.Normal.Render(info))
		b.WriteString("\n")

		overview := "This will install zsh, the powerlevel10k prompt theme, and optionally\nthe MesloLGS Nerd Font, then wire them into your ~/.zshrc.\n"
		b.WriteString(m.styles.Normal.Render(overview))
		b.WriteString("\n\n")

		help := m.styles.Subtle.Render("Press Enter to choose an installation method, Ctrl+C to quit")
		b.WriteString(help)
	} else {
		loading := m.styles.Normal.Render("Detecting platform...")
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), loading))
	}

	return b.String()
}

func (m Model) updateWelcomeState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if detected, ok := msg.(platformDetectedMsg); ok {
		m.platform = detected.platform
		m.platformSet = true
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if m.platformSet {
				m.state = StateSelectStrategy
			}
		}
	}
	return m, nil
}
