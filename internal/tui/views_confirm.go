package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewConfirm() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Ready to install"))
	b.WriteString("\n")

	for _, line := range strings.Split(m.plan().Summary(), "\n") {
		b.WriteString("  ")
		b.WriteString(m.styles.Normal.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Bold.Render("Proceed?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Subtle.Render("y/Enter to install, n/Esc to abort"))

	return b.String()
}

func (m Model) updateConfirmState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "enter":
		m.state = StateInstalling
		return m, tea.Batch(m.spinner.Tick, m.startInstall(), m.listenForProgress())
	case "n", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}
