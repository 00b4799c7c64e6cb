package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewFontPrompt() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Install the MesloLGS Nerd Font?"))
	b.WriteString("\n")

	desc := "powerlevel10k looks best with MesloLGS NF. The four ttf variants\nwill be downloaded into your user font directory."
	b.WriteString(m.styles.Normal.Render(desc))
	b.WriteString("\n\n")

	options := []string{"Yes, download the font", "No, skip it"}
	for i, opt := range options {
		cursor := "  "
		label := m.styles.Normal.Render(opt)
		if i == m.fontCursor {
			cursor = m.styles.SelectedOption.Render("> ")
			label = m.styles.SelectedOption.Render(opt)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
	}

	if !m.platform.SupportsFontDownload() {
		b.WriteString("\n")
		warn := fmt.Sprintf("Automatic download is not available on %s; you will get manual instructions instead.", m.platform)
		b.WriteString(m.styles.Warning.Render(warn))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Up/Down to choose, Enter to continue"))

	return b.String()
}

func (m Model) updateFontPromptState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k", "down", "j":
		m.fontCursor = 1 - m.fontCursor
	case "y":
		m.fontCursor = 0
		m.installFont = true
		m.state = StateConfirm
	case "n":
		m.fontCursor = 1
		m.installFont = false
		m.state = StateConfirm
	case "enter":
		m.installFont = m.fontCursor == 0
		m.state = StateConfirm
	}
	return m, nil
}
