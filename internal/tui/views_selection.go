package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var strategyOptions = []struct {
	label string
	desc  string
}{
	{"Oh My Zsh", "full framework, powerlevel10k as a custom theme"},
	{"Antigen", "lightweight plugin manager, theme via antigen bundle"},
	{"Manual", "bare git clone sourced directly from ~/.zshrc"},
	{"Exit", "leave without changing anything"},
}

func (m Model) viewSelectStrategy() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("How should powerlevel10k be installed?"))
	b.WriteString("\n\n")

	for i, opt := range strategyOptions {
		cursor := "  "
		label := m.styles.Normal.Render(fmt.Sprintf("%d. %s", i+1, opt.label))
		if i == m.selectedStrategy {
			cursor = m.styles.SelectedOption.Render("> ")
			label = m.styles.SelectedOption.Render(fmt.Sprintf("%d. %s", i+1, opt.label))
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
		b.WriteString(fmt.Sprintf("     %s\n", m.styles.Subtle.Render(opt.desc)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Up/Down or 1-4 to choose, Enter to continue"))

	return b.String()
}

func (m Model) updateSelectStrategyState(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.selectedStrategy > 0 {
			m.selectedStrategy--
		}
	case "down", "j":
		if m.selectedStrategy < len(strategyOptions)-1 {
			m.selectedStrategy++
		}
	case "1", "2", "3", "4":
		m.selectedStrategy = int(keyMsg.String()[0] - '1')
	case "enter":
		if m.selectedStrategy == len(strategyOptions)-1 {
			m.aborted = true
			return m, tea.Quit
		}
		m.state = StateFontPrompt
	}
	return m, nil
}
