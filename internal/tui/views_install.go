package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewInstalling() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render("Installing"))
	b.WriteString("\n")

	step := m.progress.Step
	if step == "" {
		step = "Starting..."
	}
	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.styles.Normal.Render(step)))
	b.WriteString("\n")

	b.WriteString(m.renderProgressBar())
	b.WriteString("\n\n")

	tail := m.logs
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	for _, line := range tail {
		b.WriteString("  ")
		b.WriteString(m.styles.Subtle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderProgressBar() string {
	width := 40
	filled := int(m.progress.Progress * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(m.progress.Progress * 100)
	return fmt.Sprintf("  %s %s", m.styles.SpinnerStyle.Render(bar), m.styles.Subtle.Render(fmt.Sprintf("%d%%", pct)))
}

func (m Model) viewComplete() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.Success.Render("Installation complete"))
	b.WriteString("\n\n")

	if m.report != nil {
		if m.report.ZshPath != "" {
			b.WriteString(m.styles.Normal.Render(fmt.Sprintf("zsh: %s", m.report.ZshPath)))
			b.WriteString("\n")
		}
		if m.report.FontMessage != "" {
			b.WriteString(m.styles.Normal.Render(m.report.FontMessage))
			b.WriteString("\n")
		}
		if m.report.FrameworkError != nil {
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Framework setup failed: %v", m.report.FrameworkError)))
			b.WriteString("\n")
		}
		if m.report.DefaultShellError != nil {
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("Default shell not changed: %v", m.report.DefaultShellError)))
			b.WriteString("\n")
		}
		if len(m.report.ManualSteps) > 0 {
			b.WriteString("\n")
			b.WriteString(m.styles.Bold.Render("Next steps:"))
			b.WriteString("\n")
			for _, step := range m.report.ManualSteps {
				b.WriteString(m.styles.Normal.Render(fmt.Sprintf("  • %s", step)))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Press Enter to exit"))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.styles.Error.Render("Installation failed"))
	b.WriteString("\n\n")

	if m.fatalErr != nil {
		b.WriteString(m.styles.Normal.Render(m.fatalErr.Error()))
		b.WriteString("\n")
	}

	tail := m.logs
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	if len(tail) > 0 {
		b.WriteString("\n")
		for _, line := range tail {
			b.WriteString("  ")
			b.WriteString(m.styles.Subtle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("Press Enter to exit"))

	return b.String()
}

func (m Model) updateInstallingState(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case installProgressMsg:
		m.progress = msg.progress
		if msg.progress.LogOutput != "" {
			m.logs = appendCapped(m.logs, msg.progress.LogOutput, 50)
		}
		return m, m.listenForProgress()
	case installFinishedMsg:
		m.report = msg.report
		if msg.err != nil {
			m.fatalErr = msg.err
			m.state = StateError
		} else {
			m.state = StateComplete
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateFinalState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}
