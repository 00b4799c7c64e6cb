package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/framework"
	"github.com/germanex3000-hacker/zshup/internal/installer"
	"github.com/germanex3000-hacker/zshup/internal/platform"
)

type Model struct {
	version      string
	orchestrator *installer.Orchestrator
	runner       cmdrun.Runner

	state    ApplicationState
	styles   Styles
	spinner  spinner.Model
	width    int
	height   int
	aborted  bool
	fatalErr error

	platform    platform.Platform
	platformSet bool

	selectedStrategy int
	installFont      bool
	fontCursor       int

	logChan      chan string
	progressChan chan installer.ProgressMsg
	progress     installer.ProgressMsg
	logs         []string
	report       *installer.Report
}

func NewModel(version string, orchestrator *installer.Orchestrator, runner cmdrun.Runner, logChan chan string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	styles := NewStyles(TealTheme())
	s.Style = styles.SpinnerStyle

	return Model{
		version:      version,
		orchestrator: orchestrator,
		runner:       runner,
		state:        StateWelcome,
		styles:       styles,
		spinner:      s,
		logChan:      logChan,
		progressChan: make(chan installer.ProgressMsg, 64),
	}
}

// FatalErr is inspected by main after the program exits to pick the
// process exit code.
func (m Model) FatalErr() error {
	return m.fatalErr
}

// Aborted reports a user-initiated abort; exit 0, nothing was touched.
func (m Model) Aborted() bool {
	return m.aborted
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.detectPlatform(), m.listenForLogs())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case logMsg:
		m.logs = appendCapped(m.logs, msg.message, 50)
		return m, m.listenForLogs()
	}

	switch m.state {
	case StateWelcome:
		return m.updateWelcomeState(msg)
	case StateSelectStrategy:
		return m.updateSelectStrategyState(msg)
	case StateFontPrompt:
		return m.updateFontPromptState(msg)
	case StateConfirm:
		return m.updateConfirmState(msg)
	case StateInstalling:
		return m.updateInstallingState(msg)
	case StateComplete, StateError:
		return m.updateFinalState(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case StateWelcome:
		return m.viewWelcome()
	case StateSelectStrategy:
		return m.viewSelectStrategy()
	case StateFontPrompt:
		return m.viewFontPrompt()
	case StateConfirm:
		return m.viewConfirm()
	case StateInstalling:
		return m.viewInstalling()
	case StateComplete:
		return m.viewComplete()
	case StateError:
		return m.viewError()
	default:
		return m.viewWelcome()
	}
}

func (m Model) plan() installer.Plan {
	return installer.Plan{
		Platform:    m.platform,
		Strategy:    framework.Strategy(m.selectedStrategy),
		InstallFont: m.installFont,
	}
}

func (m Model) detectPlatform() tea.Cmd {
	return func() tea.Msg {
		return platformDetectedMsg{platform: platform.Detect(context.Background(), m.runner)}
	}
}

func (m Model) listenForLogs() tea.Cmd {
	if m.logChan == nil {
		return nil
	}
	return func() tea.Msg {
		message, ok := <-m.logChan
		if !ok {
			return nil
		}
		return logMsg{message: message}
	}
}

func (m Model) listenForProgress() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return installProgressMsg{progress: msg}
	}
}

func (m Model) startInstall() tea.Cmd {
	plan := m.plan()
	progressChan := m.progressChan
	orchestrator := m.orchestrator
	return func() tea.Msg {
		report, err := orchestrator.Execute(context.Background(), plan, progressChan)
		return installFinishedMsg{report: report, err: err}
	}
}

func appendCapped(lines []string, line string, max int) []string {
	lines = append(lines, line)
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return lines
}
