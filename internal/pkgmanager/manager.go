package pkgmanager

import (
	"context"
	"fmt"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/errdefs"
)

// Kind identifies a known system package manager.
type Kind int

const (
	KindApt Kind = iota
	KindDnf
	KindPacman
	KindZypper
	KindBrew
)

func (k Kind) String() string {
	switch k {
	case KindApt:
		return "apt"
	case KindDnf:
		return "dnf"
	case KindPacman:
		return "pacman"
	case KindZypper:
		return "zypper"
	case KindBrew:
		return "brew"
	default:
		return "unknown"
	}
}

// detectionOrder is the fixed priority order; the first executable found
// on PATH wins and there is no fallback cascade if its install fails.
var detectionOrder = []Kind{KindApt, KindDnf, KindPacman, KindZypper, KindBrew}

// Manager installs packages through one detected system package manager.
type Manager struct {
	kind    Kind
	runner  cmdrun.Runner
	logChan chan<- string
}

// Detect returns a Manager for the first known package manager present on
// PATH, or ErrTypeNoPackageManager when none of the five candidates match.
func Detect(runner cmdrun.Runner, logChan chan<- string) (*Manager, error) {
	for _, kind := range detectionOrder {
		if _, ok := runner.LookPath(kind.String()); ok {
			return &Manager{kind: kind, runner: runner, logChan: logChan}, nil
		}
	}
	return nil, errdefs.NewCustomError(errdefs.ErrTypeNoPackageManager, "no supported package manager found (tried apt, dnf, pacman, zypper, brew)")
}

func (m *Manager) Kind() Kind {
	return m.kind
}

func (m *Manager) log(message string) {
	if m.logChan != nil {
		m.logChan <- message
	}
}

// Install issues a single non-interactive install command for the package.
// One attempt only; a failed install is reported, never retried.
func (m *Manager) Install(ctx context.Context, pkg string) error {
	name, args := m.installCommand(pkg)

	m.log(fmt.Sprintf("Installing %s via %s", pkg, m.kind))

	res, err := m.runner.Run(ctx, name, args...)
	if err != nil {
		m.log(fmt.Sprintf("ERROR: %s invocation failed: %v", m.kind, err))
		return fmt.Errorf("failed to run %s: %w", m.kind, err)
	}
	if res.ExitCode != 0 {
		m.log(fmt.Sprintf("Package installation failed: %s", res.Output))
		return fmt.Errorf("%s install %s exited with status %d", m.kind, pkg, res.ExitCode)
	}

	m.log(fmt.Sprintf("%s installed via %s", pkg, m.kind))
	return nil
}

func (m *Manager) installCommand(pkg string) (string, []string) {
	switch m.kind {
	case KindApt:
		return "sudo", []string{"apt", "install", "-y", pkg}
	case KindDnf:
		return "sudo", []string{"dnf", "install", "-y", pkg}
	case KindPacman:
		return "sudo", []string{"pacman", "-S", "--noconfirm", pkg}
	case KindZypper:
		return "sudo", []string{"zypper", "install", "-y", pkg}
	case KindBrew:
		// Homebrew refuses to run under sudo.
		return "brew", []string{"install", pkg}
	default:
		return "", nil
	}
}
