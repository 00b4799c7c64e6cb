package shell

import (
	"context"
	"fmt"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/errdefs"
	"github.com/germanex3000-hacker/zshup/internal/pkgmanager"
)

// Installer ensures the zsh runtime is present and can switch the login
// shell afterward.
type Installer struct {
	runner  cmdrun.Runner
	logChan chan<- string
}

func NewInstaller(runner cmdrun.Runner, logChan chan<- string) *Installer {
	return &Installer{runner: runner, logChan: logChan}
}

func (i *Installer) log(message string) {
	if i.logChan != nil {
		i.logChan <- message
	}
}

// EnsureZsh short-circuits when zsh is already on PATH and otherwise
// delegates to the package manager. Presence on PATH after the install is
// the sole success criterion; the package manager's own exit status is
// not trusted to mean the binary actually landed.
func (i *Installer) EnsureZsh(ctx context.Context, mgr *pkgmanager.Manager) error {
	if path, ok := i.runner.LookPath("zsh"); ok {
		i.log(fmt.Sprintf("zsh already installed at %s", path))
		return nil
	}

	i.log("zsh not found, installing...")
	if err := mgr.Install(ctx, "zsh"); err != nil {
		return errdefs.NewCustomError(errdefs.ErrTypeShellInstallFailed, fmt.Sprintf("zsh installation failed: %v", err))
	}

	if _, ok := i.runner.LookPath("zsh"); !ok {
		return errdefs.NewCustomError(errdefs.ErrTypeShellInstallFailed, "zsh still not on PATH after installation")
	}

	i.log("zsh installed")
	return nil
}

// SetDefault switches the login shell to zsh via chsh. Failure here is a
// warning with a manual remediation hint, never fatal: a cosmetic default
// shell miss does not invalidate the rest of the install the way a missing
// runtime would.
func (i *Installer) SetDefault(ctx context.Context) error {
	zshPath, ok := i.runner.LookPath("zsh")
	if !ok {
		return fmt.Errorf("zsh not on PATH; run 'chsh -s $(which zsh)' manually")
	}

	res, err := i.runner.Run(ctx, "chsh", "-s", zshPath)
	if err != nil {
		return fmt.Errorf("chsh failed: %v; run 'chsh -s %s' manually", err, zshPath)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("chsh exited with status %d; run 'chsh -s %s' manually", res.ExitCode, zshPath)
	}

	i.log(fmt.Sprintf("default shell changed to %s", zshPath))
	return nil
}
