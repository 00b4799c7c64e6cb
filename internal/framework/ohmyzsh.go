package framework

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const omzInstallURL = "https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh"

// OhMyZshInstaller clones the theme into the Oh My Zsh custom themes
// directory and rewrites the ZSH_THEME line, bootstrapping Oh My Zsh first
// when it is not present yet.
type OhMyZshInstaller struct {
	baseInstaller
}

func (i *OhMyZshInstaller) Strategy() Strategy {
	return StrategyOhMyZsh
}

func (i *OhMyZshInstaller) Install(ctx context.Context) error {
	if err := i.ensureOhMyZsh(ctx); err != nil {
		return err
	}

	themeDir := filepath.Join(i.customDir(), "themes", "powerlevel10k")
	if err := i.cloneTheme(ctx, themeDir); err != nil {
		return err
	}

	return i.editor.SetTheme("powerlevel10k/powerlevel10k")
}

// customDir honors the ZSH_CUSTOM override Oh My Zsh users set for
// out-of-tree plugins and themes.
func (i *OhMyZshInstaller) customDir() string {
	if custom := os.Getenv("ZSH_CUSTOM"); custom != "" {
		return custom
	}
	return filepath.Join(i.home, ".oh-my-zsh", "custom")
}

func (i *OhMyZshInstaller) ensureOhMyZsh(ctx context.Context) error {
	omzDir := filepath.Join(i.home, ".oh-my-zsh")
	if i.dirExists(omzDir) {
		return nil
	}

	i.log("Oh My Zsh not found, running its bootstrap script...")
	script := fmt.Sprintf(`RUNZSH=no CHSH=no KEEPZSHRC=yes sh -c "$(curl -fsSL %s)"`, omzInstallURL)
	res, err := i.runner.Run(ctx, "sh", "-c", script)
	if err != nil {
		return fmt.Errorf("oh-my-zsh bootstrap failed: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("oh-my-zsh bootstrap exited with status %d: %s", res.ExitCode, res.Output)
	}

	if !i.dirExists(omzDir) {
		return fmt.Errorf("oh-my-zsh bootstrap reported success but %s is missing", omzDir)
	}
	return nil
}
