package framework

import (
	"context"
	"path/filepath"
)

const manualBlockMarker = "zshup: powerlevel10k"

const manualBlock = `source ~/powerlevel10k/powerlevel10k.zsh-theme
`

// ManualInstaller clones the theme straight into the home directory and
// sources it from the startup file, with no framework in between.
type ManualInstaller struct {
	baseInstaller
}

func (i *ManualInstaller) Strategy() Strategy {
	return StrategyManual
}

func (i *ManualInstaller) Install(ctx context.Context) error {
	dest := filepath.Join(i.home, "powerlevel10k")
	if err := i.cloneTheme(ctx, dest); err != nil {
		return err
	}
	return i.editor.EnsureBlock(manualBlockMarker, manualBlock)
}
