package framework

import (
	"context"
	"fmt"
	"net/http"

	git "github.com/go-git/go-git/v6"
	"github.com/spf13/afero"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/zshrc"
)

// Strategy is one of three mutually exclusive ways to install and register
// the prompt theme. Exactly one runs per invocation.
type Strategy int

const (
	StrategyOhMyZsh Strategy = iota
	StrategyAntigen
	StrategyManual
)

func (s Strategy) String() string {
	switch s {
	case StrategyOhMyZsh:
		return "Oh My Zsh"
	case StrategyAntigen:
		return "Antigen"
	case StrategyManual:
		return "Manual"
	default:
		return "Unknown"
	}
}

const themeRepoURL = "https://github.com/romkatv/powerlevel10k.git"

// Installer applies one framework strategy. Idempotent at the
// already-installed check, not transactional: a failed startup-file edit
// after a successful clone leaves a mixed state with no rollback.
type Installer interface {
	Strategy() Strategy
	Install(ctx context.Context) error
}

// CloneFunc clones url into path.
type CloneFunc func(ctx context.Context, path, url string) error

// Option tweaks an installer; used by tests to stub out cloning.
type Option func(*baseInstaller)

func WithCloner(clone CloneFunc) Option {
	return func(b *baseInstaller) { b.clone = clone }
}

// NewInstaller builds the installer for the chosen strategy.
func NewInstaller(strategy Strategy, fs afero.Fs, runner cmdrun.Runner, editor *zshrc.Editor, home string, logChan chan<- string, opts ...Option) (Installer, error) {
	base := baseInstaller{fs: fs, runner: runner, editor: editor, home: home, logChan: logChan, clone: gitClone}
	for _, opt := range opts {
		opt(&base)
	}
	switch strategy {
	case StrategyOhMyZsh:
		return &OhMyZshInstaller{baseInstaller: base}, nil
	case StrategyAntigen:
		return &AntigenInstaller{baseInstaller: base, client: http.DefaultClient, scriptURL: antigenURL}, nil
	case StrategyManual:
		return &ManualInstaller{baseInstaller: base}, nil
	default:
		return nil, fmt.Errorf("unknown framework strategy: %d", strategy)
	}
}

type baseInstaller struct {
	fs      afero.Fs
	runner  cmdrun.Runner
	editor  *zshrc.Editor
	home    string
	logChan chan<- string
	clone   CloneFunc
}

func (b *baseInstaller) log(message string) {
	if b.logChan != nil {
		b.logChan <- message
	}
}

func (b *baseInstaller) dirExists(path string) bool {
	info, err := b.fs.Stat(path)
	return err == nil && info.IsDir()
}

// gitClone is the default CloneFunc: a depth-1 go-git clone onto the real
// filesystem.
func gitClone(ctx context.Context, path, url string) error {
	_, err := git.PlainCloneContext(ctx, path, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	return err
}

func (b *baseInstaller) cloneTheme(ctx context.Context, dest string) error {
	if b.dirExists(dest) {
		b.log(fmt.Sprintf("%s already exists, skipping clone", dest))
		return nil
	}

	b.log(fmt.Sprintf("Cloning %s into %s", themeRepoURL, dest))
	if err := b.clone(ctx, dest, themeRepoURL); err != nil {
		return fmt.Errorf("failed to clone powerlevel10k: %w", err)
	}
	return nil
}
