package installer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/framework"
	"github.com/germanex3000-hacker/zshup/internal/platform"
)

type consoleFixture struct {
	fs     afero.Fs
	runner *cmdrun.FakeRunner
	o      *Orchestrator
	out    bytes.Buffer
	clones []string
}

func newConsoleFixture(t *testing.T, zshrcContent string) *consoleFixture {
	t.Helper()
	f := &consoleFixture{
		fs:     afero.NewMemMapFs(),
		runner: cmdrun.NewFakeRunner(),
	}
	require.NoError(t, afero.WriteFile(f.fs, home+"/.zshrc", []byte(zshrcContent), 0644))

	f.o = New(f.fs, f.runner, home, nil)
	f.o.geteuid = func() int { return 1000 }
	f.o.newFramework = func(s framework.Strategy) (framework.Installer, error) {
		return framework.NewInstaller(s, f.fs, f.runner, f.o.Editor(), home, nil,
			framework.WithCloner(func(_ context.Context, path, _ string) error {
				f.clones = append(f.clones, path)
				return f.fs.MkdirAll(path, 0755)
			}))
	}
	return f
}

func (f *consoleFixture) run(t *testing.T, input string) int {
	t.Helper()
	console := NewConsole(f.o, strings.NewReader(input), &f.out)
	return console.Run(context.Background(), platform.Linux)
}

func (f *consoleFixture) zshrc(t *testing.T) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, home+"/.zshrc")
	require.NoError(t, err)
	return string(data)
}

func TestConsoleExitOptionLeavesEverythingUntouched(t *testing.T) {
	f := newConsoleFixture(t, "ZSH_THEME=\"robbyrussell\"\n")

	code := f.run(t, "4\n")

	assert.Equal(t, 0, code)
	assert.Empty(t, f.runner.Calls)
	assert.Empty(t, f.clones)
	assert.Equal(t, "ZSH_THEME=\"robbyrussell\"\n", f.zshrc(t))
}

func TestConsoleInvalidSelectionIsFatal(t *testing.T) {
	f := newConsoleFixture(t, "")

	code := f.run(t, "7\n")

	assert.Equal(t, 1, code)
	assert.Contains(t, f.out.String(), "invalid selection")
	assert.Empty(t, f.runner.Calls)
}

func TestConsoleDeclinedConfirmationAborts(t *testing.T) {
	for _, answer := range []string{"n", "no", "", "maybe"} {
		t.Run("answer="+answer, func(t *testing.T) {
			original := "ZSH_THEME=\"robbyrussell\"\nplugins=(git)\n"
			f := newConsoleFixture(t, original)

			code := f.run(t, "1\ny\n"+answer+"\n")

			assert.Equal(t, 0, code)
			assert.Contains(t, f.out.String(), "Aborted")
			// byte-for-byte unchanged, no subprocesses, no clones
			assert.Equal(t, original, f.zshrc(t))
			assert.Empty(t, f.runner.Calls)
			assert.Empty(t, f.clones)
		})
	}
}

func TestConsoleFontAnswerParsesLeniently(t *testing.T) {
	f := newConsoleFixture(t, "")
	// garbage font answer means "no", then decline the confirmation
	code := f.run(t, "3\nwhatever\nn\n")

	assert.Equal(t, 0, code)
	assert.Contains(t, f.out.String(), "Nerd Font: no")
}

func TestConsoleRefusesRoot(t *testing.T) {
	f := newConsoleFixture(t, "")
	f.o.geteuid = func() int { return 0 }

	code := f.run(t, "")

	assert.Equal(t, 1, code)
	assert.Contains(t, f.out.String(), "refusing to run as root")
	assert.Empty(t, f.runner.Calls)
}

// Full scenario: Linux, apt present, zsh absent, Oh My Zsh strategy, no
// font, confirmed. Expects one apt install, a clone into the themes
// subdirectory, the theme line rewritten, a .bak copy, and chsh run.
func TestConsoleFullOhMyZshScenario(t *testing.T) {
	t.Setenv("ZSH_CUSTOM", "")
	f := newConsoleFixture(t, "ZSH_THEME=\"robbyrussell\"\n")
	require.NoError(t, f.fs.MkdirAll(home+"/.oh-my-zsh/custom", 0755))

	fake := f.runner
	fake.Binaries["apt"] = "/usr/bin/apt"
	installed := false
	runner := &pathAfterInstallRunner{FakeRunner: fake, installed: &installed}

	f.o = New(f.fs, runner, home, nil)
	f.o.geteuid = func() int { return 1000 }
	f.o.newFramework = func(s framework.Strategy) (framework.Installer, error) {
		return framework.NewInstaller(s, f.fs, runner, f.o.Editor(), home, nil,
			framework.WithCloner(func(_ context.Context, path, _ string) error {
				f.clones = append(f.clones, path)
				return f.fs.MkdirAll(path, 0755)
			}))
	}

	code := f.run(t, "1\nn\ny\n")
	require.Equal(t, 0, code, f.out.String())

	// one apt install of zsh, then the default-shell switch
	assert.Contains(t, fake.Calls, "sudo apt install -y zsh")
	assert.Contains(t, fake.Calls, "chsh -s /usr/bin/zsh")

	// theme cloned into the custom themes subdirectory
	require.Len(t, f.clones, 1)
	assert.Equal(t, home+"/.oh-my-zsh/custom/themes/powerlevel10k", f.clones[0])

	// startup file rewritten with a backup
	assert.Contains(t, f.zshrc(t), `ZSH_THEME="powerlevel10k/powerlevel10k"`)
	backup, err := afero.ReadFile(f.fs, home+"/.zshrc.bak")
	require.NoError(t, err)
	assert.Contains(t, string(backup), "robbyrussell")
}
