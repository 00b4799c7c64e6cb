package installer

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/errdefs"
	"github.com/germanex3000-hacker/zshup/internal/framework"
	"github.com/germanex3000-hacker/zshup/internal/platform"
)

const home = "/home/user"

// fakeFramework records installs and optionally fails.
type fakeFramework struct {
	strategy  framework.Strategy
	installed int
	err       error
}

func (f *fakeFramework) Strategy() framework.Strategy { return f.strategy }
func (f *fakeFramework) Install(context.Context) error {
	f.installed++
	return f.err
}

func newOrchestrator(t *testing.T) (*Orchestrator, *cmdrun.FakeRunner, *fakeFramework) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, home+"/.zshrc", []byte("ZSH_THEME=\"robbyrussell\"\n"), 0644))

	runner := cmdrun.NewFakeRunner()
	o := New(fs, runner, home, nil)
	o.geteuid = func() int { return 1000 }

	fw := &fakeFramework{strategy: framework.StrategyManual}
	o.newFramework = func(s framework.Strategy) (framework.Installer, error) {
		fw.strategy = s
		return fw, nil
	}
	return o, runner, fw
}

func drain(progress chan ProgressMsg) []ProgressMsg {
	var msgs []ProgressMsg
	for msg := range progress {
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestCheckPrivilegesRefusesRoot(t *testing.T) {
	o, runner, _ := newOrchestrator(t)
	o.geteuid = func() int { return 0 }

	err := o.CheckPrivileges()
	require.Error(t, err)

	ce, ok := err.(*errdefs.CustomError)
	require.True(t, ok)
	assert.Equal(t, errdefs.ErrTypeElevatedPrivileges, ce.Type)
	assert.True(t, errdefs.IsFatal(err))
	// refusal happens before any side effect
	assert.Empty(t, runner.Calls)
}

func TestExecuteHappyPath(t *testing.T) {
	o, runner, fw := newOrchestrator(t)
	runner.Binaries["zsh"] = "/usr/bin/zsh"

	plan := Plan{Platform: platform.Linux, Strategy: framework.StrategyManual, InstallFont: false}

	progress := make(chan ProgressMsg, 32)
	report, err := o.Execute(context.Background(), plan, progress)
	close(progress)

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh", report.ZshPath)
	assert.Equal(t, 1, fw.installed)
	assert.Nil(t, report.FrameworkError)
	assert.Nil(t, report.DefaultShellError)

	// zsh was present, so the only subprocess is chsh
	assert.Equal(t, []string{"chsh -s /usr/bin/zsh"}, runner.Calls)

	msgs := drain(progress)
	last := msgs[len(msgs)-1]
	assert.True(t, last.IsComplete)
	assert.NoError(t, last.Error)
}

func TestExecuteInstallsZshViaApt(t *testing.T) {
	o, _, _ := newOrchestrator(t)

	fake := cmdrun.NewFakeRunner()
	fake.Binaries["apt"] = "/usr/bin/apt"
	installed := false
	runner := &pathAfterInstallRunner{FakeRunner: fake, installed: &installed}
	*o = *New(o.fs, runner, home, nil)
	o.geteuid = func() int { return 1000 }
	fw := &fakeFramework{}
	o.newFramework = func(s framework.Strategy) (framework.Installer, error) { return fw, nil }

	plan := Plan{Platform: platform.Linux, Strategy: framework.StrategyOhMyZsh}
	report, err := o.Execute(context.Background(), plan, nil)

	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh", report.ZshPath)
	assert.Contains(t, fake.Calls, "sudo apt install -y zsh")
}

func TestExecuteShellFailureIsFatal(t *testing.T) {
	// no zsh and no package manager at all
	o, _, fw := newOrchestrator(t)

	plan := Plan{Platform: platform.Linux, Strategy: framework.StrategyManual}
	_, err := o.Execute(context.Background(), plan, nil)

	require.Error(t, err)
	assert.True(t, errdefs.IsFatal(err))
	// nothing past the shell step ran
	assert.Equal(t, 0, fw.installed)
}

func TestExecuteFrameworkFailureDoesNotBlockDefaultShell(t *testing.T) {
	o, runner, fw := newOrchestrator(t)
	runner.Binaries["zsh"] = "/usr/bin/zsh"
	fw.err = errors.New("clone failed")

	plan := Plan{Platform: platform.Linux, Strategy: framework.StrategyAntigen}
	report, err := o.Execute(context.Background(), plan, nil)

	require.NoError(t, err)
	require.Error(t, report.FrameworkError)
	// the default-shell step still ran
	assert.Contains(t, runner.Calls, "chsh -s /usr/bin/zsh")
}

func TestExecuteDefaultShellFailureIsWarning(t *testing.T) {
	o, runner, _ := newOrchestrator(t)
	runner.Binaries["zsh"] = "/usr/bin/zsh"
	runner.Commands["chsh -s /usr/bin/zsh"] = cmdrun.Result{ExitCode: 1}

	plan := Plan{Platform: platform.Linux, Strategy: framework.StrategyManual}
	report, err := o.Execute(context.Background(), plan, nil)

	require.NoError(t, err)
	require.Error(t, report.DefaultShellError)
	assert.Contains(t, report.DefaultShellError.Error(), "chsh -s /usr/bin/zsh")
	// remediation hint lands in the manual steps
	assert.Contains(t, report.ManualSteps[0], "chsh")
}

func TestPlanSummary(t *testing.T) {
	plan := Plan{Platform: platform.Linux, Strategy: framework.StrategyAntigen, InstallFont: true}
	s := plan.Summary()
	assert.Contains(t, s, "Linux")
	assert.Contains(t, s, "Antigen")
	assert.Contains(t, s, "yes")
}

// pathAfterInstallRunner reports zsh on PATH only after an install command
// has been issued.
type pathAfterInstallRunner struct {
	*cmdrun.FakeRunner
	installed *bool
}

func (r *pathAfterInstallRunner) Run(ctx context.Context, name string, args ...string) (cmdrun.Result, error) {
	res, err := r.FakeRunner.Run(ctx, name, args...)
	*r.installed = true
	return res, err
}

func (r *pathAfterInstallRunner) LookPath(name string) (string, bool) {
	if name == "zsh" {
		if *r.installed {
			return "/usr/bin/zsh", true
		}
		return "", false
	}
	return r.FakeRunner.LookPath(name)
}
