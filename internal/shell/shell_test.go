package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/errdefs"
	"github.com/germanex3000-hacker/zshup/internal/pkgmanager"
)

func newAptManager(t *testing.T, runner *cmdrun.FakeRunner) *pkgmanager.Manager {
	t.Helper()
	runner.Binaries["apt"] = "/usr/bin/apt"
	mgr, err := pkgmanager.Detect(runner, nil)
	require.NoError(t, err)
	return mgr
}

func TestEnsureZshAlreadyPresent(t *testing.T) {
	runner := cmdrun.NewFakeRunner()
	runner.Binaries["zsh"] = "/usr/bin/zsh"
	mgr := newAptManager(t, runner)

	inst := NewInstaller(runner, nil)
	err := inst.EnsureZsh(context.Background(), mgr)

	require.NoError(t, err)
	// short-circuit: zero package-manager invocations
	assert.Empty(t, runner.Calls)
}

func TestEnsureZshInstalls(t *testing.T) {
	fake := cmdrun.NewFakeRunner()
	fake.Binaries["apt"] = "/usr/bin/apt"

	// Simulate apt placing the binary on PATH once the install command runs.
	installed := false
	runner := &installEffectRunner{FakeRunner: fake, onInstall: func() { installed = true }}
	runner.installedFn = func() bool { return installed }

	mgr, err := pkgmanager.Detect(runner, nil)
	require.NoError(t, err)

	inst := NewInstaller(runner, nil)
	err = inst.EnsureZsh(context.Background(), mgr)

	require.NoError(t, err)
	assert.Equal(t, []string{"sudo apt install -y zsh"}, fake.Calls)
}

func TestEnsureZshPresenceIsTheSuccessCriterion(t *testing.T) {
	runner := cmdrun.NewFakeRunner()
	mgr := newAptManager(t, runner)
	// apt reports success but never places the binary
	runner.Commands["sudo apt install -y zsh"] = cmdrun.Result{ExitCode: 0}

	inst := NewInstaller(runner, nil)
	err := inst.EnsureZsh(context.Background(), mgr)

	require.Error(t, err)
	ce, ok := err.(*errdefs.CustomError)
	require.True(t, ok)
	assert.Equal(t, errdefs.ErrTypeShellInstallFailed, ce.Type)
	assert.True(t, errdefs.IsFatal(err))
}

func TestSetDefaultFailureIsAdvisory(t *testing.T) {
	runner := cmdrun.NewFakeRunner()
	runner.Binaries["zsh"] = "/usr/bin/zsh"
	runner.Commands["chsh -s /usr/bin/zsh"] = cmdrun.Result{ExitCode: 1, Output: "PAM: Authentication failure"}

	inst := NewInstaller(runner, nil)
	err := inst.SetDefault(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chsh -s /usr/bin/zsh")
	assert.False(t, errdefs.IsFatal(err))
}

func TestSetDefaultSuccess(t *testing.T) {
	runner := cmdrun.NewFakeRunner()
	runner.Binaries["zsh"] = "/usr/bin/zsh"

	inst := NewInstaller(runner, nil)
	err := inst.SetDefault(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"chsh -s /usr/bin/zsh"}, runner.Calls)
}

// installEffectRunner makes LookPath("zsh") succeed only after the install
// command has run, mimicking a package manager that really installs.
type installEffectRunner struct {
	*cmdrun.FakeRunner
	onInstall   func()
	installedFn func() bool
}

func (r *installEffectRunner) Run(ctx context.Context, name string, args ...string) (cmdrun.Result, error) {
	res, err := r.FakeRunner.Run(ctx, name, args...)
	r.onInstall()
	return res, err
}

func (r *installEffectRunner) LookPath(name string) (string, bool) {
	if name == "zsh" {
		if r.installedFn() {
			return "/usr/bin/zsh", true
		}
		return "", false
	}
	return r.FakeRunner.LookPath(name)
}
