package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
	"github.com/germanex3000-hacker/zshup/internal/errdefs"
	"github.com/germanex3000-hacker/zshup/internal/fonts"
	"github.com/germanex3000-hacker/zshup/internal/framework"
	"github.com/germanex3000-hacker/zshup/internal/pkgmanager"
	"github.com/germanex3000-hacker/zshup/internal/platform"
	"github.com/germanex3000-hacker/zshup/internal/shell"
	"github.com/germanex3000-hacker/zshup/internal/zshrc"
)

// Plan holds the choices collected interactively before anything mutates.
type Plan struct {
	Platform    platform.Platform
	Strategy    framework.Strategy
	InstallFont bool
}

// Summary renders the plan for the pre-execution confirmation prompt.
func (p Plan) Summary() string {
	font := "no"
	if p.InstallFont {
		font = "yes"
	}
	return fmt.Sprintf("Platform:  %s\nStrategy:  %s\nNerd Font: %s", p.Platform, p.Strategy, font)
}

// Orchestrator runs the install pipeline: shell runtime, optional fonts,
// framework strategy, default-shell switch. Strictly sequential.
type Orchestrator struct {
	fs      afero.Fs
	runner  cmdrun.Runner
	home    string
	logChan chan<- string

	shellInst *shell.Installer
	fontInst  *fonts.Installer
	editor    *zshrc.Editor

	newFramework func(s framework.Strategy) (framework.Installer, error)
	geteuid      func() int
}

func New(fs afero.Fs, runner cmdrun.Runner, home string, logChan chan<- string) *Orchestrator {
	editor := zshrc.NewEditor(fs, home, logChan)
	o := &Orchestrator{
		fs:        fs,
		runner:    runner,
		home:      home,
		logChan:   logChan,
		shellInst: shell.NewInstaller(runner, logChan),
		fontInst:  fonts.NewInstaller(fs, runner, logChan),
		editor:    editor,
		geteuid:   os.Geteuid,
	}
	o.newFramework = func(s framework.Strategy) (framework.Installer, error) {
		return framework.NewInstaller(s, fs, runner, editor, home, logChan)
	}
	return o
}

// Editor exposes the startup-file editor shared with the framework
// strategies, mainly so frontends can snapshot the file around a run.
func (o *Orchestrator) Editor() *zshrc.Editor {
	return o.editor
}

// CheckPrivileges refuses to run with elevated privileges. There is no
// override flag; the installer only ever edits user-owned files and
// escalates through sudo itself where a package manager needs it.
func (o *Orchestrator) CheckPrivileges() error {
	if o.geteuid() == 0 {
		return errdefs.NewCustomError(errdefs.ErrTypeElevatedPrivileges,
			"refusing to run as root: run as the user whose shell should be configured")
	}
	return nil
}

func (o *Orchestrator) send(progress chan<- ProgressMsg, msg ProgressMsg) {
	if progress != nil {
		progress <- msg
	}
}

// Execute runs the confirmed plan. A missing shell runtime aborts the
// whole run; framework-strategy failure is reported and the run proceeds
// to the default-shell step; a default-shell failure is only a warning.
func (o *Orchestrator) Execute(ctx context.Context, plan Plan, progress chan<- ProgressMsg) (*Report, error) {
	report := &Report{}

	o.send(progress, ProgressMsg{Phase: PhaseShellRuntime, Progress: 0.05, Step: "Checking zsh runtime..."})
	if err := o.ensureShell(ctx, report); err != nil {
		o.send(progress, ProgressMsg{Phase: PhaseShellRuntime, Progress: 0.05, Step: "zsh installation failed", IsComplete: true, Error: err})
		return report, err
	}
	o.send(progress, ProgressMsg{Phase: PhaseShellRuntime, Progress: 0.3, Step: "zsh present"})

	if plan.InstallFont {
		o.send(progress, ProgressMsg{Phase: PhaseFonts, Progress: 0.35, Step: "Installing MesloLGS NF fonts..."})
		msg, err := o.fontInst.Install(ctx, plan.Platform, o.home)
		if err != nil {
			// reported, never blocks the framework step
			o.send(progress, ProgressMsg{Phase: PhaseFonts, Progress: 0.5, Step: "Font installation failed", LogOutput: err.Error()})
			report.FontMessage = fmt.Sprintf("font installation failed: %v", err)
		} else {
			report.FontMessage = msg
			report.ManualSteps = append(report.ManualSteps, msg)
		}
	}

	o.send(progress, ProgressMsg{Phase: PhaseFramework, Progress: 0.55, Step: fmt.Sprintf("Installing %s...", plan.Strategy)})
	if err := o.installFramework(ctx, plan.Strategy); err != nil {
		report.FrameworkError = err
		o.send(progress, ProgressMsg{Phase: PhaseFramework, Progress: 0.8, Step: fmt.Sprintf("%s failed", plan.Strategy), LogOutput: err.Error()})
	} else {
		o.send(progress, ProgressMsg{Phase: PhaseFramework, Progress: 0.8, Step: fmt.Sprintf("%s configured", plan.Strategy)})
	}

	o.send(progress, ProgressMsg{Phase: PhaseDefaultShell, Progress: 0.9, Step: "Setting zsh as the login shell..."})
	if err := o.shellInst.SetDefault(ctx); err != nil {
		report.DefaultShellError = err
		report.ManualSteps = append(report.ManualSteps, err.Error())
	}

	report.ManualSteps = append(report.ManualSteps, "Restart your terminal (or log out and back in) to start zsh.")

	o.send(progress, ProgressMsg{Phase: PhaseComplete, Progress: 1.0, Step: "Setup complete", IsComplete: true})
	return report, nil
}

func (o *Orchestrator) ensureShell(ctx context.Context, report *Report) error {
	if path, ok := o.runner.LookPath("zsh"); ok {
		report.ZshPath = path
		return nil
	}

	mgr, err := pkgmanager.Detect(o.runner, o.logChan)
	if err != nil {
		// no manager plus no zsh means nothing below can work
		return errdefs.NewCustomError(errdefs.ErrTypeShellInstallFailed, err.Error())
	}

	if err := o.shellInst.EnsureZsh(ctx, mgr); err != nil {
		return err
	}

	path, _ := o.runner.LookPath("zsh")
	report.ZshPath = path
	return nil
}

func (o *Orchestrator) installFramework(ctx context.Context, strategy framework.Strategy) error {
	inst, err := o.newFramework(strategy)
	if err != nil {
		return err
	}
	return inst.Install(ctx)
}
