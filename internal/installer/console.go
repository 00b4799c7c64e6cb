package installer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/germanex3000-hacker/zshup/internal/errdefs"
	"github.com/germanex3000-hacker/zshup/internal/framework"
	"github.com/germanex3000-hacker/zshup/internal/platform"
)

// affirmative accepts y/yes in any case; everything else means no.
var affirmative = regexp.MustCompile(`^(?i)y(es)?$`)

// Console is the line-oriented frontend used outside a TTY (and behind
// --no-tui). Prompting is fail-fast: an out-of-range menu answer is a
// fatal input error with no retry loop, while the yes/no answers parse
// leniently with "no" as the default.
type Console struct {
	orchestrator *Orchestrator
	in           *bufio.Reader
	out          io.Writer
}

func NewConsole(o *Orchestrator, in io.Reader, out io.Writer) *Console {
	return &Console{
		orchestrator: o,
		in:           bufio.NewReader(in),
		out:          out,
	}
}

func (c *Console) printf(format string, v ...interface{}) {
	fmt.Fprintf(c.out, format, v...)
}

func (c *Console) readLine() string {
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// Run drives the whole interactive flow and returns the process exit
// code: 0 for success or user abort, 1 for any fatal error.
func (c *Console) Run(ctx context.Context, plat platform.Platform) int {
	if err := c.orchestrator.CheckPrivileges(); err != nil {
		c.printf("Error: %v\n", err)
		return 1
	}

	c.printf("Detected platform: %s\n\n", plat)

	strategy, exit, err := c.promptStrategy()
	if err != nil {
		c.printf("Error: %v\n", err)
		return 1
	}
	if exit {
		c.printf("Nothing to do.\n")
		return 0
	}

	installFont := c.promptFont()

	plan := Plan{Platform: plat, Strategy: strategy, InstallFont: installFont}

	c.printf("\nAbout to apply:\n%s\n\n", plan.Summary())
	c.printf("Proceed? [y/N] ")
	if !affirmative.MatchString(c.readLine()) {
		c.printf("Aborted. Nothing was changed.\n")
		return 0
	}

	return c.execute(ctx, plan)
}

func (c *Console) promptStrategy() (framework.Strategy, bool, error) {
	c.printf("How should powerlevel10k be installed?\n")
	c.printf("  1) Oh My Zsh   - theme inside an Oh My Zsh setup\n")
	c.printf("  2) Antigen     - lightweight plugin manager\n")
	c.printf("  3) Manual      - clone into the home directory\n")
	c.printf("  4) Exit\n")
	c.printf("Select [1-4]: ")

	switch c.readLine() {
	case "1":
		return framework.StrategyOhMyZsh, false, nil
	case "2":
		return framework.StrategyAntigen, false, nil
	case "3":
		return framework.StrategyManual, false, nil
	case "4":
		return framework.StrategyOhMyZsh, true, nil
	default:
		return framework.StrategyOhMyZsh, false, errdefs.NewCustomError(errdefs.ErrTypeInvalidSelection, "invalid selection, expected 1-4")
	}
}

func (c *Console) promptFont() bool {
	c.printf("Install the MesloLGS NF font? [y/N] ")
	return affirmative.MatchString(c.readLine())
}

func (c *Console) execute(ctx context.Context, plan Plan) int {
	progress := make(chan ProgressMsg, 16)
	done := make(chan struct{})
	go func() {
		for msg := range progress {
			if msg.Step != "" {
				c.printf("  %s\n", msg.Step)
			}
			if msg.LogOutput != "" {
				c.printf("    %s\n", msg.LogOutput)
			}
		}
		close(done)
	}()

	report, err := c.orchestrator.Execute(ctx, plan, progress)
	close(progress)
	<-done

	if err != nil {
		c.printf("\nInstallation failed: %v\n", err)
		return 1
	}

	c.printReport(report)
	return 0
}

func (c *Console) printReport(report *Report) {
	c.printf("\nzsh environment configured.\n")
	if report.FrameworkError != nil {
		c.printf("Warning: framework setup failed: %v\n", report.FrameworkError)
	}
	if report.DefaultShellError != nil {
		c.printf("Warning: %v\n", report.DefaultShellError)
	}
	if len(report.ManualSteps) > 0 {
		c.printf("\nManual steps:\n")
		for _, step := range report.ManualSteps {
			c.printf("  - %s\n", step)
		}
	}
}
