package cmdrun

import (
	"context"
	"os/exec"
	"strings"
)

// Result captures what a subprocess actually did, independently of
// whether the caller considers the invocation a success.
type Result struct {
	ExitCode int
	Output   string
}

// Runner abstracts external process execution so that success criteria
// (e.g. "binary now on PATH") can be asserted separately from the
// subprocess's own reported status.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
	LookPath(name string) (string, bool)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	res := Result{Output: strings.TrimRight(string(output), "\n")}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Non-zero exit is data, not a transport failure.
			return res, nil
		}
		return res, err
	}

	return res, nil
}

func (r *ExecRunner) LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	return path, err == nil
}
