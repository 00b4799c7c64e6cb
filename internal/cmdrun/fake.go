package cmdrun

import (
	"context"
	"strings"
)

// FakeRunner scripts subprocess behavior for tests and records every
// invocation it receives.
type FakeRunner struct {
	// Commands maps "name arg1 arg2..." to a scripted result.
	Commands map[string]Result
	// Binaries is the set of names LookPath resolves.
	Binaries map[string]string
	// Calls holds every Run invocation in order.
	Calls []string

	// Err, when set, is returned by every Run call.
	Err error
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Commands: make(map[string]Result),
		Binaries: make(map[string]string),
	}
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	call := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, call)

	if f.Err != nil {
		return Result{ExitCode: 1}, f.Err
	}
	if res, ok := f.Commands[call]; ok {
		return res, nil
	}
	return Result{}, nil
}

func (f *FakeRunner) LookPath(name string) (string, bool) {
	path, ok := f.Binaries[name]
	return path, ok
}
