package platform

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/germanex3000-hacker/zshup/internal/cmdrun"
)

// Platform is the coarse OS classification used to pick a package-manager
// strategy and a font directory. Detected once at startup and passed
// explicitly; never read from ambient state after that.
type Platform int

const (
	Linux Platform = iota
	Darwin
	Cygwin
	MinGW
	Other
)

func (p Platform) String() string {
	switch p {
	case Linux:
		return "Linux"
	case Darwin:
		return "macOS"
	case Cygwin:
		return "Cygwin"
	case MinGW:
		return "MinGW"
	default:
		return "Other"
	}
}

var getGoos = func() string { return runtime.GOOS }

// Detect classifies the host once. Cygwin and MinGW environments report
// GOOS=windows, so they are told apart by the uname kernel string.
func Detect(ctx context.Context, runner cmdrun.Runner) Platform {
	switch getGoos() {
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	case "windows":
		return detectWindowsEnv(ctx, runner)
	default:
		return Other
	}
}

func detectWindowsEnv(ctx context.Context, runner cmdrun.Runner) Platform {
	if _, ok := runner.LookPath("uname"); !ok {
		return Other
	}

	res, err := runner.Run(ctx, "uname", "-s")
	if err != nil || res.ExitCode != 0 {
		return Other
	}

	kernel := strings.ToUpper(res.Output)
	switch {
	case strings.HasPrefix(kernel, "CYGWIN"):
		return Cygwin
	case strings.HasPrefix(kernel, "MINGW"), strings.HasPrefix(kernel, "MSYS"):
		return MinGW
	default:
		return Other
	}
}

// SupportsFontDownload reports whether the font installer may download
// assets. Everywhere else the user gets manual instructions instead.
func (p Platform) SupportsFontDownload() bool {
	return p == Linux || p == Darwin
}

// FontDir returns the user-owned font directory for the platform.
func (p Platform) FontDir(home string) string {
	switch p {
	case Darwin:
		return filepath.Join(home, "Library", "Fonts")
	default:
		return filepath.Join(home, ".local", "share", "fonts")
	}
}
