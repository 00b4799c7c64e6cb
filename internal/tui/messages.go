package tui

import (
	"github.com/germanex3000-hacker/zshup/internal/installer"
	"github.com/germanex3000-hacker/zshup/internal/platform"
)

type logMsg struct {
	message string
}

type platformDetectedMsg struct {
	platform platform.Platform
}

type installProgressMsg struct {
	progress installer.ProgressMsg
}

type installFinishedMsg struct {
	report *installer.Report
	err    error
}
