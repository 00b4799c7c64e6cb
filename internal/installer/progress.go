package installer

// InstallPhase represents the current step of an installation run.
type InstallPhase int

const (
	PhaseShellRuntime InstallPhase = iota
	PhaseFonts
	PhaseFramework
	PhaseDefaultShell
	PhaseComplete
)

// ProgressMsg reports installation progress to whichever frontend is
// driving the run.
type ProgressMsg struct {
	Phase      InstallPhase
	Progress   float64
	Step       string
	IsComplete bool
	LogOutput  string
	Error      error
}

// Report is the outcome summary printed after a run. Warnings and
// reported errors are separated from the overall result on purpose:
// only a missing shell runtime fails the run.
type Report struct {
	ZshPath           string
	FontMessage       string
	FrameworkError    error
	DefaultShellError error
	ManualSteps       []string
}
