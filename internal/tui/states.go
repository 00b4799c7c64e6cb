package tui

type ApplicationState int

const (
	StateWelcome ApplicationState = iota
	StateSelectStrategy
	StateFontPrompt
	StateConfirm
	StateInstalling
	StateComplete
	StateError
)
