package zshrc

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

var themeLineRe = regexp.MustCompile(`(?m)^ZSH_THEME=.*$`)

// Editor mutates the user's shell startup file. All access goes through
// afero so tests run against an in-memory filesystem.
type Editor struct {
	fs      afero.Fs
	path    string
	logChan chan<- string
}

func NewEditor(fs afero.Fs, home string, logChan chan<- string) *Editor {
	return &Editor{
		fs:      fs,
		path:    filepath.Join(home, ".zshrc"),
		logChan: logChan,
	}
}

func (e *Editor) Path() string {
	return e.path
}

func (e *Editor) log(message string) {
	if e.logChan != nil {
		e.logChan <- message
	}
}

func (e *Editor) read() (string, error) {
	data, err := afero.ReadFile(e.fs, e.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetTheme rewrites the ZSH_THEME line in place, creating a .bak copy of
// the file first. A missing theme line is appended rather than rewritten.
func (e *Editor) SetTheme(theme string) error {
	content, err := e.read()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", e.path, err)
	}

	backupPath := e.path + ".bak"
	if err := afero.WriteFile(e.fs, backupPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	e.log(fmt.Sprintf("Backed up %s to %s", e.path, backupPath))

	newLine := fmt.Sprintf("ZSH_THEME=%q", theme)
	var updated string
	if themeLineRe.MatchString(content) {
		updated = themeLineRe.ReplaceAllString(content, newLine)
	} else {
		updated = ensureTrailingNewline(content) + newLine + "\n"
	}

	if err := afero.WriteFile(e.fs, e.path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.path, err)
	}

	e.log(fmt.Sprintf("Set ZSH_THEME to %s", theme))
	return nil
}

// EnsureBlock inserts a configuration block keyed by a marker comment.
// Repeated runs leave exactly one copy: an existing marker means the block
// is already present and nothing is written.
func (e *Editor) EnsureBlock(marker, block string) error {
	content, err := e.read()
	if err != nil {
		// A missing startup file is created rather than treated as an error.
		if _, statErr := e.fs.Stat(e.path); statErr != nil {
			content = ""
		} else {
			return fmt.Errorf("failed to read %s: %w", e.path, err)
		}
	}

	markerLine := "# " + marker
	if strings.Contains(content, markerLine) {
		e.log(fmt.Sprintf("Block %q already present in %s", marker, e.path))
		return nil
	}

	updated := ensureTrailingNewline(content) + markerLine + "\n" + ensureTrailingNewline(block)
	if err := afero.WriteFile(e.fs, e.path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.path, err)
	}

	e.log(fmt.Sprintf("Added %q block to %s", marker, e.path))
	return nil
}

// Snapshot returns the current file contents, or empty when the file does
// not exist yet. Used to assert that aborted runs leave the file untouched.
func (e *Editor) Snapshot() (string, error) {
	exists, err := afero.Exists(e.fs, e.path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}
	return e.read()
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
