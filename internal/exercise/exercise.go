// Package exercise defines the exercise record and knows how to run a
// single exercise and inspect its completion marker. It does not track
// progress; that belongs to the app state.
package exercise

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path"
	"path/filepath"
)

// NotDoneMarker must be removed from an exercise file before a
// successful run counts as completing it.
const NotDoneMarker = "// I AM NOT DONE"

// MaxNameLen caps exercise names so the list view can size its name
// column with a fixed padding buffer.
const MaxNameLen = 32

// Mode selects how an exercise is checked.
type Mode string

const (
	// ModeRun compiles and runs the exercise file; a zero exit status
	// passes.
	ModeRun Mode = "run"
	// ModeTest runs `go test` in the exercise directory.
	ModeTest Mode = "test"
)

// Exercise is one entry of the curriculum. Done is owned and mutated
// only by the progress store; everything else is immutable catalog
// data.
type Exercise struct {
	Name string
	Dir  string
	Mode Mode
	Hint string
	Done bool
}

// Path returns the exercise source path relative to the project root.
func (e Exercise) Path() string {
	return filepath.Join("exercises", e.Dir, e.Name+".go")
}

// FSPath is the slash-separated form of Path for fs.FS lookups into the
// embedded pristine sources.
func (e Exercise) FSPath() string {
	return path.Join("exercises", e.Dir, e.Name+".go")
}

// HasNotDoneMarker reports whether the working copy still carries the
// completion marker.
func (e Exercise) HasNotDoneMarker() (bool, error) {
	data, err := os.ReadFile(e.Path())
	if err != nil {
		return false, err
	}
	return bytes.Contains(data, []byte(NotDoneMarker)), nil
}

// Run executes the exercise and reports its combined output and whether
// it passed. A run only passes once the not-done marker has been
// removed, so a compiling exercise the user has not signed off on stays
// pending.
func (e Exercise) Run(ctx context.Context) (string, bool) {
	var cmd *exec.Cmd
	switch e.Mode {
	case ModeTest:
		cmd = exec.CommandContext(ctx, "go", "test", "./"+filepath.ToSlash(filepath.Join("exercises", e.Dir)))
	default:
		cmd = exec.CommandContext(ctx, "go", "run", e.Path())
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), false
	}

	marker, err := e.HasNotDoneMarker()
	if err != nil {
		return string(out), false
	}
	return string(out), !marker
}
