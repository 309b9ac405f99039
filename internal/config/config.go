// Package config parses and validates the exercise catalog (info.yaml).
// The catalog and the pristine exercise sources are embedded by the
// main package and passed in as an fs.FS so reset always has an
// unmodified copy to restore from.
package config

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/exercise"
)

const infoFile = "info.yaml"

// ExerciseInfo is one catalog entry.
type ExerciseInfo struct {
	Name string        `yaml:"name"`
	Dir  string        `yaml:"dir"`
	Mode exercise.Mode `yaml:"mode,omitempty"`
	Hint string        `yaml:"hint,omitempty"`
}

// Info is the parsed exercise catalog.
type Info struct {
	WelcomeMessage string         `yaml:"welcome_message,omitempty"`
	FinalMessage   string         `yaml:"final_message,omitempty"`
	Exercises      []ExerciseInfo `yaml:"exercises"`
}

// Load reads and validates info.yaml from fsys, which must also contain
// the exercise sources the catalog refers to.
func Load(fsys fs.FS) (*Info, error) {
	data, err := fs.ReadFile(fsys, infoFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", infoFile, err)
	}

	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", infoFile, err)
	}

	if len(info.Exercises) == 0 {
		return nil, fmt.Errorf("%s contains no exercises", infoFile)
	}

	seen := make(map[string]bool, len(info.Exercises))
	for i := range info.Exercises {
		ex := &info.Exercises[i]
		if ex.Name == "" {
			return nil, fmt.Errorf("exercise %d has no name", i)
		}
		if len(ex.Name) > exercise.MaxNameLen {
			return nil, fmt.Errorf("exercise name %q is longer than %d characters", ex.Name, exercise.MaxNameLen)
		}
		if seen[ex.Name] {
			return nil, fmt.Errorf("duplicate exercise name %q", ex.Name)
		}
		seen[ex.Name] = true

		switch ex.Mode {
		case "":
			ex.Mode = exercise.ModeRun
		case exercise.ModeRun, exercise.ModeTest:
		default:
			return nil, fmt.Errorf("exercise %q has unknown mode %q", ex.Name, ex.Mode)
		}

		path := exercise.Exercise{Name: ex.Name, Dir: ex.Dir}.FSPath()
		if _, err := fs.Stat(fsys, path); err != nil {
			return nil, fmt.Errorf("exercise %q: %w", ex.Name, err)
		}
	}

	return &info, nil
}

// Build converts the catalog into the exercise list, all pending.
func (i *Info) Build() []exercise.Exercise {
	exercises := make([]exercise.Exercise, len(i.Exercises))
	for ind, info := range i.Exercises {
		exercises[ind] = exercise.Exercise{
			Name: info.Name,
			Dir:  info.Dir,
			Mode: info.Mode,
			Hint: info.Hint,
		}
	}
	return exercises
}
