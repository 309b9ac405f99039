// Package app owns the trainer's progress state: the ordered exercise
// list, the current exercise, and the persisted done set. It is the
// single writer of the state file; UI components get it handed over
// exclusively for the duration of a session.
package app

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/config"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/exercise"
)

const stateFileName = ".rustlings-state.yaml"

// stateFile is the on-disk progress format. Done exercises are stored
// by name so reordering the catalog does not corrupt progress.
type stateFile struct {
	CurrentExercise string   `yaml:"current_exercise"`
	DoneExercises   []string `yaml:"done_exercises,omitempty"`
}

// AppState implements the progress store consumed by the list view and
// watch mode.
type AppState struct {
	exercises      []exercise.Exercise
	current        int
	nDone          int
	embedded       fs.FS
	welcomeMessage string
	finalMessage   string
}

// New builds the state from the catalog and merges in the persisted
// progress, if any.
func New(info *config.Info, embedded fs.FS) (*AppState, error) {
	s := &AppState{
		exercises:      info.Build(),
		embedded:       embedded,
		welcomeMessage: info.WelcomeMessage,
		finalMessage:   info.FinalMessage,
	}

	data, err := os.ReadFile(stateFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", stateFileName, err)
	}

	var saved stateFile
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", stateFileName, err)
	}

	done := make(map[string]bool, len(saved.DoneExercises))
	for _, name := range saved.DoneExercises {
		done[name] = true
	}
	for i := range s.exercises {
		if done[s.exercises[i].Name] {
			s.exercises[i].Done = true
			s.nDone++
		}
		if s.exercises[i].Name == saved.CurrentExercise {
			s.current = i
		}
	}

	return s, nil
}

// Exercises returns the ordered exercise list. Callers must treat it as
// read-only.
func (s *AppState) Exercises() []exercise.Exercise {
	return s.exercises
}

func (s *AppState) CurrentIndex() int {
	return s.current
}

func (s *AppState) CurrentExercise() exercise.Exercise {
	return s.exercises[s.current]
}

func (s *AppState) NumDone() int {
	return s.nDone
}

func (s *AppState) AllDone() bool {
	return s.nDone == len(s.exercises)
}

func (s *AppState) WelcomeMessage() string {
	return s.welcomeMessage
}

func (s *AppState) FinalMessage() string {
	return s.finalMessage
}

// SetCurrentIndex makes ind the current exercise and persists it.
func (s *AppState) SetCurrentIndex(ind int) error {
	if ind < 0 || ind >= len(s.exercises) {
		return fmt.Errorf("exercise index %d out of range", ind)
	}
	s.current = ind
	return s.Save()
}

// MarkDone records a completed exercise and persists it.
func (s *AppState) MarkDone(ind int) error {
	if ind < 0 || ind >= len(s.exercises) {
		return fmt.Errorf("exercise index %d out of range", ind)
	}
	if !s.exercises[ind].Done {
		s.exercises[ind].Done = true
		s.nDone++
	}
	return s.Save()
}

// ResetByIndex restores the pristine embedded source of an exercise,
// marks it pending again and persists. Returns the exercise name for
// user feedback.
func (s *AppState) ResetByIndex(ind int) (string, error) {
	if ind < 0 || ind >= len(s.exercises) {
		return "", fmt.Errorf("exercise index %d out of range", ind)
	}
	ex := &s.exercises[ind]

	pristine, err := fs.ReadFile(s.embedded, ex.FSPath())
	if err != nil {
		return "", fmt.Errorf("reading embedded %s: %w", ex.FSPath(), err)
	}
	if err := os.WriteFile(ex.Path(), pristine, 0o644); err != nil {
		return "", fmt.Errorf("restoring %s: %w", ex.Path(), err)
	}

	if ex.Done {
		ex.Done = false
		s.nDone--
	}
	return ex.Name, s.Save()
}

// NextPending returns the index of the first pending exercise after
// `after`, wrapping around. Returns false when everything is done.
func (s *AppState) NextPending(after int) (int, bool) {
	n := len(s.exercises)
	for step := 1; step <= n; step++ {
		ind := (after + step) % n
		if !s.exercises[ind].Done {
			return ind, true
		}
	}
	return 0, false
}

// Save writes the state file.
func (s *AppState) Save() error {
	saved := stateFile{
		CurrentExercise: s.exercises[s.current].Name,
	}
	for _, ex := range s.exercises {
		if ex.Done {
			saved.DoneExercises = append(saved.DoneExercises, ex.Name)
		}
	}

	data, err := yaml.Marshal(&saved)
	if err != nil {
		return err
	}
	if err := os.WriteFile(stateFileName, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", stateFileName, err)
	}
	return nil
}
