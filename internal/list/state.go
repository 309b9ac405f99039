// Package list implements the interactive exercise list: a scrollable,
// filterable table of exercises drawn straight to the terminal, plus
// the raw-mode session loop that feeds it key presses.
package list

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/exercise"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/term"
)

// ErrInvalidSelection reports that a selected row no longer maps to an
// exercise, e.g. because the filtered set changed between selection and
// use. Callers should abort the action and redraw, not crash.
var ErrInvalidSelection = errors.New("invalid selection index")

// Filter narrows the listed exercises by completion state.
type Filter int

const (
	FilterAll Filter = iota
	FilterDone
	FilterPending
)

func (f Filter) matches(ex exercise.Exercise) bool {
	switch f {
	case FilterDone:
		return ex.Done
	case FilterPending:
		return !ex.Done
	default:
		return true
	}
}

// ProgressStore is the progress state the list reads and mutates. The
// list holds it exclusively for the whole session; nothing else may
// touch completion state while a session is active.
type ProgressStore interface {
	Exercises() []exercise.Exercise
	CurrentIndex() int
	NumDone() int
	ResetByIndex(ind int) (string, error)
	SetCurrentIndex(ind int) error
}

// Below this width the help footer no longer fits on one line.
const wideHelpFooterWidth = 95

// +2 for column padding.
var space = bytes.Repeat([]byte{' '}, exercise.MaxNameLen+2)

// ListState renders one frame of the exercise list and dispatches user
// actions against the progress store.
type ListState struct {
	// Message is transient footer feedback, shown instead of the help
	// line until the next successful action clears it.
	Message string

	store         ProgressStore
	scroll        ScrollState
	nameColWidth  int
	filter        Filter
	termWidth     int
	termHeight    int
	separatorLine []byte
	narrowTerm    bool
	showFooter    bool
}

// NewListState sizes the name column and selects the current exercise.
// Call SetTermSize before the first Draw; until then drawing is a
// no-op.
func NewListState(store ProgressStore) *ListState {
	nameColWidth := len("Name")
	for _, ex := range store.Exercises() {
		if len(ex.Name) > nameColWidth {
			nameColWidth = len(ex.Name)
		}
	}

	return &ListState{
		store:        store,
		scroll:       NewScrollState(len(store.Exercises()), store.CurrentIndex(), 5),
		nameColWidth: nameColWidth,
		filter:       FilterAll,
		showFooter:   true,
	}
}

// SetTermSize recomputes the derived layout. A zero height means the
// terminal reported no size mid-resize; layout stays unresolved and
// Draw skips the frame.
func (l *ListState) SetTermSize(width, height int) {
	l.termWidth = width
	l.termHeight = height

	if height == 0 {
		return
	}

	// The help footer is shorter when nothing is selected, so width
	// stops mattering.
	_, hasSelected := l.scroll.Selected()
	l.narrowTerm = width < wideHelpFooterWidth && hasSelected

	headerHeight := 1
	// 2 separators, 1 progress bar, 1-2 help/message lines.
	footerHeight := 4
	if l.narrowTerm {
		footerHeight++
	}
	l.showFooter = height > headerHeight+footerHeight

	nRowsToDisplay := height - headerHeight
	if l.showFooter {
		l.separatorLine = bytes.Repeat([]byte("─"), width)
		nRowsToDisplay -= footerHeight
	}
	if nRowsToDisplay < 0 {
		nRowsToDisplay = 0
	}
	l.scroll.SetMaxNRowsToDisplay(nRowsToDisplay)
}

func (l *ListState) drawRows(out *bufio.Writer) (int, error) {
	currentInd := l.store.CurrentIndex()
	rowOffset := l.scroll.Offset()
	maxRows := l.scroll.MaxNRowsToDisplay()
	selected, hasSelected := l.scroll.Selected()

	nDisplayedRows := 0
	matchOrd := -1
	for ind, ex := range l.store.Exercises() {
		if !l.filter.matches(ex) {
			continue
		}
		matchOrd++
		if matchOrd < rowOffset {
			continue
		}
		if nDisplayedRows >= maxRows {
			break
		}

		w := term.NewMaxLenWriter(out, l.termWidth)

		if hasSelected && selected == rowOffset+nDisplayedRows {
			if _, err := w.Out.WriteString(term.BgSelection); err != nil {
				return 0, err
			}
			// The crab has the width of two ascii chars.
			w.AddToLen(2)
			if _, err := w.Out.WriteString("🦀"); err != nil {
				return 0, err
			}
		} else if err := w.WriteASCII([]byte("  ")); err != nil {
			return 0, err
		}

		if ind == currentInd {
			if _, err := w.Out.WriteString(term.FgRed); err != nil {
				return 0, err
			}
			if err := w.WriteASCII([]byte(">>>>>>>  ")); err != nil {
				return 0, err
			}
		} else if err := w.WriteASCII([]byte("         ")); err != nil {
			return 0, err
		}

		if ex.Done {
			if _, err := w.Out.WriteString(term.FgGreen); err != nil {
				return 0, err
			}
			if err := w.WriteASCII([]byte("DONE     ")); err != nil {
				return 0, err
			}
		} else {
			if _, err := w.Out.WriteString(term.FgYellow); err != nil {
				return 0, err
			}
			if err := w.WriteASCII([]byte("PENDING  ")); err != nil {
				return 0, err
			}
		}

		// Reset only the foreground so a selected row keeps its
		// background highlight across the name and path.
		if _, err := w.Out.WriteString(term.FgDefault); err != nil {
			return 0, err
		}

		if err := w.WriteString(ex.Name); err != nil {
			return 0, err
		}
		if err := w.WriteASCII(space[:l.nameColWidth+2-len(ex.Name)]); err != nil {
			return 0, err
		}
		if err := term.FileLink(&w, ex.Path()); err != nil {
			return 0, err
		}

		if err := term.NextLine(out); err != nil {
			return 0, err
		}
		if _, err := out.WriteString(term.ResetColor); err != nil {
			return 0, err
		}
		nDisplayedRows++
	}

	return nDisplayedRows, nil
}

// Draw renders one full frame inside a synchronized update so the
// terminal applies it without tearing.
func (l *ListState) Draw(out *bufio.Writer) error {
	if l.termHeight == 0 {
		return nil
	}

	if _, err := out.WriteString(term.BeginSynchronizedUpdate + term.MoveHome); err != nil {
		return err
	}

	// Header
	w := term.NewMaxLenWriter(out, l.termWidth)
	if err := w.WriteASCII([]byte("  Current  State    Name")); err != nil {
		return err
	}
	if err := w.WriteASCII(space[:l.nameColWidth-2]); err != nil {
		return err
	}
	if err := w.WriteASCII([]byte("Path")); err != nil {
		return err
	}
	if err := term.NextLine(out); err != nil {
		return err
	}

	// Rows
	nDisplayedRows, err := l.drawRows(out)
	if err != nil {
		return err
	}

	// Padding so the footer stays put regardless of the row count.
	for i := nDisplayedRows; i < l.scroll.MaxNRowsToDisplay(); i++ {
		if err := term.NextLine(out); err != nil {
			return err
		}
	}

	if l.showFooter {
		if err := l.drawFooter(out); err != nil {
			return err
		}
	}

	if _, err := out.WriteString(term.EndSynchronizedUpdate); err != nil {
		return err
	}
	return out.Flush()
}

func (l *ListState) drawFooter(out *bufio.Writer) error {
	if _, err := out.Write(l.separatorLine); err != nil {
		return err
	}
	if err := term.NextLine(out); err != nil {
		return err
	}

	w := term.NewMaxLenWriter(out, l.termWidth)
	if err := term.ProgressBar(&w, l.store.NumDone(), len(l.store.Exercises()), l.termWidth); err != nil {
		return err
	}
	if err := term.NextLine(out); err != nil {
		return err
	}

	if _, err := out.Write(l.separatorLine); err != nil {
		return err
	}
	if err := term.NextLine(out); err != nil {
		return err
	}

	w = term.NewMaxLenWriter(out, l.termWidth)
	if l.Message == "" {
		if err := l.drawHelpLine(out, &w); err != nil {
			return err
		}
	} else {
		if _, err := w.Out.WriteString(term.FgMagenta); err != nil {
			return err
		}
		if err := w.WriteString(l.Message); err != nil {
			return err
		}
		if _, err := out.WriteString(term.ResetColor); err != nil {
			return err
		}
		if err := term.NextLine(out); err != nil {
			return err
		}
	}

	return term.NextLine(out)
}

// drawHelpLine writes the static key help. The filter option that is
// currently inactive is highlighted to show what the toggle key would
// switch to.
func (l *ListState) drawHelpLine(out *bufio.Writer, w *term.MaxLenWriter) error {
	if _, hasSelected := l.scroll.Selected(); hasSelected {
		if err := w.WriteString("↓/j ↑/k home/g end/G | <c>ontinue at | <r>eset exercise"); err != nil {
			return err
		}
		if l.narrowTerm {
			if err := term.NextLine(out); err != nil {
				return err
			}
			fresh := term.NewMaxLenWriter(out, l.termWidth)
			*w = fresh

			if err := w.WriteASCII([]byte("filter ")); err != nil {
				return err
			}
		} else if err := w.WriteASCII([]byte(" | filter ")); err != nil {
			return err
		}
	} else {
		// Nothing selected (and nothing shown), so only display filter
		// and quit.
		if err := w.WriteASCII([]byte("filter ")); err != nil {
			return err
		}
	}

	highlight := func(s string) error {
		if _, err := w.Out.WriteString(term.FgMagenta + term.Underline); err != nil {
			return err
		}
		if err := w.WriteASCII([]byte(s)); err != nil {
			return err
		}
		_, err := w.Out.WriteString(term.ResetColor)
		return err
	}

	switch l.filter {
	case FilterDone:
		if err := w.WriteASCII([]byte("<d>one/")); err != nil {
			return err
		}
		if err := highlight("<p>ending"); err != nil {
			return err
		}
	case FilterPending:
		if err := highlight("<d>one"); err != nil {
			return err
		}
		if err := w.WriteASCII([]byte("/<p>ending")); err != nil {
			return err
		}
	default:
		if err := w.WriteASCII([]byte("<d>one/<p>ending")); err != nil {
			return err
		}
	}

	return w.WriteASCII([]byte(" | <q>uit list"))
}

// updateRows recounts the rows matching the filter and re-clamps the
// scroll state.
func (l *ListState) updateRows() {
	nRows := 0
	for _, ex := range l.store.Exercises() {
		if l.filter.matches(ex) {
			nRows++
		}
	}
	l.scroll.SetNRows(nRows)
}

func (l *ListState) Filter() Filter {
	return l.filter
}

func (l *ListState) SetFilter(filter Filter) {
	l.filter = filter
	l.updateRows()
}

func (l *ListState) SelectNext()     { l.scroll.SelectNext() }
func (l *ListState) SelectPrevious() { l.scroll.SelectPrevious() }
func (l *ListState) SelectFirst()    { l.scroll.SelectFirst() }
func (l *ListState) SelectLast()     { l.scroll.SelectLast() }

// selectedToExerciseInd translates a filtered-view ordinal into the
// absolute exercise index.
func (l *ListState) selectedToExerciseInd(selected int) (int, error) {
	if l.filter == FilterAll {
		return selected, nil
	}

	matchOrd := -1
	for ind, ex := range l.store.Exercises() {
		if !l.filter.matches(ex) {
			continue
		}
		matchOrd++
		if matchOrd == selected {
			return ind, nil
		}
	}
	return 0, ErrInvalidSelection
}

// ResetSelected resets the selected exercise in the store. An empty
// selection is a normal state, reported through Message.
func (l *ListState) ResetSelected() error {
	selected, ok := l.scroll.Selected()
	if !ok {
		l.Message += "Nothing selected to reset!"
		return nil
	}

	ind, err := l.selectedToExerciseInd(selected)
	if err != nil {
		return err
	}
	name, err := l.store.ResetByIndex(ind)
	if err != nil {
		return err
	}
	l.updateRows()
	l.Message += fmt.Sprintf("The exercise `%s` has been reset", name)
	return nil
}

// SelectedToCurrent makes the selected exercise the current one.
// Returns true if there was something to select.
func (l *ListState) SelectedToCurrent() (bool, error) {
	selected, ok := l.scroll.Selected()
	if !ok {
		l.Message += "Nothing selected to continue at!"
		return false, nil
	}

	ind, err := l.selectedToExerciseInd(selected)
	if err != nil {
		return false, err
	}
	if err := l.store.SetCurrentIndex(ind); err != nil {
		return false, err
	}
	return true, nil
}
