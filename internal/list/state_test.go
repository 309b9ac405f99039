package list

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/exercise"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/mocks"
)

// Test fixtures

func testExercises() []exercise.Exercise {
	return []exercise.Exercise{
		{Name: "intro1", Dir: "00_intro/intro1", Done: true},
		{Name: "variables1", Dir: "01_variables/variables1", Done: true},
		{Name: "variables2", Dir: "01_variables/variables2", Done: true},
		{Name: "functions1", Dir: "02_functions/functions1"},
		{Name: "if1", Dir: "03_if/if1"},
	}
}

func newTestStore(current int) *mocks.MockProgressStore {
	store := &mocks.MockProgressStore{}
	store.On("Exercises").Return(testExercises())
	store.On("CurrentIndex").Return(current)
	store.On("NumDone").Return(3)
	return store
}

func renderFrame(t *testing.T, l *ListState) string {
	t.Helper()
	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	require.NoError(t, l.Draw(out))
	return buf.String()
}

// frameLines strips all escape sequences and returns the visible lines.
func frameLines(frame string) []string {
	return strings.Split(xansi.Strip(frame), "\r\n")
}

func TestNewListStateSelectsCurrentExercise(t *testing.T) {
	l := NewListState(newTestStore(3))

	selected, has := l.scroll.Selected()
	require.True(t, has)
	assert.Equal(t, 3, selected)
}

func TestDrawRendersHeaderRowsAndFooter(t *testing.T) {
	l := NewListState(newTestStore(3))
	l.SetTermSize(100, 12)

	visible := xansi.Strip(renderFrame(t, l))

	assert.Contains(t, visible, "Current  State")
	assert.Contains(t, visible, "DONE")
	assert.Contains(t, visible, "PENDING")
	assert.Contains(t, visible, "Progress: [")
	assert.Contains(t, visible, "3/5")
	assert.Contains(t, visible, "<q>uit list")

	// Selection starts on the current exercise, so both markers sit on
	// the same row.
	for _, line := range frameLines(renderFrame(t, l)) {
		if strings.Contains(line, "🦀") {
			assert.Contains(t, line, ">>>>>>>")
			assert.Contains(t, line, "functions1")
		}
	}
}

func TestDrawLinesStayWithinTerminalWidth(t *testing.T) {
	widths := []int{25, 40, 60, 100}

	for _, width := range widths {
		l := NewListState(newTestStore(0))
		l.SetTermSize(width, 12)

		for _, line := range frameLines(renderFrame(t, l)) {
			assert.LessOrEqual(t, xansi.StringWidth(line), width,
				"line overflows %d columns: %q", width, line)
		}
	}
}

func TestDrawSkipsFrameWhileHeightUnresolved(t *testing.T) {
	l := NewListState(newTestStore(0))
	l.SetTermSize(80, 0)

	assert.Empty(t, renderFrame(t, l))
}

func TestDrawHidesFooterOnShortTerminal(t *testing.T) {
	l := NewListState(newTestStore(0))
	l.SetTermSize(100, 5)

	visible := xansi.Strip(renderFrame(t, l))

	assert.NotContains(t, visible, "Progress:")
	// 4 rows fit below the header; the last exercise is scrolled out.
	assert.Contains(t, visible, "intro1")
	assert.NotContains(t, visible, "if1")
}

func TestDrawShowsMessageInsteadOfHelp(t *testing.T) {
	l := NewListState(newTestStore(0))
	l.SetTermSize(100, 12)
	l.Message = "The exercise `intro1` has been reset"

	visible := xansi.Strip(renderFrame(t, l))

	assert.Contains(t, visible, "has been reset")
	assert.NotContains(t, visible, "<q>uit list")
}

func TestDrawWrapsHelpOnNarrowTerminal(t *testing.T) {
	l := NewListState(newTestStore(0))

	l.SetTermSize(120, 12)
	assert.Contains(t, xansi.Strip(renderFrame(t, l)), " | filter ")

	// Shrinking the terminal moves the filter options to their own line
	// without losing the selection.
	l.SetTermSize(60, 12)
	lines := frameLines(renderFrame(t, l))

	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "filter ") {
			found = true
			assert.NotContains(t, line, "<r>eset")
		}
	}
	assert.True(t, found, "expected a standalone filter line")

	_, has := l.scroll.Selected()
	assert.True(t, has)
}

func TestSetFilterDone(t *testing.T) {
	l := NewListState(newTestStore(3))
	l.SetTermSize(100, 12)

	l.SetFilter(FilterDone)

	assert.Equal(t, FilterDone, l.Filter())
	// 3 rows remain, the selection is clamped onto the last one.
	selected, has := l.scroll.Selected()
	require.True(t, has)
	assert.Equal(t, 2, selected)

	visible := xansi.Strip(renderFrame(t, l))
	assert.NotContains(t, visible, "PENDING")
	assert.NotContains(t, visible, "functions1")
}

func TestFilterWithNoMatchesDropsSelection(t *testing.T) {
	store := &mocks.MockProgressStore{}
	store.On("Exercises").Return([]exercise.Exercise{
		{Name: "intro1", Dir: "00_intro/intro1"},
		{Name: "if1", Dir: "03_if/if1"},
	})
	store.On("CurrentIndex").Return(0)
	store.On("NumDone").Return(0)

	l := NewListState(store)
	l.SetTermSize(100, 12)

	l.SetFilter(FilterDone)

	_, has := l.scroll.Selected()
	assert.False(t, has)

	// An empty filtered list still renders a full, bounded frame.
	for _, line := range frameLines(renderFrame(t, l)) {
		assert.LessOrEqual(t, xansi.StringWidth(line), 100)
	}
	assert.NotContains(t, xansi.Strip(renderFrame(t, l)), "DONE")
}

func TestResetSelectedWithoutSelection(t *testing.T) {
	store := &mocks.MockProgressStore{}
	store.On("Exercises").Return([]exercise.Exercise{})
	store.On("CurrentIndex").Return(0)

	l := NewListState(store)

	require.NoError(t, l.ResetSelected())

	assert.Equal(t, "Nothing selected to reset!", l.Message)
	store.AssertNotCalled(t, "ResetByIndex", mock.Anything)
}

func TestResetSelectedTranslatesFilteredOrdinal(t *testing.T) {
	store := newTestStore(0)
	store.On("ResetByIndex", 4).Return("if1", nil)

	l := NewListState(store)
	l.SetTermSize(100, 12)
	l.SetFilter(FilterPending)
	l.SelectNext()

	require.NoError(t, l.ResetSelected())

	assert.Contains(t, l.Message, "`if1` has been reset")
	store.AssertCalled(t, "ResetByIndex", 4)
}

func TestResetSelectedPropagatesStoreError(t *testing.T) {
	store := newTestStore(3)
	store.On("ResetByIndex", 3).Return("", assert.AnError)

	l := NewListState(store)
	l.SetTermSize(100, 12)

	err := l.ResetSelected()

	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, l.Message)
}

func TestSelectedToCurrent(t *testing.T) {
	store := newTestStore(0)
	store.On("SetCurrentIndex", 4).Return(nil)

	l := NewListState(store)
	l.SetTermSize(100, 12)
	l.SelectLast()

	ok, err := l.SelectedToCurrent()

	require.NoError(t, err)
	assert.True(t, ok)
	store.AssertCalled(t, "SetCurrentIndex", 4)
}

func TestSelectedToCurrentWithoutSelection(t *testing.T) {
	store := &mocks.MockProgressStore{}
	store.On("Exercises").Return([]exercise.Exercise{})
	store.On("CurrentIndex").Return(0)

	l := NewListState(store)

	ok, err := l.SelectedToCurrent()

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Nothing selected to continue at!", l.Message)
	store.AssertNotCalled(t, "SetCurrentIndex", mock.Anything)
}

func TestSelectedToExerciseIndStaleOrdinal(t *testing.T) {
	l := NewListState(newTestStore(0))
	l.SetFilter(FilterDone)

	_, err := l.selectedToExerciseInd(99)

	assert.ErrorIs(t, err, ErrInvalidSelection)
}
