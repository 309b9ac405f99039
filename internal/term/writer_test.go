package term

import (
	"bufio"
	"bytes"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, maxLen int, fn func(w *MaxLenWriter) error) string {
	t.Helper()
	var buf bytes.Buffer
	out := bufio.NewWriter(&buf)
	w := NewMaxLenWriter(out, maxLen)
	require.NoError(t, fn(&w))
	require.NoError(t, out.Flush())
	return buf.String()
}

func TestMaxLenWriterTruncatesAtBudget(t *testing.T) {
	got := render(t, 5, func(w *MaxLenWriter) error {
		return w.WriteString("hello world")
	})
	assert.Equal(t, "hello", got)
}

func TestMaxLenWriterAccumulatesAcrossWrites(t *testing.T) {
	got := render(t, 7, func(w *MaxLenWriter) error {
		if err := w.WriteString("abc"); err != nil {
			return err
		}
		if err := w.WriteString("defghi"); err != nil {
			return err
		}
		// Budget is exhausted, this write is dropped entirely.
		return w.WriteString("x")
	})
	assert.Equal(t, "abcdefg", got)
}

func TestMaxLenWriterEscapeSequencesAreFree(t *testing.T) {
	got := render(t, 3, func(w *MaxLenWriter) error {
		return w.WriteString(FgRed + "abc" + ResetColor)
	})

	assert.Contains(t, got, FgRed)
	assert.Contains(t, got, ResetColor)
	assert.Equal(t, "abc", xansi.Strip(got))
}

func TestMaxLenWriterCutsWideRunesAtColumns(t *testing.T) {
	// Each CJK rune is two columns wide, so three columns fit one rune.
	got := render(t, 3, func(w *MaxLenWriter) error {
		return w.WriteString("日本語")
	})
	assert.LessOrEqual(t, xansi.StringWidth(got), 3)
	assert.Contains(t, got, "日")
	assert.NotContains(t, got, "語")
}

func TestMaxLenWriterWriteASCII(t *testing.T) {
	got := render(t, 4, func(w *MaxLenWriter) error {
		return w.WriteASCII([]byte("abcdef"))
	})
	assert.Equal(t, "abcd", got)
}

func TestMaxLenWriterAddToLenReservesColumns(t *testing.T) {
	got := render(t, 4, func(w *MaxLenWriter) error {
		w.AddToLen(2)
		return w.WriteASCII([]byte("abcd"))
	})
	assert.Equal(t, "ab", got)
}

func TestProgressBarFitsLineExactly(t *testing.T) {
	got := render(t, 40, func(w *MaxLenWriter) error {
		return ProgressBar(w, 3, 5, 40)
	})

	visible := xansi.Strip(got)
	assert.Equal(t, 40, xansi.StringWidth(visible))
	assert.True(t, len(visible) > 0 && visible[0] == 'P')
	assert.Contains(t, visible, "Progress: [")
	assert.Contains(t, visible, "3/5")
	assert.Contains(t, visible, ">")
	assert.Contains(t, visible, "#")
}

func TestProgressBarCompleteHasNoMarker(t *testing.T) {
	got := render(t, 40, func(w *MaxLenWriter) error {
		return ProgressBar(w, 5, 5, 40)
	})

	visible := xansi.Strip(got)
	assert.NotContains(t, visible, ">")
	assert.NotContains(t, visible, "-")
	assert.Contains(t, visible, "5/5")
}

func TestProgressBarNarrowFallback(t *testing.T) {
	got := render(t, 16, func(w *MaxLenWriter) error {
		return ProgressBar(w, 3, 5, 16)
	})

	visible := xansi.Strip(got)
	assert.NotContains(t, visible, "[")
	assert.Contains(t, visible, "Progress: 3/5")
}

func TestProgressBarClampsOverflowingProgress(t *testing.T) {
	got := render(t, 40, func(w *MaxLenWriter) error {
		return ProgressBar(w, 9, 5, 40)
	})
	assert.Contains(t, xansi.Strip(got), "5/5")
}

func TestFileLinkEmitsHyperlink(t *testing.T) {
	got := render(t, 80, func(w *MaxLenWriter) error {
		return FileLink(w, "exercises/00_intro/intro1/intro1.go")
	})

	assert.Contains(t, got, "\x1b]8;;file://")
	assert.Contains(t, got, "intro1.go")
}

func TestFileLinkFallsBackWhenPathDoesNotFit(t *testing.T) {
	got := render(t, 10, func(w *MaxLenWriter) error {
		return FileLink(w, "exercises/00_intro/intro1/intro1.go")
	})

	assert.NotContains(t, got, "\x1b]8;;")
	assert.Equal(t, "exercises/", got)
}

func TestFileLinkCountsLinkTextWidth(t *testing.T) {
	got := render(t, 80, func(w *MaxLenWriter) error {
		if err := FileLink(w, "exercises/03_if/if1/if1.go"); err != nil {
			return err
		}
		// The link text must have been charged against the budget, so a
		// follow-up write only gets the remainder.
		return w.WriteASCII(bytes.Repeat([]byte{'x'}, 80))
	})

	assert.LessOrEqual(t, xansi.StringWidth(xansi.Strip(got)), 80)
}
