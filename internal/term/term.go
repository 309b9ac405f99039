// Package term wraps the small set of terminal primitives the trainer
// needs: width-bounded writing, a handful of escape sequences, the
// progress bar and clickable file links. Colors and cursor motion are
// raw escape sequences; nothing here talks to the terminal driver
// beyond writing bytes.
package term

import (
	"bufio"
	"fmt"
	"path/filepath"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Escape sequences. Synchronized update (mode 2026) brackets a frame so
// the terminal applies it atomically, preventing tearing on full
// redraws.
const (
	BeginSynchronizedUpdate = "\x1b[?2026h"
	EndSynchronizedUpdate   = "\x1b[?2026l"

	MoveHome        = "\x1b[H"
	ClearScreen     = "\x1b[2J"
	ClearToLineEnd  = "\x1b[K"
	HideCursor      = "\x1b[?25l"
	ShowCursor      = "\x1b[?25h"
	EnterAltScreen  = "\x1b[?1049h"
	LeaveAltScreen  = "\x1b[?1049l"

	ResetColor  = "\x1b[0m"
	FgRed       = "\x1b[31m"
	FgGreen     = "\x1b[32m"
	FgYellow    = "\x1b[33m"
	FgBlue      = "\x1b[34m"
	FgMagenta   = "\x1b[35m"
	FgDefault   = "\x1b[39m"
	Underline   = "\x1b[4m"
	BgSelection = "\x1b[48;2;40;40;40m"
)

// NextLine clears the remainder of the current line and moves the cursor
// to the start of the next one.
func NextLine(out *bufio.Writer) error {
	_, err := out.WriteString(ClearToLineEnd + "\r\n")
	return err
}

const progressPrefix = "Progress: ["

// ProgressBar renders "Progress: [####>---] done/total" fitted to
// lineWidth. Below a minimal width it falls back to the bare counter.
func ProgressBar(w *MaxLenWriter, progress, total, lineWidth int) error {
	if progress > total {
		progress = total
	}

	counter := fmt.Sprintf("%3d/%d", progress, total)

	// prefix + "] " + counter, with at least a few bar columns left.
	minWidth := len(progressPrefix) + 2 + len(counter) + 4
	if lineWidth < minWidth {
		return w.WriteString(fmt.Sprintf("Progress: %d/%d", progress, total))
	}

	barWidth := lineWidth - len(progressPrefix) - 2 - len(counter)
	filled := 0
	if total > 0 {
		filled = barWidth * progress / total
	}

	if err := w.WriteASCII([]byte(progressPrefix)); err != nil {
		return err
	}

	if _, err := w.Out.WriteString(FgGreen); err != nil {
		return err
	}
	for i := 0; i < filled; i++ {
		if err := w.WriteASCII([]byte{'#'}); err != nil {
			return err
		}
	}
	if filled < barWidth {
		if err := w.WriteASCII([]byte{'>'}); err != nil {
			return err
		}
	}
	if _, err := w.Out.WriteString(FgRed); err != nil {
		return err
	}
	for i := filled + 1; i < barWidth; i++ {
		if err := w.WriteASCII([]byte{'-'}); err != nil {
			return err
		}
	}
	if _, err := w.Out.WriteString(ResetColor); err != nil {
		return err
	}

	return w.WriteASCII([]byte("] " + counter))
}

// FileLink writes path as an OSC 8 hyperlink so terminals that support
// it make the path clickable. The link text still costs its display
// width, which is credited to the writer explicitly because the escape
// wrapper would otherwise confuse plain measurement.
func FileLink(w *MaxLenWriter, path string) error {
	abs, err := filepath.Abs(path)
	width := runewidth.StringWidth(path)
	if err != nil || width > w.maxLen-w.currentLen {
		// Not linkable or not enough room for the full link text; fall
		// back to the bounded plain path.
		return w.WriteString(path)
	}

	w.AddToLen(width)
	_, err = w.Out.WriteString(FgBlue + termenv.Hyperlink("file://"+abs, path) + ResetColor)
	return err
}
