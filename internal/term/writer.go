package term

import (
	"bufio"

	xansi "github.com/charmbracelet/x/ansi"
)

// CountedWrite is implemented by writers that account for the number of
// terminal columns they have produced on the current line.
type CountedWrite interface {
	WriteString(s string) error
	WriteASCII(b []byte) error
	AddToLen(n int)
}

// MaxLenWriter writes at most a fixed number of terminal columns per line
// and silently drops everything past the budget. Overflow is expected
// during rendering on small terminals and must never corrupt the layout,
// so it is not an error. Styling escape sequences cost zero columns.
//
// Out is exported so callers can write zero-width escape sequences or
// pre-measured glyphs directly; pair direct glyph writes with AddToLen.
type MaxLenWriter struct {
	Out *bufio.Writer

	currentLen int
	maxLen     int
}

func NewMaxLenWriter(out *bufio.Writer, maxLen int) MaxLenWriter {
	return MaxLenWriter{Out: out, maxLen: maxLen}
}

// AddToLen reserves n columns for output the caller wrote directly to Out,
// e.g. a double-width glyph that should not be re-measured.
func (w *MaxLenWriter) AddToLen(n int) {
	w.currentLen += n
}

// WriteString writes as many leading columns of s as fit in the remaining
// budget. ANSI escape sequences in s are not counted against the budget.
func (w *MaxLenWriter) WriteString(s string) error {
	budget := w.maxLen - w.currentLen
	if budget <= 0 {
		return nil
	}

	width := xansi.StringWidth(s)
	if width > budget {
		s = xansi.Cut(s, 0, budget)
		width = budget
	}

	if _, err := w.Out.WriteString(s); err != nil {
		return err
	}
	w.currentLen += width
	return nil
}

// WriteASCII is the fast path for plain ASCII bytes, where one byte is one
// column.
func (w *MaxLenWriter) WriteASCII(b []byte) error {
	budget := w.maxLen - w.currentLen
	if budget <= 0 {
		return nil
	}
	if len(b) > budget {
		b = b[:budget]
	}

	if _, err := w.Out.Write(b); err != nil {
		return err
	}
	w.currentLen += len(b)
	return nil
}
