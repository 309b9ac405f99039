package list

import (
	"bufio"
	"errors"
	"os"

	xterm "golang.org/x/term"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/logger"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/term"
)

// SessionOutcome reports why the list session ended.
type SessionOutcome int

const (
	// SessionQuit means the user left the list without changing the
	// current exercise.
	SessionQuit SessionOutcome = iota
	// SessionContinue means the user picked an exercise to continue at.
	SessionContinue
)

type keyKind int

const (
	keyUnknown keyKind = iota
	keyUp
	keyDown
	keyHome
	keyEnd
	keyFilterDone
	keyFilterPending
	keyReset
	keyContinueAt
	keyQuit
)

// RunSession owns the terminal and the progress store until it returns:
// raw mode, alternate screen, and exclusive mutable access to store.
// The caller must not touch the store concurrently.
func RunSession(store ProgressStore, input, output *os.File) (SessionOutcome, error) {
	rawState, err := xterm.MakeRaw(int(input.Fd()))
	if err != nil {
		return SessionQuit, err
	}

	out := bufio.NewWriter(output)
	in := bufio.NewReader(input)

	if _, err := out.WriteString(term.EnterAltScreen + term.HideCursor + term.ClearScreen); err != nil {
		return SessionQuit, err
	}

	outcome, err := runSessionLoop(store, in, out, int(output.Fd()))

	// Restore the terminal even when the loop failed; the first error
	// wins.
	_, werr := out.WriteString(term.ShowCursor + term.LeaveAltScreen)
	if ferr := out.Flush(); werr == nil {
		werr = ferr
	}
	if rerr := xterm.Restore(int(input.Fd()), rawState); werr == nil {
		werr = rerr
	}
	if err == nil {
		err = werr
	}
	return outcome, err
}

func runSessionLoop(store ProgressStore, in *bufio.Reader, out *bufio.Writer, sizeFd int) (SessionOutcome, error) {
	state := NewListState(store)

	for {
		width, height, err := xterm.GetSize(sizeFd)
		if err != nil {
			width, height = 0, 0
		}
		state.SetTermSize(width, height)

		if err := state.Draw(out); err != nil {
			return SessionQuit, err
		}

		key, err := readKey(in)
		if err != nil {
			return SessionQuit, err
		}

		// The footer message only survives until the next key press.
		state.Message = ""

		switch key {
		case keyDown:
			state.SelectNext()
		case keyUp:
			state.SelectPrevious()
		case keyHome:
			state.SelectFirst()
		case keyEnd:
			state.SelectLast()
		case keyFilterDone:
			state.SetFilter(toggleFilter(state.Filter(), FilterDone))
		case keyFilterPending:
			state.SetFilter(toggleFilter(state.Filter(), FilterPending))
		case keyReset:
			if err := state.ResetSelected(); err != nil {
				if errors.Is(err, ErrInvalidSelection) {
					logger.Warn("stale selection on reset", "err", err)
					continue
				}
				return SessionQuit, err
			}
		case keyContinueAt:
			ok, err := state.SelectedToCurrent()
			if err != nil {
				if errors.Is(err, ErrInvalidSelection) {
					logger.Warn("stale selection on continue", "err", err)
					continue
				}
				return SessionQuit, err
			}
			if ok {
				return SessionContinue, nil
			}
		case keyQuit:
			return SessionQuit, nil
		}
	}
}

// toggleFilter switches to the pressed filter, or back to All when that
// filter is already active.
func toggleFilter(current, pressed Filter) Filter {
	if current == pressed {
		return FilterAll
	}
	return pressed
}

func readKey(in *bufio.Reader) (keyKind, error) {
	b, err := in.ReadByte()
	if err != nil {
		return keyUnknown, err
	}

	switch b {
	case 0x1b:
		return parseEscapeSequence(in)
	case 'j':
		return keyDown, nil
	case 'k':
		return keyUp, nil
	case 'g':
		return keyHome, nil
	case 'G':
		return keyEnd, nil
	case 'd':
		return keyFilterDone, nil
	case 'p':
		return keyFilterPending, nil
	case 'r':
		return keyReset, nil
	case 'c':
		return keyContinueAt, nil
	case 'q', 0x03: // ctrl+c
		return keyQuit, nil
	}
	return keyUnknown, nil
}

func parseEscapeSequence(in *bufio.Reader) (keyKind, error) {
	if in.Buffered() == 0 {
		return keyQuit, nil // bare escape
	}
	next, err := in.ReadByte()
	if err != nil {
		return keyUnknown, err
	}

	switch next {
	case '[':
		return parseCSI(in)
	case 'O':
		final, err := in.ReadByte()
		if err != nil {
			return keyUnknown, err
		}
		switch final {
		case 'H':
			return keyHome, nil
		case 'F':
			return keyEnd, nil
		}
	}
	return keyUnknown, nil
}

func parseCSI(in *bufio.Reader) (keyKind, error) {
	var seq []byte
	for {
		b, err := in.ReadByte()
		if err != nil {
			return keyUnknown, err
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' || len(seq) > 5 {
			break
		}
	}

	switch seq[len(seq)-1] {
	case 'A':
		return keyUp, nil
	case 'B':
		return keyDown, nil
	case 'H':
		return keyHome, nil
	case 'F':
		return keyEnd, nil
	case '~':
		switch string(seq[:len(seq)-1]) {
		case "1", "7":
			return keyHome, nil
		case "4", "8":
			return keyEnd, nil
		}
	}
	return keyUnknown, nil
}
