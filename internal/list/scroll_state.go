package list

// ScrollState tracks which rows of a list are visible and which one is
// selected. It is pure window arithmetic, decoupled from rendering: the
// selected row is an ordinal within the currently displayed (possibly
// filtered) rows, not an index into the backing data.
//
// Invariants kept by every method: offset stays inside [0, nRows) (zero
// when the list is empty) and the selection, when present, stays inside
// the visible window [offset, offset+maxNRowsToDisplay).
type ScrollState struct {
	nRows             int
	offset            int
	selected          int
	hasSelected       bool
	maxNRowsToDisplay int
}

// NewScrollState creates the state with the selection clamped into
// [0, nRows). minDisplayed is used as the window size until
// SetMaxNRowsToDisplay reports the real terminal budget.
func NewScrollState(nRows, selected, minDisplayed int) ScrollState {
	s := ScrollState{
		nRows:             nRows,
		maxNRowsToDisplay: minDisplayed,
	}
	if nRows > 0 {
		if selected < 0 {
			selected = 0
		} else if selected >= nRows {
			selected = nRows - 1
		}
		s.selected = selected
		s.hasSelected = true
	}
	return s
}

func (s *ScrollState) Offset() int {
	return s.offset
}

// Selected returns the selected ordinal, if any.
func (s *ScrollState) Selected() (int, bool) {
	return s.selected, s.hasSelected
}

func (s *ScrollState) MaxNRowsToDisplay() int {
	return s.maxNRowsToDisplay
}

// SetNRows updates the row count, clamping the selection and offset back
// into range. This is the repair path after a filter change shrinks or
// grows the list.
func (s *ScrollState) SetNRows(nRows int) {
	s.nRows = nRows

	if nRows == 0 {
		s.hasSelected = false
		s.selected = 0
		s.offset = 0
		return
	}

	if !s.hasSelected {
		s.offset = 0
		return
	}
	if s.selected >= nRows {
		s.selected = nRows - 1
	}
	s.clampOffset()
	s.scrollToSelected()
}

// SetMaxNRowsToDisplay updates the window size. The offset is kept
// unchanged when it is still valid so a resize does not make the list
// jump.
func (s *ScrollState) SetMaxNRowsToDisplay(n int) {
	s.maxNRowsToDisplay = n
	s.clampOffset()
	s.scrollToSelected()
}

func (s *ScrollState) SelectNext() {
	if s.nRows == 0 {
		return
	}
	if !s.hasSelected {
		s.SelectFirst()
		return
	}
	if s.selected+1 < s.nRows {
		s.selected++
		s.scrollToSelected()
	}
}

func (s *ScrollState) SelectPrevious() {
	if s.nRows == 0 {
		return
	}
	if !s.hasSelected {
		s.SelectFirst()
		return
	}
	if s.selected > 0 {
		s.selected--
		s.scrollToSelected()
	}
}

func (s *ScrollState) SelectFirst() {
	if s.nRows == 0 {
		return
	}
	s.selected = 0
	s.hasSelected = true
	s.offset = 0
}

func (s *ScrollState) SelectLast() {
	if s.nRows == 0 {
		return
	}
	s.selected = s.nRows - 1
	s.hasSelected = true
	s.offset = s.nRows - s.maxNRowsToDisplay
	if s.offset < 0 {
		s.offset = 0
	}
}

// clampOffset forces the offset back into [0, nRows).
func (s *ScrollState) clampOffset() {
	if s.offset < 0 {
		s.offset = 0
	}
	if s.nRows == 0 {
		s.offset = 0
	} else if s.offset > s.nRows-1 {
		s.offset = s.nRows - 1
	}
}

// scrollToSelected moves the offset the minimal distance that puts the
// selection back inside the visible window.
func (s *ScrollState) scrollToSelected() {
	if !s.hasSelected || s.maxNRowsToDisplay == 0 {
		return
	}
	if s.selected < s.offset {
		s.offset = s.selected
	} else if s.selected > s.offset+s.maxNRowsToDisplay-1 {
		s.offset = s.selected - s.maxNRowsToDisplay + 1
	}
}
