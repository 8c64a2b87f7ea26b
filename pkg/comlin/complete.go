package comlin

// completeLine handles one keystroke while completion cycling is active or
// being triggered. The completion source is queried anew with the current
// buffer content. It returns the byte that still needs normal processing;
// consumed is true when cycling fully absorbed the keystroke.
func (s *State) completeLine(b byte) (_ byte, consumed bool, _ error) {
	candidates := s.complete(s.buf.String())
	if len(candidates) == 0 {
		if err := s.beep(); err != nil {
			return 0, false, err
		}
		s.inCompletion = false
		return b, false, nil
	}

	switch b {
	case keyTab:
		if !s.inCompletion {
			s.inCompletion = true
			s.completionIdx = 0
		} else {
			// One extra cycling slot past the last candidate stands for
			// "no selection" and is announced with a bell.
			s.completionIdx = (s.completionIdx + 1) % (len(candidates) + 1)
			if s.completionIdx == len(candidates) {
				if err := s.beep(); err != nil {
					return 0, false, err
				}
			}
		}
		consumed = true
	case keyEsc:
		// Abandon cycling; the redraw below re-shows the original buffer.
		s.inCompletion = false
		consumed = true
	default:
		// Any other byte commits the highlighted candidate and is then
		// processed normally by the caller.
		if s.completionIdx < len(candidates) {
			s.buf.SetContent(candidates[s.completionIdx])
		}
		s.inCompletion = false
	}

	var err error
	if s.inCompletion && s.completionIdx < len(candidates) {
		err = s.refreshWithCompletion(refreshAll)
	} else {
		err = s.refreshLine()
	}
	if err != nil {
		return 0, false, err
	}
	return b, consumed, nil
}

// refreshWithCompletion redraws the line showing the highlighted candidate
// in place of the buffer content. The buffer itself is not touched; only
// the display substitutes the candidate.
func (s *State) refreshWithCompletion(flags refreshFlags) error {
	candidates := s.complete(s.buf.String())
	if s.completionIdx < len(candidates) {
		c := candidates[s.completionIdx]
		return s.refresh([]byte(c), len(c), flags)
	}
	return s.refresh(s.buf.Bytes(), s.buf.Dot(), flags)
}

// beep emits the completion-exhausted/no-match feedback.
func (s *State) beep() error {
	return s.sess.WriteString("\a")
}
