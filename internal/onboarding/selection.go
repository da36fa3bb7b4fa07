package onboarding

import "strings"

// SelectionState holds the mutable state of one location selection widget:
// the query text, the committed selection if any, dropdown visibility, and
// the touched flag used only for validation display. Each step instance owns
// exactly one SelectionState; it is never shared.
type SelectionState struct {
	Query        string
	Committed    *LocationRecord
	DropdownOpen bool
	Touched      bool
}

// NewSelectionState creates the empty state a step starts with.
func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// Input records a keystroke. Any edit invalidates a prior commitment: a
// confirmed selection is trust-but-verify, so editing the text without
// re-picking must not leave a stale record silently active.
func (s *SelectionState) Input(text string) {
	s.Query = text
	s.Committed = nil
	s.DropdownOpen = true
}

// Clear resets the query as a distinct user action. It converges on the same
// state as backspacing to empty: dropdown re-opened over the full dataset.
func (s *SelectionState) Clear() {
	s.Query = ""
	s.Committed = nil
	s.DropdownOpen = true
}

// Commit confirms a selection. The query becomes the canonical display form
// and the dropdown closes.
func (s *SelectionState) Commit(record LocationRecord) {
	s.Query = record.DisplayText()
	s.Committed = &record
	s.DropdownOpen = false
}

// Blur marks the field as touched and closes the dropdown. A pick is
// accepted even after a blur (pick wins over blur), so closing here never
// makes pick-via-click unreachable.
func (s *SelectionState) Blur() {
	s.Touched = true
	s.DropdownOpen = false
}

// Typing reports whether the user has entered a non-empty query.
func (s *SelectionState) Typing() bool {
	return strings.TrimSpace(s.Query) != ""
}

// ShowRequiredMessage reports whether the advisory "required" message should
// be displayed: the field was touched, nothing is committed, and the query is
// empty. Typed-but-unpicked text suppresses it. It never blocks typing or
// re-opening the dropdown.
func (s *SelectionState) ShowRequiredMessage() bool {
	return s.Touched && s.Committed == nil && !s.Typing()
}

// ContinueEnabled reports whether the continue action is allowed.
func (s *SelectionState) ContinueEnabled() bool {
	return s.Committed != nil && s.Committed.Complete()
}
