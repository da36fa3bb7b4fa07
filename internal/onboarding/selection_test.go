package onboarding

import "testing"

func TestSelectionStateStartsEmpty(t *testing.T) {
	s := NewSelectionState()

	if s.Query != "" || s.Committed != nil || s.DropdownOpen || s.Touched {
		t.Errorf("new state is not empty: %+v", s)
	}
	if s.ShowRequiredMessage() {
		t.Error("untouched empty state must not show the required message")
	}
	if s.ContinueEnabled() {
		t.Error("continue must be disabled without a selection")
	}
}

func TestSelectionStateInputOpensDropdown(t *testing.T) {
	s := NewSelectionState()

	s.Input("mum")

	if s.Query != "mum" {
		t.Errorf("query = %q, want %q", s.Query, "mum")
	}
	if !s.DropdownOpen {
		t.Error("typing must open the dropdown")
	}
	if !s.Typing() {
		t.Error("Typing() must report true for a non-empty query")
	}
}

func TestSelectionStateCommitSetsDisplayText(t *testing.T) {
	s := NewSelectionState()
	s.Input("mum")

	s.Commit(LocationRecord{City: "Mumbai", State: "Maharashtra", Pincode: "400001"})

	if s.Query != "Mumbai, Maharashtra" {
		t.Errorf("query = %q, want %q", s.Query, "Mumbai, Maharashtra")
	}
	if s.Committed == nil || s.Committed.Pincode != "400001" {
		t.Errorf("committed = %+v, want the picked record", s.Committed)
	}
	if s.DropdownOpen {
		t.Error("commit must close the dropdown")
	}
	if !s.ContinueEnabled() {
		t.Error("continue must be enabled after a commit")
	}
}

func TestSelectionStateEditInvalidatesCommit(t *testing.T) {
	s := NewSelectionState()
	s.Commit(LocationRecord{City: "Mumbai", State: "Maharashtra"})

	s.Input("Mumbai, Maharashtr")

	if s.Committed != nil {
		t.Error("editing the text must clear the committed record")
	}
	if !s.DropdownOpen {
		t.Error("editing must re-open the dropdown")
	}
	if s.ContinueEnabled() {
		t.Error("continue must be disabled after the commit is invalidated")
	}
}

func TestSelectionStateClearMatchesBackspaceToEmpty(t *testing.T) {
	viaClear := NewSelectionState()
	viaClear.Commit(LocationRecord{City: "Pune", State: "Maharashtra"})
	viaClear.Clear()

	viaBackspace := NewSelectionState()
	viaBackspace.Commit(LocationRecord{City: "Pune", State: "Maharashtra"})
	viaBackspace.Input("")

	if *viaClear != *viaBackspace {
		t.Errorf("clear = %+v, backspace-to-empty = %+v, want identical states", viaClear, viaBackspace)
	}
	if viaClear.Query != "" || viaClear.Committed != nil || !viaClear.DropdownOpen {
		t.Errorf("cleared state = %+v, want empty query with dropdown open", viaClear)
	}
}

func TestSelectionStateRequiredMessageTruthTable(t *testing.T) {
	committed := LocationRecord{City: "Delhi", State: "Delhi"}

	tests := []struct {
		name    string
		query   string
		touched bool
		commit  bool
		want    bool
	}{
		{"untouched, no selection", "", false, false, false},
		{"untouched, selected", "", false, true, false},
		{"touched, empty query, no selection", "", true, false, true},
		{"touched, typed but not picked", "del", true, false, false},
		{"touched, selected", "", true, true, false},
	}

	for _, tc := range tests {
		s := NewSelectionState()
		if tc.query != "" {
			s.Input(tc.query)
		}
		if tc.commit {
			s.Commit(committed)
		}
		if tc.touched {
			s.Blur()
		}
		if got := s.ShowRequiredMessage(); got != tc.want {
			t.Errorf("%s: ShowRequiredMessage() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSelectionStateBlurIsAdvisory(t *testing.T) {
	s := NewSelectionState()
	s.Input("del")

	s.Blur()

	if !s.Touched {
		t.Error("blur must mark the field as touched")
	}
	if s.DropdownOpen {
		t.Error("blur must close the dropdown")
	}

	// Blur never blocks anything: typing and committing still work.
	s.Input("delh")
	if !s.DropdownOpen {
		t.Error("typing after blur must re-open the dropdown")
	}
	s.Commit(LocationRecord{City: "Delhi", State: "Delhi"})
	if !s.ContinueEnabled() {
		t.Error("commit after blur must enable continue")
	}
	if s.ShowRequiredMessage() {
		t.Error("required message must clear once a selection exists")
	}
}
