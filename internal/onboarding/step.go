package onboarding

import (
	"context"
	"sync"

	"colabatr_backend/internal/cities"
	"colabatr_backend/internal/geocode"
	"colabatr_backend/platform/apperr"
)

// Mode selects which of the two interchangeable strategies a step uses.
type Mode string

const (
	// ModeList filters the static reference dataset as the user types.
	ModeList Mode = "list"
	// ModeMap resolves locations through the external geocoder.
	ModeMap Mode = "map"
)

// Step is one user's location onboarding step. It owns its SelectionState
// exclusively and, in map mode, the single map marker. All operations run
// under the step's own lock; nothing is shared across instances.
type Step struct {
	mu       sync.Mutex
	mode     Mode
	state    *SelectionState
	dataset  *cities.Dataset
	resolver *geocode.Resolver
	marker   *Coordinates
}

// newStep creates an empty step for the given mode.
func newStep(mode Mode, dataset *cities.Dataset, resolver *geocode.Resolver) *Step {
	return &Step{
		mode:     mode,
		state:    NewSelectionState(),
		dataset:  dataset,
		resolver: resolver,
	}
}

// View is an immutable snapshot of a step, shaped for the client.
type View struct {
	Mode                Mode            `json:"mode"`
	Query               string          `json:"query"`
	DropdownOpen        bool            `json:"dropdownOpen"`
	Touched             bool            `json:"touched"`
	ShowRequiredMessage bool            `json:"showRequiredMessage"`
	ContinueEnabled     bool            `json:"continueEnabled"`
	Committed           *LocationRecord `json:"committed,omitempty"`
	Candidates          []cities.Entry  `json:"candidates,omitempty"`
	Marker              *Coordinates    `json:"marker,omitempty"`
}

// snapshot builds a View. Caller must hold s.mu.
func (s *Step) snapshot() View {
	view := View{
		Mode:                s.mode,
		Query:               s.state.Query,
		DropdownOpen:        s.state.DropdownOpen,
		Touched:             s.state.Touched,
		ShowRequiredMessage: s.state.ShowRequiredMessage(),
		ContinueEnabled:     s.state.ContinueEnabled(),
		Committed:           s.state.Committed,
		Marker:              s.marker,
	}

	if s.mode == ModeList && s.state.DropdownOpen {
		view.Candidates = cities.Filter(s.dataset.Entries(), s.state.Query)
	}

	return view
}

// View returns the current snapshot.
func (s *Step) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Input applies a keystroke and recomputes candidates.
func (s *Step) Input(text string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Input(text)
	return s.snapshot()
}

// Clear resets the query, re-opening the dropdown over the full dataset.
func (s *Step) Clear() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Clear()
	return s.snapshot()
}

// Pick commits the entry identified by the full (city, state, pincode)
// tuple. City names are not unique across states, so the whole tuple is the
// identity. Picks are accepted regardless of dropdown visibility: a pick
// that races a blur still wins.
func (s *Step) Pick(city, state, pincode string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeList {
		return s.snapshot(), apperr.BadRequest("pick requires the list selector")
	}

	for _, entry := range s.dataset.Entries() {
		if entry.City == city && entry.State == state && entry.Pincode == pincode {
			s.state.Commit(recordFromEntry(entry))
			return s.snapshot(), nil
		}
	}

	return s.snapshot(), apperr.Validation("picked entry is not in the reference dataset")
}

// Blur marks the field as touched. Advisory only; it never blocks anything.
func (s *Step) Blur() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Blur()
	return s.snapshot()
}

// ResolveCoordinate reverse-geocodes a map click. A lookup that produces no
// result is a silent no-op: state unchanged, marker unmoved. In-flight
// lookups are not superseded; responses apply in arrival order.
func (s *Step) ResolveCoordinate(ctx context.Context, lat, lng float64) (View, error) {
	if err := s.requireMapMode(); err != nil {
		return s.View(), err
	}

	resolved, err := s.resolver.ReverseGeocode(ctx, lat, lng)
	return s.applyResolution(resolved, err)
}

// ResolvePlace resolves a free-text place query from the map search box.
func (s *Step) ResolvePlace(ctx context.Context, query string) (View, error) {
	if err := s.requireMapMode(); err != nil {
		return s.View(), err
	}

	resolved, err := s.resolver.SearchPlace(ctx, query)
	return s.applyResolution(resolved, err)
}

func (s *Step) requireMapMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeMap {
		return apperr.BadRequest("resolve requires the map selector")
	}
	return nil
}

func (s *Step) applyResolution(resolved *geocode.ResolvedLocation, err error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return s.snapshot(), err
	}
	if resolved == nil {
		// Soft failure: the marker does not move and nothing is surfaced.
		return s.snapshot(), nil
	}

	record := recordFromResolved(*resolved)
	s.state.Commit(record)
	// At most one marker exists; a new resolution moves it.
	s.marker = &Coordinates{Lat: resolved.Lat, Lng: resolved.Lng}
	return s.snapshot(), nil
}

// Continue finalizes the step. It is allowed exactly when a complete record
// exists; the returned record is what gets emitted to the caller.
func (s *Step) Continue() (LocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.ContinueEnabled() {
		return LocationRecord{}, apperr.Validation("no location selected")
	}

	return *s.state.Committed, nil
}
