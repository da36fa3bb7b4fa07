package onboarding

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps one step per user. Steps live for the duration of the
// onboarding flow and are removed on completion or explicit destroy.
type Store struct {
	mu    sync.RWMutex
	steps map[uuid.UUID]*Step
}

// NewStore creates an empty step store.
func NewStore() *Store {
	return &Store{steps: make(map[uuid.UUID]*Step)}
}

// GetOrCreate returns the user's step, creating it with factory on first use.
func (st *Store) GetOrCreate(userID uuid.UUID, factory func() *Step) *Step {
	st.mu.RLock()
	step, ok := st.steps[userID]
	st.mu.RUnlock()
	if ok {
		return step
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if step, ok := st.steps[userID]; ok {
		return step
	}
	step = factory()
	st.steps[userID] = step
	return step
}

// Delete removes the user's step, destroying its selection state.
func (st *Store) Delete(userID uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.steps, userID)
}
