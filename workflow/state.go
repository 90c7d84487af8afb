package workflow

import "sync"

// Step is the position of an ebook creation attempt.
type Step int

const (
	StepMetadata Step = 1
	StepAssets   Step = 2
)

// CreationState tracks one staff member's ebook creation attempt: which step
// the add dialog is on and, at StepAssets, the id phase 1 obtained. It is
// handed only to the two creation phases.
type CreationState struct {
	mu      sync.Mutex
	step    Step
	ebookID int64
}

func NewCreationState() *CreationState {
	return &CreationState{step: StepMetadata}
}

// Snapshot returns the current step and ebook id (0 at StepMetadata).
func (s *CreationState) Snapshot() (Step, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step, s.ebookID
}

// Advance records the id of the created ebook and moves to StepAssets.
func (s *CreationState) Advance(ebookID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepAssets
	s.ebookID = ebookID
}

// Reset abandons the attempt and returns to StepMetadata.
func (s *CreationState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepMetadata
	s.ebookID = 0
}

// StateStore keeps one CreationState per staff session.
type StateStore struct {
	mu     sync.Mutex
	states map[string]*CreationState
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[string]*CreationState)}
}

// For returns the state for the session key, creating it at StepMetadata.
func (st *StateStore) For(key string) *CreationState {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.states[key]
	if !ok {
		s = NewCreationState()
		st.states[key] = s
	}
	return s
}

// Forget drops the state of a session that has ended.
func (st *StateStore) Forget(key string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.states, key)
}
