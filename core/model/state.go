// Package model provides lifecycle state management shared by recipes and
// estimators. A component is either unfitted (unprepared) or fitted
// (prepared); the StateManager tracks the transition in a thread-safe way
// so a prepared recipe can be applied concurrently while misuse in the
// wrong state is caught uniformly.
package model

import (
	"sync"
)

// StateManager manages the fitted state of a recipe or model.
// It uses composition instead of embedding so the owning type controls
// which state operations it exposes.
type StateManager struct {
	Fitted bool // Public for gob encoding
	mu     sync.RWMutex

	// Dimensions of the reference data seen at fit time. Public for gob encoding.
	NRows    int
	NColumns int
}

// NewStateManager creates a new StateManager in the unfitted state.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the component has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the component as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset returns the component to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NRows = 0
	s.NColumns = 0
}

// SetDimensions records the shape of the reference data seen at fit time.
func (s *StateManager) SetDimensions(nRows, nColumns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NRows = nRows
	s.NColumns = nColumns
}

// GetDimensions returns the shape of the reference data seen at fit time.
func (s *StateManager) GetDimensions() (nRows, nColumns int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NRows, s.NColumns
}
