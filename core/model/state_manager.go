// Package model provides the shared estimator infrastructure used across the
// regdiag library: fitted-state tracking and the interfaces that let
// transformers and fitters compose into pipelines.
//
// Every fitted type holds a StateManager by composition:
//
//	type MinMaxScaler struct {
//		state *model.StateManager
//		...
//	}
//
//	func (m *MinMaxScaler) Fit(X mat.Matrix) error {
//		...
//		m.state.SetFitted()
//		m.state.SetDimensions(nFeatures, nSamples)
//		return nil
//	}
//
// StateManager methods are safe for concurrent use, although the pipeline
// itself runs single threaded.
package model

import (
	"sync"

	"github.com/ezoic/regdiag/pkg/errors"
)

// StateManager tracks whether an estimator has been fitted and the data
// dimensions it was fitted with.
type StateManager struct {
	mu sync.RWMutex

	fitted    bool
	nFeatures int
	nSamples  int
}

// NewStateManager returns an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether SetFitted has been called since the last Reset.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the estimator as fitted. Called by estimator
// implementations at the end of a successful Fit.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns the estimator to the unfitted state and clears dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the feature and sample counts seen at fit time.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Dimensions returns the recorded (nFeatures, nSamples) from fit time.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming the estimator and method if
// the estimator has not been fitted, nil otherwise.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
