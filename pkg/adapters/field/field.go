// Package field provides a StateAccessor backed by the subject itself: the
// subject exposes its state through the Stateful interface, typically storing
// it in a struct field.
package field

import (
	"fmt"

	"github.com/aretw0/cambium/pkg/domain"
)

// Stateful is implemented by subjects that hold their own state.
type Stateful interface {
	State() *domain.State
	SetState(s *domain.State)
}

// Accessor reads and writes state through the Stateful interface.
type Accessor struct{}

// New creates a field accessor.
func New() Accessor { return Accessor{} }

// GetState returns the subject's current state, or the subject itself when it
// is not Stateful, so the dispatcher can report the bad value.
func (Accessor) GetState(subject any) any {
	s, ok := subject.(Stateful)
	if !ok {
		return subject
	}
	return s.State()
}

// SetState writes the new state on the subject.
func (Accessor) SetState(subject any, previous, next *domain.State) error {
	s, ok := subject.(Stateful)
	if !ok {
		return fmt.Errorf("subject %v does not implement field.Stateful", subject)
	}
	s.SetState(next)
	return nil
}
