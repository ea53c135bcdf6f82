package ports

import "github.com/aretw0/cambium/pkg/domain"

// StateAccessor reads and writes the current state of a subject.
//
// GetState deliberately returns any: the dispatcher owns the check that the
// value is actually a *domain.State and reports the failure in a structured
// way. SetState receives the previous state so implementations can guard
// against lost updates if they want to.
type StateAccessor interface {
	GetState(subject any) any
	SetState(subject any, previous, next *domain.State) error
}
