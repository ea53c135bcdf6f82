package domain

import "fmt"

// State is one node of a machine. Concrete states are the ones a subject can
// actually be in; abstract states only exist to share transitions with their
// descendants.
type State struct {
	name     string
	slug     string
	label    string
	abstract bool
	machine  *Machine

	// ancestors is the flattened abstract ancestor chain, closest first.
	ancestors []*State

	direct    []*Transition
	inherited []*Transition
}

// Name returns the state's name, unique within its machine once complete.
func (s *State) Name() string { return s.name }

// Slug is the stable machine-unique identifier, custom or equal to the name.
func (s *State) Slug() string { return s.slug }

// Label is the human-readable form, custom or derived from the slug.
func (s *State) Label() string { return s.label }

// Abstract reports whether the state is organizational only.
func (s *State) Abstract() bool { return s.abstract }

// Machine returns the owning machine.
func (s *State) Machine() *Machine { return s.machine }

// Ancestors returns the abstract ancestor chain, closest first.
func (s *State) Ancestors() []*State {
	out := make([]*State, len(s.ancestors))
	copy(out, s.ancestors)
	return out
}

func (s *State) String() string { return s.name }

// NewTransition declares a transition on this state. outputs are the raw
// declared output-state names; they resolve when the machine completes.
// A nil fn is a transition with an empty body.
func (s *State) NewTransition(name string, fn TransitionFunc, outputs ...string) (*Transition, error) {
	if s.machine.lifecycle == LifecycleComplete {
		return nil, fmt.Errorf("machine %s: %w", s.machine.name, ErrAlreadyComplete)
	}
	t := &Transition{
		name:        name,
		state:       s,
		outputNames: outputs,
		fn:          fn,
	}
	s.direct = append(s.direct, t)
	return t, nil
}

// DirectTransitions returns the transitions declared on this exact state.
func (s *State) DirectTransitions() []*Transition {
	out := make([]*Transition, len(s.direct))
	copy(out, s.direct)
	return out
}

// Transitions returns the direct transitions plus everything inherited from
// abstract ancestors. Inherited entries are only populated once the machine
// completes.
func (s *State) Transitions() []*Transition {
	out := make([]*Transition, 0, len(s.direct)+len(s.inherited))
	out = append(out, s.direct...)
	out = append(out, s.inherited...)
	return out
}

// Transition finds a transition by name among Transitions().
func (s *State) Transition(name string) (*Transition, bool) {
	for _, t := range s.direct {
		if t.name == name {
			return t, true
		}
	}
	for _, t := range s.inherited {
		if t.name == name {
			return t, true
		}
	}
	return nil, false
}

// Is reports whether s is other or has other in its ancestor chain. It is how
// the dispatcher decides that a subject in a concrete state satisfies a
// binding made through an abstract ancestor.
func (s *State) Is(other *State) bool {
	if s == other {
		return true
	}
	for _, a := range s.ancestors {
		if a == other {
			return true
		}
	}
	return false
}
