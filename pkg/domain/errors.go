package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Lifecycle misuse sentinels. They are wrapped with the machine name at the
// point of failure, so match them with errors.Is.
var (
	// ErrAlreadyComplete is returned when declarations arrive after Complete,
	// or Complete is called twice.
	ErrAlreadyComplete = errors.New("already complete, no new states or transitions can be declared")

	// ErrNotComplete is returned when a subject is bound before Complete.
	ErrNotComplete = errors.New("not complete, call Complete() after declaring all states")
)

// MultipleMachineAncestorsError reports a state whose ancestor chain spans
// more than one machine.
type MultipleMachineAncestorsError struct {
	State    string
	Machines []*Machine
}

func (e *MultipleMachineAncestorsError) Error() string {
	names := make([]string, len(e.Machines))
	for i, m := range e.Machines {
		names[i] = m.Name()
	}
	return fmt.Sprintf("multiple machines found in the ancestors of %s: [%s]",
		e.State, strings.Join(names, ", "))
}

// InheritedFromStateError reports an attempt to extend a non-abstract state.
type InheritedFromStateError struct {
	State    string
	Ancestor *State
	Machine  *Machine
}

func (e *InheritedFromStateError) Error() string {
	return fmt.Sprintf("%s extends %s and both belong to the machine %s, but %s is not abstract. "+
		"Mark it abstract if it should be; concrete states cannot be extended.",
		e.State, e.Ancestor, e.Machine, e.Ancestor)
}

// SlugState pairs a duplicated slug with the state carrying it.
type SlugState struct {
	Slug  string
	State *State
}

// DuplicateStateNamesError reports concrete states sharing a name (States is
// set) or sharing a slug (SlugToState is set).
type DuplicateStateNamesError struct {
	States      []*State
	SlugToState []SlugState
}

func (e *DuplicateStateNamesError) Error() string {
	if len(e.SlugToState) > 0 {
		pairs := make([]string, len(e.SlugToState))
		for i, p := range e.SlugToState {
			pairs[i] = fmt.Sprintf("(%s, %s)", p.Slug, p.State)
		}
		return fmt.Sprintf("some states in this machine share the same slug: [%s]",
			strings.Join(pairs, ", "))
	}
	return fmt.Sprintf("some states in this machine share the same name: [%s]",
		joinStates(e.States))
}

// UnknownOutputStateError reports a transition whose declared output name did
// not resolve to any state of the machine.
type UnknownOutputStateError struct {
	Transition *Transition
	State      *State
	Name       string
	Known      []string
}

func (e *UnknownOutputStateError) Error() string {
	return fmt.Sprintf("the transition %s on state %s declares an output state %s "+
		"which doesn't exist in the state machine. The known states are [%s]. "+
		"Did you forget to inherit from the machine?",
		e.Transition.Name(), e.State, e.Name, strings.Join(e.Known, ", "))
}

// DuplicateOutputStatesError reports a transition declaring the same output
// name more than once. OutputNames keeps the authored order.
type DuplicateOutputStatesError struct {
	Transition  *Transition
	State       *State
	OutputNames []string
}

func (e *DuplicateOutputStatesError) Error() string {
	return fmt.Sprintf("the transition %s on state %s declares some output states more than once: [%s]",
		e.Transition.Name(), e.State, strings.Join(e.OutputNames, ", "))
}

// IncorrectInitialStateError reports a binding over a subject that is not in
// the desired state.
type IncorrectInitialStateError struct {
	Subject any
	Desired *State
	Actual  *State
}

func (e *IncorrectInitialStateError) Error() string {
	return fmt.Sprintf("%v should be in state %s but is actually in state %s",
		e.Subject, e.Desired, e.Actual)
}

// StateChangedElsewhereError reports a subject whose state moved between the
// pre-check and the commit, i.e. something wrote through the accessor behind
// the dispatcher's back.
type StateChangedElsewhereError struct {
	Subject any
	State   *State
	Desired *State
}

func (e *StateChangedElsewhereError) Error() string {
	return fmt.Sprintf("the state of %v has changed to %s since binding %s. "+
		"Did you change the state inside a transition body? Don't.",
		e.Subject, e.State, e.Desired)
}

// CannotInferOutputStateError reports a multi-output transition that returned
// nothing to pick the next state with.
type CannotInferOutputStateError struct {
	Transition *Transition
	Outputs    []*State
}

func (e *CannotInferOutputStateError) Error() string {
	return fmt.Sprintf("the transition %s has multiple output states [%s], you must return one",
		e.Transition, joinStatesSorted(e.Outputs))
}

// ReturnedInvalidStateError reports a multi-output transition that returned a
// value outside its declared output states.
type ReturnedInvalidStateError struct {
	Transition *Transition
	Outputs    []*State
	Result     any
}

func (e *ReturnedInvalidStateError) Error() string {
	return fmt.Sprintf("the transition %s returned %v, which is not in the declared output states [%s]",
		e.Transition, e.Result, joinStatesSorted(e.Outputs))
}

// GetStateDidNotReturnStateError reports an accessor whose GetState produced
// something that is not a state at all.
type GetStateDidNotReturnStateError struct {
	Returned any
}

func (e *GetStateDidNotReturnStateError) Error() string {
	return fmt.Sprintf("GetState is supposed to return a *domain.State, but it returned %v", e.Returned)
}

// UnknownStateError reports a lookup for a state name the machine never
// registered.
type UnknownStateError struct {
	Machine *Machine
	Name    string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("machine %s has no state named %s", e.Machine, e.Name)
}

// UnknownTransitionError reports a dispatch through a name the bound state
// does not declare or inherit.
type UnknownTransitionError struct {
	State *State
	Name  string
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("state %s has no transition named %s", e.State, e.Name)
}

func joinStates(states []*State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.Name()
	}
	return strings.Join(names, ", ")
}

func joinStatesSorted(states []*State) string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.Name()
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
