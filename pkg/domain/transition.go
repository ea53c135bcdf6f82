package domain

import (
	"context"
	"fmt"
)

// TransitionCall carries the runtime context of one transition invocation.
type TransitionCall struct {
	// Subject is the external object whose state is being tracked.
	Subject any

	// From is the state the subject was observed in when the call started.
	From *State

	// Args are the caller-supplied arguments, passed through untouched.
	Args []any
}

// TransitionFunc is the body of a transition. When the transition declares
// more than one output state the returned value must be one of them; with a
// single declared output the return value is the function's own business.
// A returned error aborts the call and reaches the caller unchanged.
type TransitionFunc func(ctx context.Context, call *TransitionCall) (any, error)

// Transition is one named move declared on a state, with the set of states it
// may legally lead to.
type Transition struct {
	name        string
	state       *State
	outputNames []string
	outputs     []*State
	fn          TransitionFunc
}

// Name returns the transition's name, e.g. "slow_down".
func (t *Transition) Name() string { return t.name }

// State returns the defining state. For inherited transitions this is the
// abstract ancestor the transition was declared on.
func (t *Transition) State() *State { return t.state }

// OutputNames returns the raw declared output names in authored order.
func (t *Transition) OutputNames() []string {
	out := make([]string, len(t.outputNames))
	copy(out, t.outputNames)
	return out
}

// Outputs returns the resolved output states in declared order. It is nil
// until the machine completes.
func (t *Transition) Outputs() []*State {
	out := make([]*State, len(t.outputs))
	copy(out, t.outputs)
	return out
}

// Func returns the transition body, possibly nil.
func (t *Transition) Func() TransitionFunc { return t.fn }

func (t *Transition) String() string {
	return fmt.Sprintf("%s.%s", t.state.name, t.name)
}
