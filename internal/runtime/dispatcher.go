// Package runtime implements the transition dispatcher: the call protocol
// that enforces pre- and post-state invariants around a transition body and
// commits the resulting state change through the accessor.
package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/ports"
)

// Dispatcher drives transition calls for one completed machine.
type Dispatcher struct {
	machine  *domain.Machine
	accessor ports.StateAccessor
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithLogger sets a structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// NewDispatcher creates a dispatcher over a machine and an accessor.
func NewDispatcher(machine *domain.Machine, accessor ports.StateAccessor, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		machine:  machine,
		accessor: accessor,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("machine", machine.Name())
	return d
}

// Bind constructs a state-bound handle over a subject. It reads the subject's
// current state through the accessor and verifies it matches the desired
// state; binding through an abstract state succeeds when the observed state
// descends from it, and the handle binds to the observed concrete state.
func (d *Dispatcher) Bind(ctx context.Context, desired *domain.State, subject any) (*Binding, error) {
	if !d.machine.Completed() {
		return nil, fmt.Errorf("machine %s: %w", d.machine.Name(), domain.ErrNotComplete)
	}

	observed, err := d.observe(subject)
	if err != nil {
		d.emitFailure(ctx, desired, "", subject, err)
		return nil, err
	}
	if !observed.Is(desired) {
		err := &domain.IncorrectInitialStateError{
			Subject: subject,
			Desired: desired,
			Actual:  observed,
		}
		d.emitFailure(ctx, desired, "", subject, err)
		return nil, err
	}

	b := &Binding{dispatcher: d, state: observed, subject: subject}
	d.emit(d.hooks.OnBind, ctx, &domain.TransitionEvent{
		Type:    domain.EventBind,
		Machine: d.machine.Name(),
		State:   observed.Name(),
		Subject: subject,
	})
	d.logger.Debug("subject bound", "state", observed.Name())
	return b, nil
}

// observe reads the subject's state and insists the accessor returned an
// actual state record.
func (d *Dispatcher) observe(subject any) (*domain.State, error) {
	value := d.accessor.GetState(subject)
	state, ok := value.(*domain.State)
	if !ok || state == nil {
		return nil, &domain.GetStateDidNotReturnStateError{Returned: value}
	}
	return state, nil
}

func (d *Dispatcher) emit(hook func(context.Context, *domain.TransitionEvent), ctx context.Context, ev *domain.TransitionEvent) {
	if hook == nil {
		return
	}
	ev.Timestamp = time.Now()
	hook(ctx, ev)
}

func (d *Dispatcher) emitFailure(ctx context.Context, state *domain.State, transition string, subject any, err error) {
	var name string
	if state != nil {
		name = state.Name()
	}
	d.emit(d.hooks.OnFailure, ctx, &domain.TransitionEvent{
		Type:       domain.EventFailure,
		Machine:    d.machine.Name(),
		State:      name,
		Transition: transition,
		Subject:    subject,
		Err:        err,
	})
}

// Binding is a handle over a subject observed in a known state. It is meant
// for a single transition call: once a call commits, the handle is stale and
// further calls fail the post-check.
type Binding struct {
	dispatcher *Dispatcher
	state      *domain.State
	subject    any
}

// State returns the concrete state the subject was observed in.
func (b *Binding) State() *domain.State { return b.state }

// Subject returns the bound subject.
func (b *Binding) Subject() any { return b.subject }

func (b *Binding) String() string {
	return fmt.Sprintf("%s(subject=%v)", b.state.Name(), b.subject)
}

// Do runs one transition call: invoke the body, resolve the next state from
// the declared outputs and the body's return value, verify nothing moved the
// subject's state out-of-band, then commit. The body's return value is passed
// through to the caller, as is any error the body produced.
func (b *Binding) Do(ctx context.Context, name string, args ...any) (any, error) {
	d := b.dispatcher

	t, ok := b.state.Transition(name)
	if !ok {
		err := &domain.UnknownTransitionError{State: b.state, Name: name}
		d.emitFailure(ctx, b.state, name, b.subject, err)
		return nil, err
	}

	d.emit(d.hooks.OnInvoke, ctx, &domain.TransitionEvent{
		Type:       domain.EventInvoke,
		Machine:    d.machine.Name(),
		State:      b.state.Name(),
		Transition: name,
		Subject:    b.subject,
	})

	var result any
	if fn := t.Func(); fn != nil {
		var err error
		result, err = fn(ctx, &domain.TransitionCall{
			Subject: b.subject,
			From:    b.state,
			Args:    args,
		})
		if err != nil {
			// The body's own error, propagated untouched.
			d.emitFailure(ctx, b.state, name, b.subject, err)
			return nil, err
		}
	}

	next, err := b.resolve(t, result)
	if err != nil {
		d.emitFailure(ctx, b.state, name, b.subject, err)
		return nil, err
	}

	// Post-check: the subject must still be where the pre-check saw it.
	// Anything else means a transition body wrote state through the raw
	// accessor instead of letting the dispatcher commit.
	current, err := d.observe(b.subject)
	if err != nil {
		d.emitFailure(ctx, b.state, name, b.subject, err)
		return nil, err
	}
	if current != b.state {
		err := &domain.StateChangedElsewhereError{
			Subject: b.subject,
			State:   current,
			Desired: b.state,
		}
		d.emitFailure(ctx, b.state, name, b.subject, err)
		return nil, err
	}

	event := &domain.TransitionEvent{
		Type:       domain.EventCommit,
		Machine:    d.machine.Name(),
		State:      b.state.Name(),
		Transition: name,
		Subject:    b.subject,
	}
	if next != nil {
		if err := d.accessor.SetState(b.subject, b.state, next); err != nil {
			err = fmt.Errorf("failed to commit state change: %w", err)
			d.emitFailure(ctx, b.state, name, b.subject, err)
			return nil, err
		}
		event.Next = next.Name()
		d.logger.Debug("transition committed",
			"from", b.state.Name(),
			"to", next.Name(),
			"transition", name,
		)
	}
	d.emit(d.hooks.OnCommit, ctx, event)

	return result, nil
}

// resolve picks the next state from the declared outputs and the body's
// return value. One output: implicit, the return value is ignored for state
// purposes. Several: the body must have returned one of them. None: terminal
// move, no state change.
func (b *Binding) resolve(t *domain.Transition, result any) (*domain.State, error) {
	outputs := t.Outputs()
	switch len(outputs) {
	case 0:
		return nil, nil
	case 1:
		return outputs[0], nil
	}

	if result == nil {
		return nil, &domain.CannotInferOutputStateError{Transition: t, Outputs: outputs}
	}
	state, ok := result.(*domain.State)
	if ok {
		for _, out := range outputs {
			if out == state {
				return state, nil
			}
		}
	}
	return nil, &domain.ReturnedInvalidStateError{Transition: t, Outputs: outputs, Result: result}
}
