// Package dsl provides a fluent builder for declaring state machines.
//
// The builder is authoring sugar over pkg/domain: declarations made through
// it are registered as they occur, declaration-time failures are recorded,
// and everything is validated exactly once by Complete.
package dsl

import (
	"github.com/aretw0/cambium/pkg/annotation"
	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/summary"
)

// Builder manages the declaration of one machine.
type Builder struct {
	machine *domain.Machine
	summary summary.Graph

	// firstErr holds the earliest declaration failure. The fluent API cannot
	// return errors mid-chain, so it surfaces from Complete.
	firstErr error
}

// New creates a builder for a machine with the given name.
func New(name string) *Builder {
	return &Builder{machine: domain.New(name)}
}

// Machine returns the machine under construction.
func (b *Builder) Machine() *domain.Machine { return b.machine }

// StateOption configures a state declaration.
type StateOption func(*domain.StateConfig)

// Abstract marks the state as organizational only.
func Abstract() StateOption {
	return func(cfg *domain.StateConfig) { cfg.Abstract = true }
}

// Slug sets a custom slug.
func Slug(slug string) StateOption {
	return func(cfg *domain.StateConfig) { cfg.Slug = slug }
}

// Label sets a custom label.
func Label(label string) StateOption {
	return func(cfg *domain.StateConfig) { cfg.Label = label }
}

// Extends declares abstract ancestors the state inherits transitions from.
func Extends(ancestors ...*StateBuilder) StateOption {
	return func(cfg *domain.StateConfig) {
		for _, a := range ancestors {
			if a.state != nil {
				cfg.Extends = append(cfg.Extends, a.state)
			}
		}
	}
}

// State declares a state. Declaring the same name twice is allowed here and
// rejected by Complete, mirroring how the machine validates in one place.
func (b *Builder) State(name string, opts ...StateOption) *StateBuilder {
	cfg := domain.StateConfig{Name: name}
	for _, opt := range opts {
		opt(&cfg)
	}
	s, err := b.machine.NewState(cfg)
	if err != nil {
		b.recordErr(err)
		return &StateBuilder{builder: b}
	}
	return &StateBuilder{builder: b, state: s}
}

// Summary attaches an authored summary graph, verified as part of Complete.
func (b *Builder) Summary(g summary.Graph) *Builder {
	b.summary = g
	return b
}

// Complete validates the machine and, if a summary was attached, checks it
// against the graph the declared transitions actually implement. Calling it
// a second time fails with ErrAlreadyComplete, like any declaration after
// the lock.
func (b *Builder) Complete() (*domain.Machine, error) {
	if b.firstErr != nil {
		return nil, b.firstErr
	}
	if err := b.machine.Complete(); err != nil {
		return nil, err
	}
	if b.summary != nil {
		if err := summary.Check(b.machine, b.summary); err != nil {
			return nil, err
		}
	}
	return b.machine, nil
}

func (b *Builder) recordErr(err error) {
	if b.firstErr == nil {
		b.firstErr = err
	}
}

// StateBuilder configures one declared state.
type StateBuilder struct {
	builder *Builder
	state   *domain.State
}

// Ref returns the underlying state record, nil if the declaration failed.
func (sb *StateBuilder) Ref() *domain.State { return sb.state }

// Transition declares a transition with its output-state names. A nil fn is
// a transition with an empty body, fine for single-output transitions where
// the destination is implied.
func (sb *StateBuilder) Transition(name string, fn domain.TransitionFunc, outputs ...string) *StateBuilder {
	if sb.state == nil {
		return sb
	}
	if _, err := sb.state.NewTransition(name, fn, outputs...); err != nil {
		sb.builder.recordErr(err)
	}
	return sb
}

// TransitionExpr declares a transition whose outputs are written as a
// stringified list, e.g. "[Green, Yellow]". An unparseable expression is a
// declaration error surfaced by Complete.
func (sb *StateBuilder) TransitionExpr(name string, fn domain.TransitionFunc, expr string) *StateBuilder {
	if sb.state == nil {
		return sb
	}
	names, ok := annotation.ExtractStateNames(expr)
	if !ok {
		sb.builder.recordErr(&UnparsableOutputsError{
			State:      sb.state.Name(),
			Transition: name,
			Expr:       expr,
		})
		return sb
	}
	return sb.Transition(name, fn, names...)
}
