package cambium

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/cambium/internal/runtime"
	"github.com/aretw0/cambium/pkg/adapters/field"
	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/dsl"
	"github.com/aretw0/cambium/pkg/ports"
	"github.com/aretw0/cambium/pkg/summary"
)

// Machine is the high-level entry point: a completed state machine together
// with the accessor and dispatcher that drive transitions on subjects.
type Machine struct {
	machine    *domain.Machine
	accessor   ports.StateAccessor
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	dispatcher *runtime.Dispatcher
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithAccessor sets the state accessor used to read and write subject state.
// The default is the field adapter: subjects implement field.Stateful.
func WithAccessor(accessor ports.StateAccessor) Option {
	return func(m *Machine) {
		m.accessor = accessor
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks on the dispatcher.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// New completes the builder and wraps the resulting machine with a runtime
// dispatcher. Completion validates the whole declared graph; any structural
// error aborts here and must be fixed by the author.
func New(b *dsl.Builder, opts ...Option) (*Machine, error) {
	dm, err := b.Complete()
	if err != nil {
		return nil, err
	}

	m := &Machine{machine: dm}
	for _, opt := range opts {
		opt(m)
	}

	if m.accessor == nil {
		m.accessor = field.New()
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	m.dispatcher = runtime.NewDispatcher(dm, m.accessor,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
	)
	return m, nil
}

// Name returns the machine's name.
func (m *Machine) Name() string { return m.machine.Name() }

func (m *Machine) String() string { return m.machine.Name() }

// Domain returns the underlying completed machine record.
func (m *Machine) Domain() *domain.Machine { return m.machine }

// States returns the frozen set of concrete states, sorted by name.
func (m *Machine) States() []*domain.State { return m.machine.States() }

// State looks up a concrete state by name.
func (m *Machine) State(name string) (*domain.State, bool) { return m.machine.State(name) }

// Bind constructs a state-bound handle over a subject, verifying through the
// accessor that the subject really is in the named state. Binding an abstract
// state succeeds when the subject's concrete state descends from it.
func (m *Machine) Bind(ctx context.Context, stateName string, subject any) (*Handle, error) {
	return m.bind(ctx, m.dispatcher, stateName, subject)
}

// BindWith is Bind with a one-off accessor, for subjects tracked differently
// from the machine's default (say, a second map key on the same subject).
func (m *Machine) BindWith(ctx context.Context, accessor ports.StateAccessor, stateName string, subject any) (*Handle, error) {
	d := runtime.NewDispatcher(m.machine, accessor,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
	)
	return m.bind(ctx, d, stateName, subject)
}

func (m *Machine) bind(ctx context.Context, d *runtime.Dispatcher, stateName string, subject any) (*Handle, error) {
	state, ok := m.machine.Lookup(stateName)
	if !ok {
		return nil, &domain.UnknownStateError{Machine: m.machine, Name: stateName}
	}
	binding, err := d.Bind(ctx, state, subject)
	if err != nil {
		return nil, err
	}
	return &Handle{binding: binding}, nil
}

// CheckSummary diffs an authored summary graph against the transition graph
// the machine actually implements. It succeeds silently on a match.
func (m *Machine) CheckSummary(g summary.Graph) error {
	return summary.Check(m.machine, g)
}

// Handle is a state-bound view of a subject, valid for one transition call.
type Handle struct {
	binding *runtime.Binding
}

// Do invokes the named transition: pre-checked at Bind, the body runs, the
// next state is resolved from the declared outputs, the post-check catches
// out-of-band writes, and the state change is committed via the accessor.
func (h *Handle) Do(ctx context.Context, transition string, args ...any) (any, error) {
	return h.binding.Do(ctx, transition, args...)
}

// State returns the concrete state the subject was observed in at Bind time.
func (h *Handle) State() *domain.State { return h.binding.State() }

// Subject returns the bound subject.
func (h *Handle) Subject() any { return h.binding.Subject() }

func (h *Handle) String() string { return h.binding.String() }
