package domain

import (
	"fmt"
	"sort"
)

// Lifecycle describes the one-way life of a machine: it is built, then it is
// completed. There is no way back.
type Lifecycle string

const (
	LifecycleBuilding Lifecycle = "building"
	LifecycleComplete Lifecycle = "complete"
)

// Machine identifies one state space and owns all of its states.
type Machine struct {
	name      string
	lifecycle Lifecycle

	// registered holds every declaration in order, including abstract states
	// and duplicates. Duplicates are kept on purpose: they are a completion
	// error, not a silent overwrite.
	registered []*State

	// concrete is the frozen, name-sorted state set, populated by Complete.
	concrete []*State
	index    map[string]*State
}

// New creates a machine in the Building lifecycle.
func New(name string) *Machine {
	return &Machine{
		name:      name,
		lifecycle: LifecycleBuilding,
	}
}

// Name returns the machine's name.
func (m *Machine) Name() string { return m.name }

func (m *Machine) String() string { return m.name }

// Lifecycle reports whether the machine is still building or complete.
func (m *Machine) Lifecycle() Lifecycle { return m.lifecycle }

// Completed reports whether Complete has run successfully.
func (m *Machine) Completed() bool { return m.lifecycle == LifecycleComplete }

// StateConfig describes one state declaration.
type StateConfig struct {
	Name string

	// Slug defaults to Name. Label defaults to the slug split into words
	// ("AbcDef" becomes "Abc Def").
	Slug  string
	Label string

	// Abstract states only organize shared transitions; they are excluded
	// from the completed state set and cannot be committed to.
	Abstract bool

	// Extends lists the abstract states this one inherits transitions from.
	// All of them must belong to this machine.
	Extends []*State
}

// NewState registers a state declaration with the machine.
//
// It fails immediately if the machine is already complete, if the ancestors
// span more than one machine, or if a non-abstract state is being extended.
// Everything else (duplicate names, output resolution) is checked once, by
// Complete.
func (m *Machine) NewState(cfg StateConfig) (*State, error) {
	if m.lifecycle == LifecycleComplete {
		return nil, fmt.Errorf("machine %s: %w", m.name, ErrAlreadyComplete)
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("machine %s: state name must not be empty", m.name)
	}

	machines := []*Machine{m}
	for _, a := range cfg.Extends {
		if a.machine != m {
			machines = appendMachine(machines, a.machine)
		}
	}
	if len(machines) > 1 {
		return nil, &MultipleMachineAncestorsError{State: cfg.Name, Machines: machines}
	}
	for _, a := range cfg.Extends {
		if !a.abstract {
			return nil, &InheritedFromStateError{State: cfg.Name, Ancestor: a, Machine: m}
		}
	}

	slug := cfg.Slug
	if slug == "" {
		slug = cfg.Name
	}
	label := cfg.Label
	if label == "" {
		label = Labelize(slug)
	}

	// Flatten the ancestor chain, closest first.
	var ancestors []*State
	for _, a := range cfg.Extends {
		ancestors = append(ancestors, a)
		ancestors = append(ancestors, a.ancestors...)
	}

	s := &State{
		name:      cfg.Name,
		slug:      slug,
		label:     label,
		abstract:  cfg.Abstract,
		machine:   m,
		ancestors: ancestors,
	}
	m.registered = append(m.registered, s)
	return s, nil
}

func appendMachine(machines []*Machine, cand *Machine) []*Machine {
	for _, known := range machines {
		if known == cand {
			return machines
		}
	}
	return append(machines, cand)
}

// Complete validates every declaration collected so far and locks the machine.
//
// Validation order: duplicate state names, duplicate slugs, then per
// transition duplicate output names and output-state resolution. The first
// failure aborts the whole completion; the machine stays in Building so the
// author can fix the declarations and retry.
func (m *Machine) Complete() error {
	if m.lifecycle == LifecycleComplete {
		return fmt.Errorf("machine %s: %w", m.name, ErrAlreadyComplete)
	}

	concrete := make([]*State, 0, len(m.registered))
	for _, s := range m.registered {
		if !s.abstract {
			concrete = append(concrete, s)
		}
	}

	if err := checkDuplicateNames(concrete); err != nil {
		return err
	}
	if err := checkDuplicateSlugs(concrete); err != nil {
		return err
	}

	index := make(map[string]*State, len(concrete))
	for _, s := range concrete {
		index[s.name] = s
	}
	known := make([]string, 0, len(index))
	for name := range index {
		known = append(known, name)
	}
	sort.Strings(known)

	// Resolve transition outputs on every registered state, abstract ones
	// included: their transitions are inherited by concrete descendants.
	for _, s := range m.registered {
		for _, t := range s.direct {
			if dups := duplicateNames(t.outputNames); len(dups) > 0 {
				return &DuplicateOutputStatesError{
					Transition:  t,
					State:       s,
					OutputNames: t.outputNames,
				}
			}
			outputs := make([]*State, 0, len(t.outputNames))
			for _, name := range t.outputNames {
				out, ok := index[name]
				if !ok {
					return &UnknownOutputStateError{
						Transition: t,
						State:      s,
						Name:       name,
						Known:      known,
					}
				}
				outputs = append(outputs, out)
			}
			t.outputs = outputs
		}
	}

	// Inherited transitions: everything declared on the abstract ancestor
	// chain, closest ancestor first.
	for _, s := range concrete {
		s.inherited = nil
		for _, a := range s.ancestors {
			s.inherited = append(s.inherited, a.direct...)
		}
	}

	sort.Slice(concrete, func(i, j int) bool { return concrete[i].name < concrete[j].name })
	m.concrete = concrete
	m.index = index
	m.lifecycle = LifecycleComplete
	return nil
}

func checkDuplicateNames(states []*State) error {
	counts := make(map[string]int, len(states))
	for _, s := range states {
		counts[s.name]++
	}
	var colliding []*State
	for _, s := range states {
		if counts[s.name] > 1 {
			colliding = append(colliding, s)
		}
	}
	if len(colliding) > 0 {
		return &DuplicateStateNamesError{States: colliding}
	}
	return nil
}

func checkDuplicateSlugs(states []*State) error {
	counts := make(map[string]int, len(states))
	for _, s := range states {
		counts[s.slug]++
	}
	var pairs []SlugState
	for _, s := range states {
		if counts[s.slug] > 1 {
			pairs = append(pairs, SlugState{Slug: s.slug, State: s})
		}
	}
	if len(pairs) > 0 {
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Slug < pairs[j].Slug })
		return &DuplicateStateNamesError{SlugToState: pairs}
	}
	return nil
}

func duplicateNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var dups []string
	for _, name := range names {
		if seen[name] {
			dups = append(dups, name)
		}
		seen[name] = true
	}
	return dups
}

// States returns the frozen set of concrete states, sorted by name.
// It is empty until Complete has run.
func (m *Machine) States() []*State {
	out := make([]*State, len(m.concrete))
	copy(out, m.concrete)
	return out
}

// State looks up a concrete state by name. Only available once complete.
func (m *Machine) State(name string) (*State, bool) {
	s, ok := m.index[name]
	return s, ok
}

// Lookup finds any registered state by name, abstract ones included.
// Abstract states can be bound to (polymorphically), so the dispatcher needs
// to reach them even though States() excludes them. With duplicate names the
// last declaration wins, but duplicates never survive Complete anyway.
func (m *Machine) Lookup(name string) (*State, bool) {
	for i := len(m.registered) - 1; i >= 0; i-- {
		if m.registered[i].name == name {
			return m.registered[i], true
		}
	}
	return nil, false
}
