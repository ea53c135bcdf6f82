/*
Package cambium is a state machine engine that mechanically verifies declared
transitions and enforces at runtime that a subject's state only changes
through declared, validated moves.

A machine is authored with the builder in pkg/dsl: states (abstract or
concrete) and their transitions, each transition carrying the names of the
states it may lead to. Completing the builder validates the whole graph once
(name and slug uniqueness, output resolution, duplicate outputs) and locks it.
From then on, transitions run through a dispatcher that pre-checks the
subject's current state, invokes the body, resolves the next state, verifies
nothing wrote state out-of-band, and commits through a pluggable accessor.

# Usage

	b := dsl.New("TrafficLight")
	b.State("Green").Transition("slow_down", nil, "Yellow")
	b.State("Yellow").Transition("stop", nil, "Red")
	b.State("Red").Transition("go", nil, "Green")

	machine, err := cambium.New(b)
	if err != nil {
		log.Fatal(err)
	}

	light := NewLight(machine) // implements field.Stateful, starts in Green

	h, err := machine.Bind(ctx, "Green", light)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := h.Do(ctx, "slow_down"); err != nil {
		log.Fatal(err)
	}
	// light is now in Yellow.

# Verifying against a summary

An independently authored summary graph cross-checks the implementation:

	g := summary.FromMap(map[string][]string{
		"Green":  {"Yellow"},
		"Yellow": {"Red"},
		"Red":    {"Green"},
	})
	if err := machine.CheckSummary(g); err != nil {
		log.Fatal(err) // enumerates every disagreement, deterministically
	}

When the summary names states the implementation lacks, the error (and the
cambium CLI's skeleton command) renders ready-to-paste builder stubs for them.

# Several machines

Machines do not share structure. A state name in a transition's outputs always
resolves within its own machine, and Extends only accepts abstract states of
the same machine: two ancestors rooted in different machines fail the
declaration with MultipleMachineAncestorsError. To model sibling machines with
similar shapes, rebuild the shared declarations per builder.

One subject can still carry the state of several machines at once: give each
machine a mapkey accessor with its own key, or use BindWith per call.

# Concurrency

Authoring and completion are single-writer. A completed machine is immutable
and safe to share across any number of readers. The dispatcher assumes
exclusive access to a subject for the duration of one transition call;
concurrent transitions on the same subject are the host's problem to prevent.
*/
package cambium
