package summary

import (
	"fmt"
	"strings"

	"github.com/aretw0/cambium/pkg/domain"
)

// Scaffold renders builder stubs for every summary state the machine does not
// implement, in alphabetical order. It returns the empty string when nothing
// is missing. The machine must be complete.
func Scaffold(m *domain.Machine, g Graph) (string, error) {
	if !m.Completed() {
		return "", fmt.Errorf("machine %s: %w", m.Name(), domain.ErrNotComplete)
	}

	authored := g.byState()
	var missing []Entry
	for _, name := range sortedKeys(authored) {
		if _, ok := m.State(name); !ok {
			missing = append(missing, Entry{State: name, Outputs: sortedSet(authored[name])})
		}
	}
	return renderStubs(missing), nil
}

// renderStubs writes one builder stub per missing state. Each missing edge
// becomes a transition named to_<snake case destination> with a nil body,
// declaring exactly that destination:
//
//	b.State("S1").
//		Transition("to_s_2", nil, "S2").
//		Transition("to_s_3", nil, "S3")
//
//	b.State("S3")
//
// Entries are expected in alphabetical order with sorted outputs; Check and
// Scaffold both arrange that.
func renderStubs(missing []Entry) string {
	var sb strings.Builder
	for _, e := range missing {
		fmt.Fprintf(&sb, "b.State(%q)", e.State)
		for _, out := range e.Outputs {
			sb.WriteString(".\n")
			fmt.Fprintf(&sb, "\tTransition(%q, nil, %q)", "to_"+domain.SnakeCase(out), out)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}
