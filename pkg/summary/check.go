package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/cambium/pkg/domain"
)

// OutputDiff reports one state whose summary outputs disagree with the
// outputs its transitions implement. Both lists are sorted.
type OutputDiff struct {
	State   string
	Summary []string
	Actual  []string
}

// IncorrectSummaryError reports every disagreement between a summary graph
// and the implemented graph. The message enumerates states alphabetically
// with deterministic, sorted output lists, so it is stable enough to match
// exactly in tests and tooling.
type IncorrectSummaryError struct {
	Machine      *domain.Machine
	WrongOutputs []OutputDiff

	// MissingStates are summary entries with no implemented state at all.
	// The message renders them as builder stubs ready to paste.
	MissingStates []Entry

	// ExtraStates are implemented states the summary does not mention.
	ExtraStates []string
}

func (e *IncorrectSummaryError) Error() string {
	var sb strings.Builder
	sb.WriteString("\n")

	if len(e.WrongOutputs) > 0 {
		sb.WriteString("Wrong outputs:\n\n")
		for _, d := range e.WrongOutputs {
			fmt.Fprintf(&sb, "Outputs of %s:\n", d.State)
			fmt.Fprintf(&sb, "According to summary      : %s\n", strings.Join(d.Summary, ", "))
			fmt.Fprintf(&sb, "According to actual states: %s\n", strings.Join(d.Actual, ", "))
			sb.WriteString("\n")
		}
	}

	if len(e.MissingStates) > 0 {
		sb.WriteString("Missing states:\n\n")
		sb.WriteString(renderStubs(e.MissingStates))
	}

	if len(e.ExtraStates) > 0 {
		sb.WriteString("Extra states:\n\n")
		for _, name := range e.ExtraStates {
			sb.WriteString(name)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Check diffs the summary graph against the graph the machine's transitions
// actually implement. A matching graph succeeds silently; any disagreement
// fails with IncorrectSummaryError. The machine must be complete.
func Check(m *domain.Machine, g Graph) error {
	if !m.Completed() {
		return fmt.Errorf("machine %s: %w", m.Name(), domain.ErrNotComplete)
	}

	actual := actualGraph(m)
	authored := g.byState()

	var diff IncorrectSummaryError
	diff.Machine = m

	for _, name := range sortedKeys(authored) {
		summaryOutputs := sortedSet(authored[name])
		actualOutputs, ok := actual[name]
		if !ok {
			diff.MissingStates = append(diff.MissingStates, Entry{
				State:   name,
				Outputs: summaryOutputs,
			})
			continue
		}
		if !equalStrings(summaryOutputs, actualOutputs) {
			diff.WrongOutputs = append(diff.WrongOutputs, OutputDiff{
				State:   name,
				Summary: summaryOutputs,
				Actual:  actualOutputs,
			})
		}
	}

	for _, name := range sortedKeys(actual) {
		if _, ok := authored[name]; !ok {
			diff.ExtraStates = append(diff.ExtraStates, name)
		}
	}

	if len(diff.WrongOutputs) > 0 || len(diff.MissingStates) > 0 || len(diff.ExtraStates) > 0 {
		return &diff
	}
	return nil
}

// actualGraph derives the implemented graph: for every concrete state, the
// sorted set of names reachable through any of its transitions, inherited
// ones included.
func actualGraph(m *domain.Machine) map[string][]string {
	graph := make(map[string][]string, len(m.States()))
	for _, s := range m.States() {
		seen := make(map[string]bool)
		var outputs []string
		for _, t := range s.Transitions() {
			for _, out := range t.Outputs() {
				if !seen[out.Name()] {
					seen[out.Name()] = true
					outputs = append(outputs, out.Name())
				}
			}
		}
		sort.Strings(outputs)
		graph[s.Name()] = outputs
	}
	return graph
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
