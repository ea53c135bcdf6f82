// Package summary compares a machine's implemented transition graph against
// an independently authored summary of it, and can generate builder stubs for
// the parts of the summary the implementation is missing.
package summary

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Entry maps one state name to the names of its output states, in authored
// order.
type Entry struct {
	State   string
	Outputs []string
}

// Graph is an ordered, independently authored transition graph: who claims to
// go where. It is only ever compared against the graph the transitions
// actually implement, never executed.
type Graph []Entry

// FromMap builds a graph from a plain map, ordered by state name so the
// result is deterministic.
func FromMap(m map[string][]string) Graph {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	g := make(Graph, 0, len(m))
	for _, name := range names {
		g = append(g, Entry{State: name, Outputs: m[name]})
	}
	return g
}

// Parse decodes a YAML mapping from state name to output-name list,
// preserving the authored order:
//
//	Green: [Yellow]
//	Yellow: [Red]
//	Red: [Green]
func Parse(data []byte) (Graph, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}
	if len(doc.Content) == 0 {
		return Graph{}, nil
	}
	return FromNode(doc.Content[0])
}

// FromNode decodes a summary graph from an already-parsed YAML mapping node.
// The compiler uses this to pull the summary section out of a machine
// definition document without losing its order.
func FromNode(node *yaml.Node) (Graph, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("summary must be a mapping of state name to output list")
	}

	var g Graph
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]

		var outputs []string
		switch value.Kind {
		case yaml.SequenceNode:
			if err := value.Decode(&outputs); err != nil {
				return nil, fmt.Errorf("summary entry %s: %w", key.Value, err)
			}
		case yaml.ScalarNode:
			if value.Tag != "!!null" {
				return nil, fmt.Errorf("summary entry %s: outputs must be a list", key.Value)
			}
		default:
			return nil, fmt.Errorf("summary entry %s: outputs must be a list", key.Value)
		}

		g = append(g, Entry{State: key.Value, Outputs: outputs})
	}
	return g, nil
}

// byState collapses the graph into a lookup map. Later entries for the same
// state win.
func (g Graph) byState() map[string][]string {
	m := make(map[string][]string, len(g))
	for _, e := range g {
		m[e.State] = e.Outputs
	}
	return m
}
