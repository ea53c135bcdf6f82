// Package compiler turns YAML machine definition documents into builders.
//
// A document declares the machine name, its states (with optional slugs,
// labels, abstract flags, ancestors and transitions) and an optional summary
// graph:
//
//	name: TrafficLight
//	states:
//	  - name: Green
//	    transitions:
//	      - name: slow_down
//	        outputs: [Yellow]
//	summary:
//	  Green: [Yellow]
//
// Transition outputs may be a YAML list or a stringified list like
// "[Yellow, Red]", which goes through the annotation parser.
package compiler

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/cambium/pkg/domain"
	"github.com/aretw0/cambium/pkg/dsl"
	"github.com/aretw0/cambium/pkg/schema"
	"github.com/aretw0/cambium/pkg/summary"
)

// Document is a parsed machine definition.
type Document struct {
	Name   string
	States []StateDoc

	// Summary is the authored summary graph, nil if the document has none.
	// Its order is preserved from the source.
	Summary summary.Graph `mapstructure:"-"`
}

// StateDoc is one state declaration.
type StateDoc struct {
	Name        string
	Abstract    bool
	Slug        string
	Label       string
	Extends     []string
	Transitions []TransitionDoc
}

// TransitionDoc is one transition declaration. Outputs is either a list of
// state names or a stringified list.
type TransitionDoc struct {
	Name    string
	Outputs any
}

var documentSchema = schema.Schema{
	"name":    schema.String(),
	"states":  schema.Optional(schema.Slice(schema.Map())),
	"summary": schema.Optional(schema.Map()),
}

var stateSchema = schema.Schema{
	"name":        schema.String(),
	"abstract":    schema.Optional(schema.Bool()),
	"slug":        schema.Optional(schema.String()),
	"label":       schema.Optional(schema.String()),
	"extends":     schema.Optional(schema.Slice(schema.String())),
	"transitions": schema.Optional(schema.Slice(schema.Map())),
}

var transitionSchema = schema.Schema{
	"name":    schema.String(),
	"outputs": schema.Optional(schema.Any()),
}

// Parse reads a definition document, validating its shape first so typos are
// reported with field names instead of surfacing as odd decode failures.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("definition document is empty")
	}
	mapping := root.Content[0]

	var raw map[string]any
	if err := mapping.Decode(&raw); err != nil {
		return nil, fmt.Errorf("definition must be a mapping: %w", err)
	}

	if err := validateShape(raw); err != nil {
		return nil, err
	}

	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &doc})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	// The summary section is re-read from the node tree: a plain map would
	// lose the authored order.
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "summary" {
			g, err := summary.FromNode(mapping.Content[i+1])
			if err != nil {
				return nil, err
			}
			doc.Summary = g
		}
	}

	return &doc, nil
}

func validateShape(raw map[string]any) error {
	if err := schema.Validate(documentSchema, raw); err != nil {
		return fmt.Errorf("invalid definition: %w", err)
	}
	states, _ := raw["states"].([]any)
	for _, s := range states {
		stateMap, ok := s.(map[string]any)
		if !ok {
			return fmt.Errorf("invalid definition: states must be mappings")
		}
		if err := schema.Validate(stateSchema, stateMap); err != nil {
			return fmt.Errorf("invalid state declaration: %w", err)
		}
		transitions, _ := stateMap["transitions"].([]any)
		for _, t := range transitions {
			transitionMap, ok := t.(map[string]any)
			if !ok {
				return fmt.Errorf("invalid definition: transitions must be mappings")
			}
			if err := schema.Validate(transitionSchema, transitionMap); err != nil {
				return fmt.Errorf("invalid transition declaration: %w", err)
			}
		}
	}
	return nil
}

// Builder replays the document's declarations into a dsl builder. The summary
// section is not attached; callers decide whether completion should verify it.
func (d *Document) Builder() (*dsl.Builder, error) {
	b := dsl.New(d.Name)
	declared := make(map[string]*dsl.StateBuilder, len(d.States))

	for _, sd := range d.States {
		var opts []dsl.StateOption
		if sd.Abstract {
			opts = append(opts, dsl.Abstract())
		}
		if sd.Slug != "" {
			opts = append(opts, dsl.Slug(sd.Slug))
		}
		if sd.Label != "" {
			opts = append(opts, dsl.Label(sd.Label))
		}
		for _, ancestor := range sd.Extends {
			ref, ok := declared[ancestor]
			if !ok {
				return nil, fmt.Errorf("state %s extends %s, which is not declared above it; "+
					"declare abstract states before their descendants", sd.Name, ancestor)
			}
			opts = append(opts, dsl.Extends(ref))
		}

		sb := b.State(sd.Name, opts...)
		declared[sd.Name] = sb

		for _, td := range sd.Transitions {
			switch outputs := td.Outputs.(type) {
			case nil:
				sb.Transition(td.Name, nil)
			case string:
				sb.TransitionExpr(td.Name, nil, outputs)
			case []any:
				names := make([]string, 0, len(outputs))
				for _, o := range outputs {
					name, ok := o.(string)
					if !ok {
						return nil, fmt.Errorf("transition %s on state %s: outputs must be state names", td.Name, sd.Name)
					}
					names = append(names, name)
				}
				sb.Transition(td.Name, nil, names...)
			default:
				return nil, fmt.Errorf("transition %s on state %s: outputs must be a list or a stringified list", td.Name, sd.Name)
			}
		}
	}

	return b, nil
}

// Build compiles and completes the document. An attached summary is verified
// as part of completion, like a summary attached to a builder.
func (d *Document) Build() (*domain.Machine, error) {
	b, err := d.Builder()
	if err != nil {
		return nil, err
	}
	if d.Summary != nil {
		b.Summary(d.Summary)
	}
	return b.Complete()
}
