package spec

import (
	"fmt"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a mapping of axis name to candidates. A candidate
// list may be a scalar, a sequence of scalars, or {range: ...}. Mapping
// order defines axis order.
func (g *Group) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sweep group must be a mapping", node.Line)
	}
	g.Axes = make([]Axis, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		values, err := decodeCandidates(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("axis %q: %w", name, err)
		}
		g.Axes = append(g.Axes, Axis{Name: name, Values: values})
	}
	return nil
}

func decodeCandidates(node *yaml.Node) ([]value.Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var v value.Value
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return []value.Value{v}, nil
	case yaml.SequenceNode:
		values := make([]value.Value, 0, len(node.Content))
		for _, item := range node.Content {
			var v value.Value
			if err := item.Decode(&v); err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return values, nil
	case yaml.MappingNode:
		var wrapper struct {
			Range yaml.Node `yaml:"range"`
		}
		if err := node.Decode(&wrapper); err != nil {
			return nil, err
		}
		if wrapper.Range.Kind == 0 {
			return nil, fmt.Errorf("line %d: mapping candidates must be {range: ...}", node.Line)
		}
		return decodeRange(&wrapper.Range)
	default:
		return nil, fmt.Errorf("line %d: unsupported candidate list", node.Line)
	}
}

// Range is a half-open integer interval [Start, Stop) walked by Step.
type Range struct {
	Start int64 `yaml:"start"`
	Stop  int64 `yaml:"stop"`
	Step  int64 `yaml:"step"`
}

func decodeRange(node *yaml.Node) ([]value.Value, error) {
	r := Range{Step: 1}
	if node.Kind == yaml.ScalarNode {
		if err := node.Decode(&r.Stop); err != nil {
			return nil, fmt.Errorf("range: %w", err)
		}
	} else if err := node.Decode(&r); err != nil {
		return nil, fmt.Errorf("range: %w", err)
	}
	return r.Values()
}

func (r Range) Values() ([]value.Value, error) {
	if r.Step == 0 {
		return nil, fmt.Errorf("range step must not be zero")
	}
	var values []value.Value
	if r.Step > 0 {
		for i := r.Start; i < r.Stop; i += r.Step {
			values = append(values, value.OfInt(i))
		}
	} else {
		for i := r.Start; i > r.Stop; i += r.Step {
			values = append(values, value.OfInt(i))
		}
	}
	return values, nil
}
