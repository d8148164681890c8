package value

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a scalar node. Quoted and plain strings are inferred
// with Parse; nodes YAML already typed as bool, int or float keep that type.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*v = OfBool(b)
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return err
		}
		*v = OfInt(i)
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = OfFloat(f)
	case "!!null":
		*v = OfString("")
	default:
		*v = Parse(node.Value)
	}
	if v.kind != String || v.s != "" {
		v.raw = node.Value
	}
	return nil
}

func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case Bool:
		return v.b, nil
	case Int:
		return v.i, nil
	case Float:
		return v.f, nil
	default:
		return v.s, nil
	}
}
