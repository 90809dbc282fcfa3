package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"signature-resolver/internal/common"
)

// StringOrArray is a list of strings that may be written as a single string.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// paramFields are the keys of the full parameter form.
var paramFields = map[string]bool{
	"name":        true,
	"type":        true,
	"target":      true,
	"target_type": true,
}

// UnmarshalYAML implements custom YAML unmarshaling for ParamDef.
// Accepts:
//   - Bare type: "Car"
//   - Shorthand: {car: Car}
//   - Full form: {name: dto, type: CarDto, target: true}
func (p *ParamDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*p = ParamDef{Type: node.Value}
		return nil

	case yaml.MappingNode:
		if len(node.Content) == 2 && !paramFields[node.Content[0].Value] {
			key, value := node.Content[0], node.Content[1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: parameter %q: expected a type expression", value.Line, key.Value)
			}

			*p = ParamDef{Name: key.Value, Type: value.Value}

			return nil
		}

		// alias type avoids recursion into this method
		type rawParam ParamDef

		var raw rawParam

		if err := node.Decode(&raw); err != nil {
			return err
		}

		for i := 0; i < len(node.Content); i += 2 {
			if key := node.Content[i].Value; !paramFields[key] {
				return fmt.Errorf("line %d: unknown parameter field %q", node.Content[i].Line, key)
			}
		}

		*p = ParamDef(raw)

		return nil

	default:
		return fmt.Errorf("line %d: expected parameter, got %v", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML implements custom YAML marshaling for ParamDef.
// Plain named parameters are written in shorthand form.
func (p ParamDef) MarshalYAML() (any, error) {
	if p.Name != "" && !p.Target && !p.TargetType && !paramFields[p.Name] {
		return map[string]string{p.Name: p.Type}, nil
	}

	type rawParam ParamDef

	return rawParam(p), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}
