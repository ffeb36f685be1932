package smartrf

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// parseYAML parses a YAML register profile. Line numbers come from the
// node tree so errors point at the offending key.
func (st *state) parseYAML(data []byte) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("YAML parse error: %w", err)
	}

	// An empty document is an empty profile.
	if root.Kind == 0 || len(root.Content) == 0 {
		return st.seed("")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: YAML profile must be a mapping", doc.Line)
	}

	var (
		baseline  string
		registers *yaml.Node
	)
	for i := 0; i < len(doc.Content)-1; i += 2 {
		keyNode := doc.Content[i]
		valueNode := doc.Content[i+1]

		switch keyNode.Value {
		case "source":
			if err := valueNode.Decode(&st.profile.Label); err != nil {
				return fmt.Errorf("line %d: source: %w", valueNode.Line, err)
			}
		case "baseline":
			if err := valueNode.Decode(&baseline); err != nil {
				return fmt.Errorf("line %d: baseline: %w", valueNode.Line, err)
			}
		case "registers":
			if valueNode.Kind != yaml.MappingNode && !isNull(valueNode) {
				return fmt.Errorf("line %d: registers must be a mapping", valueNode.Line)
			}
			registers = valueNode
		default:
			return fmt.Errorf("line %d: unknown key %q", keyNode.Line, keyNode.Value)
		}
	}

	if err := st.seed(baseline); err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	if registers == nil || isNull(registers) {
		return nil
	}

	for j := 0; j < len(registers.Content)-1; j += 2 {
		keyNode := registers.Content[j]
		valueNode := registers.Content[j+1]
		lineNum := keyNode.Line
		text := keyNode.Value + ": " + valueNode.Value

		var value int
		if err := valueNode.Decode(&value); err != nil {
			if err := st.malformed(&ParseError{Line: lineNum, Text: text, Reason: "invalid value", Err: err}); err != nil {
				return err
			}
			continue
		}

		if err := st.assign(keyNode.Value, value, lineNum); err != nil {
			return rejected(lineNum, text, err)
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
