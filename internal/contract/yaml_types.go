package contract

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts either a sequence of names or a single
// comma-separated string.
func (n *NameList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if strings.TrimSpace(str) == "" {
			*n = NameList{}
			return nil
		}

		parts := strings.Split(str, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}

		*n = parts

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*n = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}
