package dto

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const yamlIntTag = "!!int"

// CheckYAMLQuantities rejects order and inventory quantities that are not integer
// scalars. yaml.v3 truncates floats decoded into int fields, so documents must be
// checked at the node level before their decoded values are trusted.
//
// root may be a document node, an allocation request mapping, a mapping with a
// "warehouses" key, or a bare warehouse list.
func CheckYAMLQuantities(root *yaml.Node) error {
	root = resolveAlias(root)
	if root == nil {
		return nil
	}

	switch root.Kind {
	case yaml.DocumentNode:
		for _, n := range root.Content {
			if err := CheckYAMLQuantities(n); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		return checkYAMLWarehouses("warehouses", root)
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i].Value, resolveAlias(root.Content[i+1])
			var err error
			switch key {
			case "order", "inventory":
				err = checkYAMLItems(key, value)
			case "warehouses":
				err = checkYAMLWarehouses(key, value)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func checkYAMLWarehouses(field string, node *yaml.Node) error {
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	for i, entry := range node.Content {
		entry = resolveAlias(entry)
		if entry.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(entry.Content); j += 2 {
			if entry.Content[j].Value != "inventory" {
				continue
			}
			prefix := fmt.Sprintf("%s[%d].inventory", field, i)
			if err := checkYAMLItems(prefix, resolveAlias(entry.Content[j+1])); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkYAMLItems(field string, node *yaml.Node) error {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		value := resolveAlias(node.Content[i+1])
		if value.Kind == yaml.ScalarNode && value.ShortTag() != yamlIntTag {
			return &ValidationError{
				Field:   field + "." + node.Content[i].Value,
				Message: "must be a non-negative integer",
			}
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}
