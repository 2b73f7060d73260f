package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldMapping pairs a source board field name with a target board field name.
type FieldMapping struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// DefaultMappings returns the built-in field mapping, in application order.
func DefaultMappings() []FieldMapping {
	return []FieldMapping{
		{Source: "Status", Target: "Status"},
		{Source: "Estimate", Target: "Estimate"},
		{Source: "Sprint", Target: "Iteration"},
	}
}

// Mappings returns the mapping from MappingFile, or the defaults when unset.
func (c *Config) Mappings() ([]FieldMapping, error) {
	if c.MappingFile == "" {
		return DefaultMappings(), nil
	}
	return LoadMappings(c.MappingFile)
}

// LoadMappings reads a field mapping file. Two YAML shapes are accepted:
//
//	Status: Status
//	Sprint: Iteration
//
// or a list of {source, target} entries. Declared order is preserved.
func LoadMappings(path string) ([]FieldMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Var: path, Reason: fmt.Sprintf("could not be read: %v", err)}
	}
	mappings, err := ParseMappings(data)
	if err != nil {
		return nil, &Error{Var: path, Reason: err.Error()}
	}
	return mappings, nil
}

// ParseMappings parses field mapping YAML.
func ParseMappings(data []byte) ([]FieldMapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("mapping is empty")
	}

	root := doc.Content[0]
	var mappings []FieldMapping
	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			mappings = append(mappings, FieldMapping{
				Source: root.Content[i].Value,
				Target: root.Content[i+1].Value,
			})
		}
	case yaml.SequenceNode:
		if err := root.Decode(&mappings); err != nil {
			return nil, fmt.Errorf("invalid mapping: %w", err)
		}
	default:
		return nil, fmt.Errorf("mapping must be a map or a list")
	}

	if len(mappings) == 0 {
		return nil, fmt.Errorf("mapping is empty")
	}
	for i, m := range mappings {
		mappings[i].Source = strings.TrimSpace(m.Source)
		mappings[i].Target = strings.TrimSpace(m.Target)
		if mappings[i].Source == "" || mappings[i].Target == "" {
			return nil, fmt.Errorf("mapping entry %d: source and target are required", i+1)
		}
	}
	return mappings, nil
}
