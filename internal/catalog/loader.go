package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile mirrors the YAML catalog document.
type catalogFile struct {
	Cards []cardRecord `yaml:"cards"`
}

// cardRecord mirrors a single card entry in the YAML catalog.
type cardRecord struct {
	Name    string    `yaml:"name"`
	Kind    string    `yaml:"kind"`
	Cost    costValue `yaml:"cost"`
	Stats   *Stats    `yaml:"stats"`
	Effects string    `yaml:"effects"`
}

// costValue accepts either a non-negative integer or the string "variable".
type costValue int

func (c *costValue) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	if raw == "variable" {
		*c = CostVariable
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid cost %q: want a non-negative integer or \"variable\"", node.Value)
	}
	if n < 0 {
		return fmt.Errorf("invalid cost %d: must be non-negative", n)
	}
	*c = costValue(n)
	return nil
}

// LoadFile reads and validates a YAML card catalog.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Load(data)
}

// Load parses and validates a YAML card catalog document.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Cards) == 0 {
		return nil, fmt.Errorf("catalog contains no cards")
	}

	templates := make([]*CardTemplate, 0, len(file.Cards))
	for _, rec := range file.Cards {
		templates = append(templates, &CardTemplate{
			Name:             rec.Name,
			Kind:             Kind(strings.ToLower(strings.TrimSpace(rec.Kind))),
			Cost:             int(rec.Cost),
			Stats:            rec.Stats,
			EffectDefinition: strings.TrimSpace(rec.Effects),
		})
	}

	return New(templates)
}
