package config

import (
	"fmt"
	"os"
	"vrp-visualizer-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// LoadField overlays the YAML file at path onto base. Keys missing from the
// file keep their base value.
//
//	depot: {x: 400, y: 300}
//	cluster_bounds: {min_x: 100, max_x: 700, min_y: 100, max_y: 500}
//	baseline_score: 40
func LoadField(path string, base domain.Field) (domain.Field, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Field{}, fmt.Errorf("load field: read %q: %w", path, err)
	}

	field := base
	if err := yaml.Unmarshal(b, &field); err != nil {
		return domain.Field{}, fmt.Errorf("load field: parse %q: %w", path, err)
	}
	if err := field.Validate(); err != nil {
		return domain.Field{}, fmt.Errorf("load field %q: %w", path, err)
	}
	return field, nil
}
