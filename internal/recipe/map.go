package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Hardcoded fallbacks applied when neither a recipe override nor the
// defaults block defines a field.
const (
	fallbackTeamID      = 0
	fallbackSelfService = true
)

// Partial per-recipe settings from the mapping file.
//
// Pointer fields distinguish "absent" from a zero value so that resolution
// can fall through field by field.
type Override struct {
	TeamID      *int  `yaml:"team_id"`
	SelfService *bool `yaml:"self_service"`
}

// Maps recipe identifiers to their Fleet settings.
type Map struct {
	Defaults Override            `yaml:"defaults"`
	Recipes  map[string]Override `yaml:"recipes"`
}

// Fully resolved settings for a single recipe.
type Config struct {
	TeamID      int
	SelfService bool
}

// Loads a recipe-to-config mapping from a YAML file.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMap, err)
	}

	var m Map
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMap, path, err)
	}

	return &m, nil
}

// Resolves the settings for a recipe.
//
// Each field falls through independently: the recipe's override if present,
// else the defaults block, else the hardcoded fallback (team 0,
// self-service on). Recipes without a mapping entry resolve entirely from
// the defaults block. Resolution never fails.
func (m *Map) Resolve(name string) Config {
	cfg := Config{
		TeamID:      fallbackTeamID,
		SelfService: fallbackSelfService,
	}

	cfg.apply(m.Defaults)
	if o, ok := m.Recipes[name]; ok {
		cfg.apply(o)
	}

	return cfg
}

// Overlays the set fields of an override onto the config.
func (c *Config) apply(o Override) {
	if o.TeamID != nil {
		c.TeamID = *o.TeamID
	}
	if o.SelfService != nil {
		c.SelfService = *o.SelfService
	}
}
