package config

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML. Keys it does not know are
// returned, dotted, for the caller to warn about.
func FromYAML(data []byte) (*Config, []string, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, unknownKeys(raw, ""), nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.LineOnly = clonePtr(c.LineOnly)
	clone.SourcesContent = clonePtr(c.SourcesContent)
	clone.Pretty = clonePtr(c.Pretty)
	clone.Cache.Enabled = clonePtr(c.Cache.Enabled)
	return &clone
}

func clonePtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	return Bool(*p)
}

// YAMLIndent returns the YAML indentation width.
func YAMLIndent() int {
	return 2
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = map[string][]string{
	"":      {"indent_unit", "line_only", "sources_content", "pretty", "comment_style", "cache", "log_level"},
	"cache": {"enabled", "dir"},
}

// unknownKeys lists keys of raw not present in knownKeys.
func unknownKeys(raw map[string]any, prefix string) []string {
	var unknown []string
	for key, value := range raw {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if !slices.Contains(knownKeys[prefix], key) {
			unknown = append(unknown, path)
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			unknown = append(unknown, unknownKeys(nested, path)...)
		}
	}
	slices.Sort(unknown)
	return unknown
}
