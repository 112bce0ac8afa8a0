package configloader

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/yaklabco/gosmap/pkg/config"
)

// envVarPrefix is the prefix for all gosmap environment variables.
const envVarPrefix = "GOSMAP_"

// envSetter applies one environment value to a config.
type envSetter func(cfg *config.Config, value string) error

func stringSetter(set func(cfg *config.Config, value string)) envSetter {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolSetter(field func(cfg *config.Config) **bool) envSetter {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetter{
	"INDENT_UNIT": stringSetter(func(cfg *config.Config, v string) { cfg.IndentUnit = v }),
	"COMMENT_STYLE": stringSetter(func(cfg *config.Config, v string) {
		cfg.CommentStyle = config.CommentStyle(v)
	}),
	"CACHE_DIR":       stringSetter(func(cfg *config.Config, v string) { cfg.Cache.Dir = v }),
	"LOG_LEVEL":       stringSetter(func(cfg *config.Config, v string) { cfg.LogLevel = v }),
	"LINE_ONLY":       boolSetter(func(cfg *config.Config) **bool { return &cfg.LineOnly }),
	"SOURCES_CONTENT": boolSetter(func(cfg *config.Config) **bool { return &cfg.SourcesContent }),
	"PRETTY":          boolSetter(func(cfg *config.Config) **bool { return &cfg.Pretty }),
	"CACHE_ENABLED":   boolSetter(func(cfg *config.Config) **bool { return &cfg.Cache.Enabled }),
}

// loadFromEnv applies GOSMAP_* overrides read through getenv to cfg.
func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for suffix, set := range envMappings {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}
	return nil
}

// ListEnvVars returns the supported environment variables, sorted.
func ListEnvVars() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, envVarPrefix+suffix)
	}
	sort.Strings(names)
	return names
}
