// Package config defines the gosmap configuration model and its YAML and
// TOML codecs. Loading and layering live in internal/configloader.
package config

// CommentStyle selects the syntax of the sourceMappingURL comment written
// after generated output.
type CommentStyle string

const (
	// CommentStyleAuto picks the style from the output file's language.
	CommentStyleAuto CommentStyle = "auto"

	// CommentStyleLine always writes "//# sourceMappingURL=".
	CommentStyleLine CommentStyle = "line"

	// CommentStyleBlock always writes "/*# sourceMappingURL= */".
	CommentStyleBlock CommentStyle = "block"
)

// IsValid reports whether s names a known style.
func (s CommentStyle) IsValid() bool {
	switch s {
	case CommentStyleAuto, CommentStyleLine, CommentStyleBlock:
		return true
	default:
		return false
	}
}

// CacheConfig controls the on-disk cache of parsed source maps.
type CacheConfig struct {
	// Enabled turns the cache on.
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// Dir overrides the cache directory. Empty means the user cache dir.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// Config is the root configuration structure.
//
// Boolean settings are pointers so that a layer can set them to false
// over a lower layer that set them to true. Use the accessor methods to
// read them.
type Config struct {
	// IndentUnit is the text of one indentation level in generated output.
	IndentUnit string `yaml:"indent_unit,omitempty" toml:"indent_unit,omitempty"`

	// LineOnly emits one mapping per line for transcribed spans.
	LineOnly *bool `yaml:"line_only,omitempty" toml:"line_only,omitempty"`

	// SourcesContent embeds the original sources in written maps.
	SourcesContent *bool `yaml:"sources_content,omitempty" toml:"sources_content,omitempty"`

	// Pretty indents written map JSON.
	Pretty *bool `yaml:"pretty,omitempty" toml:"pretty,omitempty"`

	// CommentStyle selects the sourceMappingURL comment syntax.
	CommentStyle CommentStyle `yaml:"comment_style,omitempty" toml:"comment_style,omitempty"`

	// Cache configures the parsed map cache.
	Cache CacheConfig `yaml:"cache,omitempty" toml:"cache,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
}

// DefaultIndentUnit is the indentation used when none is configured.
const DefaultIndentUnit = "\t"

// NewConfig returns a Config with defaults for every setting.
func NewConfig() *Config {
	return &Config{
		IndentUnit:     DefaultIndentUnit,
		LineOnly:       Bool(false),
		SourcesContent: Bool(true),
		Pretty:         Bool(false),
		CommentStyle:   CommentStyleAuto,
		Cache: CacheConfig{
			Enabled: Bool(false),
		},
		LogLevel: "info",
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

func deref(p *bool) bool {
	return p != nil && *p
}

// LineOnlyEnabled reports whether line-only mapping is on.
func (c *Config) LineOnlyEnabled() bool {
	return deref(c.LineOnly)
}

// SourcesContentEnabled reports whether sources are embedded in maps.
func (c *Config) SourcesContentEnabled() bool {
	return deref(c.SourcesContent)
}

// PrettyEnabled reports whether map JSON is indented.
func (c *Config) PrettyEnabled() bool {
	return deref(c.Pretty)
}

// CacheEnabled reports whether the map cache is on.
func (c *Config) CacheEnabled() bool {
	return deref(c.Cache.Enabled)
}
