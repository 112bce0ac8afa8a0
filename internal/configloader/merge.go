package configloader

import "github.com/yaklabco/gosmap/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Strings override when non-empty and pointers when non-nil, so an explicit
// false in a higher layer wins.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.IndentUnit != "" {
		result.IndentUnit = override.IndentUnit
	}
	if override.CommentStyle != "" {
		result.CommentStyle = override.CommentStyle
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Cache.Dir != "" {
		result.Cache.Dir = override.Cache.Dir
	}

	mergeBool(&result.LineOnly, override.LineOnly)
	mergeBool(&result.SourcesContent, override.SourcesContent)
	mergeBool(&result.Pretty, override.Pretty)
	mergeBool(&result.Cache.Enabled, override.Cache.Enabled)

	return result
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		*dst = config.Bool(*override)
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
