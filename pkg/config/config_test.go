package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmap/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "\t", cfg.IndentUnit)
	assert.False(t, cfg.LineOnlyEnabled())
	assert.True(t, cfg.SourcesContentEnabled())
	assert.False(t, cfg.PrettyEnabled())
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, config.CommentStyleAuto, cfg.CommentStyle)
}

func TestAccessorsOnUnsetFields(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	assert.False(t, cfg.LineOnlyEnabled())
	assert.False(t, cfg.SourcesContentEnabled())
	assert.False(t, cfg.CacheEnabled())
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("copies pointers", func(t *testing.T) {
		t.Parallel()

		original := config.NewConfig()
		clone := original.Clone()
		require.NotNil(t, clone)

		*clone.Pretty = true
		*clone.Cache.Enabled = true
		assert.False(t, original.PrettyEnabled())
		assert.False(t, original.CacheEnabled())
	})
}

func TestCommentStyleIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.CommentStyleAuto.IsValid())
	assert.True(t, config.CommentStyleBlock.IsValid())
	assert.False(t, config.CommentStyle("hash").IsValid())
}
