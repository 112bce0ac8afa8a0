package utf16text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gosmap/pkg/utf16text"
)

func TestFromString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		units int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"bmp", "héllo", 5},
		{"astral counts two", "a😀b", 4},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			text := utf16text.From(testCase.input)
			assert.Equal(t, testCase.units, text.Len())
			assert.Equal(t, testCase.units, utf16text.UnitLen(testCase.input))
			assert.Equal(t, testCase.input, text.String())
		})
	}
}

func TestSliceClamps(t *testing.T) {
	t.Parallel()

	text := utf16text.From("0123456789")
	assert.Equal(t, "234", text.Slice(2, 5).String())
	assert.Equal(t, "0123456789", text.Slice(-3, 99).String())
	assert.Empty(t, text.Slice(6, 2))
}

func TestIndex(t *testing.T) {
	t.Parallel()

	text := utf16text.From("foo bar foo")
	assert.Equal(t, 4, text.Index(utf16text.From("bar")))
	assert.Equal(t, 0, text.Index(utf16text.From("foo")))
	assert.Equal(t, -1, text.Index(utf16text.From("baz")))
	assert.Equal(t, 0, text.Index(nil))
}
