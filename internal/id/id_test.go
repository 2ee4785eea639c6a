package id

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var presetIDPattern = regexp.MustCompile(`^preset-[0-9a-z]{16}$`)

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id, err := Generate("test")
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate ID: %s", id)
		seen[id] = true
	}
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{"preset", "p", "swatch"} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, prefix+"-"))
			assert.Len(t, id, len(prefix)+1+16)
			assert.Regexp(t, `^[0-9a-z]+$`, strings.TrimPrefix(id, prefix+"-"))
		})
	}
}

func TestNewPreset(t *testing.T) {
	id, err := NewPreset()
	require.NoError(t, err)
	assert.Regexp(t, presetIDPattern, id)
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Regexp(t, presetIDPattern, MustGenerate(PresetPrefix))
	})
}

func TestNewInstance(t *testing.T) {
	a := NewInstance()
	b := NewInstance()

	assert.True(t, ValidInstance(a))
	assert.NotEqual(t, a, b)
	assert.False(t, ValidInstance("preset-abc"))
	assert.False(t, ValidInstance(""))
}
