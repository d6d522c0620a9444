package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, raw := range []string{"en", "es", "fr", "zh", "ru"} {
		c, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, Code(raw), c)
		assert.True(t, c.Valid())
	}
}

func TestParseRejectsUnknownCodes(t *testing.T) {
	for _, raw := range []string{"", "de", "EN", "en-US", "xx"} {
		_, err := Parse(raw)
		assert.ErrorIs(t, err, ErrUnsupported, "code %q", raw)
	}
}

func TestParseOrDefault(t *testing.T) {
	c, err := ParseOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, English, c)

	c, err = ParseOrDefault("ru")
	require.NoError(t, err)
	assert.Equal(t, Russian, c)

	_, err = ParseOrDefault("nope")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNames(t *testing.T) {
	names := Names()
	require.Len(t, names, 5)
	assert.Equal(t, "English", names[English])
	assert.Equal(t, "español", names[Spanish])
	assert.Equal(t, "français", names[French])
}

func TestDetect(t *testing.T) {
	assert.Equal(t, Spanish, Detect("Bienvenido a la introducción a la inteligencia artificial, un curso completo"))
	assert.Equal(t, Russian, Detect("Добро пожаловать на курс по основам машинного обучения"))
	// Short or ambiguous input falls back to the canonical source language.
	assert.Equal(t, English, Detect("ok"))
}
