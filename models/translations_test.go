package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationsValueScan(t *testing.T) {
	in := Translations{"it": "Museo", "en": "Museum"}

	val, err := in.Value()
	require.NoError(t, err)

	var out Translations
	require.NoError(t, out.Scan(val))
	assert.Equal(t, in, out)

	// Drivers may hand back a string instead of bytes.
	var fromString Translations
	require.NoError(t, fromString.Scan(`{"it":"Ciao"}`))
	assert.Equal(t, "Ciao", fromString["it"])
}

func TestTranslationsScanNil(t *testing.T) {
	var out Translations
	require.NoError(t, out.Scan(nil))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestTranslationsNilValue(t *testing.T) {
	var in Translations
	val, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), val)
}

func TestTranslationsGet(t *testing.T) {
	tr := Translations{"it": "Ciao", "en": ""}

	assert.Equal(t, "Ciao", tr.Get("it", "en"))
	assert.Equal(t, "Ciao", tr.Get("de", "it"), "missing language falls back")
	assert.Equal(t, "Ciao", tr.Get("en", "it"), "empty entry falls back too")
	assert.Empty(t, tr.Get("de", "fr"))
}

func TestTranslationsLanguages(t *testing.T) {
	tr := Translations{"it": "Ciao", "en": "Hello", "de": ""}

	codes := tr.Languages()
	assert.Len(t, codes, 2)
	assert.Contains(t, codes, "it")
	assert.Contains(t, codes, "en")

	assert.True(t, tr.Has("it"))
	assert.False(t, tr.Has("de"), "empty entries do not count")
	assert.False(t, tr.Has("fr"))
}
