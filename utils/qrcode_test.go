package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQrPng(t *testing.T) {
	png, err := GenerateQrPng("https://example.com/section/1/it", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	other, err := GenerateQrPng("https://example.com/section/1/en", 256)
	require.NoError(t, err)
	assert.NotEqual(t, png, other, "different content encodes differently")
}
