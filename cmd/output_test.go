package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatEncode(t *testing.T) {
	entry := listEntry{Name: "save_2025-11-14_09-30-12", Latest: true}

	out, ok, err := outputFormat{}.encode(entry)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)

	out, ok, err = outputFormat{JSON: true}.encode(entry)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out, `"name": "save_2025-11-14_09-30-12"`)

	out, ok, err = outputFormat{Toon: true}.encode(entry)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out, "save_2025-11-14_09-30-12")

	out, ok, err = outputFormat{YAML: true}.encode(entry)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out, "name: save_2025-11-14_09-30-12")
}
