package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeArrayIgnoresSurroundingProse(t *testing.T) {
	var items []map[string]any
	err := DecodeArray("Here are the medicines:\n```json\n[{\"medication\":\"A\",\"tags\":[\"x\"]}]\n```", &items)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0]["medication"])
}

func TestDecodeArrayFailures(t *testing.T) {
	var items []map[string]any
	assert.ErrorIs(t, DecodeArray("no list here", &items), ErrNoJSONArray)
	assert.ErrorIs(t, DecodeArray("] backwards [", &items), ErrNoJSONArray)
	assert.Error(t, DecodeArray("[{\"medication\": }]", &items))
}

func TestDecodeObjectPrefersDirectParse(t *testing.T) {
	var decoded map[string]any
	require.NoError(t, DecodeObject(`  {"summary":"ok"}  `, &decoded))
	assert.Equal(t, "ok", decoded["summary"])

	decoded = nil
	require.NoError(t, DecodeObject("Result: {\"summary\":\"wrapped\"} done", &decoded))
	assert.Equal(t, "wrapped", decoded["summary"])
}

func TestDecodeObjectFailures(t *testing.T) {
	var decoded map[string]any
	assert.ErrorIs(t, DecodeObject("plain text", &decoded), ErrNoJSONObject)
	assert.Error(t, DecodeObject(`{"summary": "cut`, &decoded))
}
