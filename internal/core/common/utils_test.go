package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONPlainObject(t *testing.T) {
	result, err := ParseJSON[map[string]any](`{"source": "doc-1", "page": 3}`)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", result["source"])
	assert.Equal(t, float64(3), result["page"])
}

func TestParseJSONTrimsSurroundingNoise(t *testing.T) {
	result, err := ParseJSON[map[string]any]("metadata: {\"source\": \"doc-2\"}\n")
	require.NoError(t, err)
	assert.Equal(t, "doc-2", result["source"])
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[map[string]any]("not json at all")
	assert.Error(t, err)
}

func TestParseJSONMalformedObject(t *testing.T) {
	_, err := ParseJSON[map[string]any](`{"source": `)
	assert.Error(t, err)
}
