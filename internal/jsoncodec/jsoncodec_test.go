package jsoncodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(testPayload{Key: "leaderboard", Score: 2.5})
	require.NoError(t, err)
	assert.Equal(t, `{"key":"leaderboard","score":2.5}`, string(data))
}

func TestMarshalPretty(t *testing.T) {
	text, err := MarshalPretty(map[string]any{"b": 1, "a": "x"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "{\n  \"a\""), "expected sorted, indented output, got %s", text)
	assert.Less(t, strings.Index(text, "\"a\""), strings.Index(text, "\"b\""))
}

func TestMarshalPretty_Deterministic(t *testing.T) {
	payload := map[string]string{"field1": "val1", "field2": "val2", "field3": "val3"}

	first, err := MarshalPretty(payload)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalPretty(payload)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
