package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalAbsent(t *testing.T) {
	var payload struct {
		Description Optional[string] `json:"description"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	require.False(t, payload.Description.Set)
	require.False(t, payload.Description.Valid)
	require.Nil(t, payload.Description.Ptr())
}

func TestOptionalNull(t *testing.T) {
	var payload struct {
		Description Optional[string] `json:"description"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &payload))
	require.True(t, payload.Description.Set)
	require.False(t, payload.Description.Valid)
	require.Nil(t, payload.Description.Ptr())
}

func TestOptionalSet(t *testing.T) {
	var payload struct {
		Description Optional[string] `json:"description"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"description":"hello"}`), &payload))
	require.True(t, payload.Description.Set)
	require.True(t, payload.Description.Valid)
	require.Equal(t, "hello", payload.Description.Value)

	ptr := payload.Description.Ptr()
	require.NotNil(t, ptr)
	require.Equal(t, "hello", *ptr)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var payload struct {
		Description Optional[string] `json:"description"`
	}
	require.Error(t, json.Unmarshal([]byte(`{"description":42}`), &payload))
}

func TestOptionalConstructors(t *testing.T) {
	some := Some("x")
	require.True(t, some.Set)
	require.True(t, some.Valid)

	null := Null[string]()
	require.True(t, null.Set)
	require.False(t, null.Valid)
}
