package shared

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrorMapMarshalOrder(t *testing.T) {
	t.Parallel()

	// Deliberately reverse-alphabetical so map-order marshaling would flip it.
	m := NewFieldErrorMap(
		[]string{"topic", "serverUrl", "configuration"},
		map[string][]string{
			"topic":         {"Topic is required when notifications are enabled"},
			"serverUrl":     {"Configure ntfy.server_url before sending a test notification"},
			"configuration": {"ntfy publish authentication is not configured; set ntfy.access_token"},
		},
	)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	raw := string(data)
	topicIdx := indexOf(t, raw, `"topic"`)
	serverIdx := indexOf(t, raw, `"serverUrl"`)
	configIdx := indexOf(t, raw, `"configuration"`)
	assert.Less(t, topicIdx, serverIdx)
	assert.Less(t, serverIdx, configIdx)
}

func TestFieldErrorMapRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewFieldErrorMap(
		[]string{"topic", "configuration"},
		map[string][]string{
			"topic":         {"too long", "bad characters"},
			"configuration": {"missing token"},
		},
	)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded FieldErrorMap
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, []string{"topic", "configuration"}, decoded.FieldNames())
	assert.Equal(t, []string{"too long", "bad characters"}, decoded.Get("topic"))
	assert.Equal(t, []string{"missing token"}, decoded.Get("configuration"))
	assert.Equal(t, 2, decoded.Len())
}

func TestFieldErrorMapOmittedWhenNil(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(ErrorResponse{Error: "Not found"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "fieldErrors")
}

func TestFieldErrorMapSkipsUnknownFields(t *testing.T) {
	t.Parallel()

	m := NewFieldErrorMap(
		[]string{"topic", "ghost"},
		map[string][]string{"topic": {"missing"}},
	)
	assert.Equal(t, []string{"topic"}, m.FieldNames())
	assert.Nil(t, m.Get("ghost"))
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()

	idx := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, idx, 0, "expected %q in %q", needle, haystack)
	return idx
}
