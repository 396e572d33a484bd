package lang

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_FromJSON_ConvertsEveryShape(t *testing.T) {
	var decoded any
	require.NoError(t, json.Unmarshal([]byte(`[1, true, "a", [2, 3]]`), &decoded))

	v, err := FromJSON(decoded)
	require.NoError(t, err)

	want := ListValue{IntValue(1), BoolValue(true), StrValue("a"), ListValue{IntValue(2), IntValue(3)}}
	assert.Equal(t, want, v)
}

func Test_FromJSON_RejectsFractionalNumber(t *testing.T) {
	_, err := FromJSON(1.5)
	assert.Error(t, err)
}

func Test_FromJSON_RejectsNull(t *testing.T) {
	_, err := FromJSON(nil)
	assert.Error(t, err)
}

func Test_ToJSON_RoundTripsThroughFromJSON(t *testing.T) {
	orig := ListValue{IntValue(5), StrValue("hi"), BoolValue(false)}

	asJSON, err := ToJSON(orig)
	require.NoError(t, err)

	data, err := json.Marshal(asJSON)
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal(data, &decoded))

	back, err := FromJSON(decoded)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}

func Test_ToJSON_RejectsCallable(t *testing.T) {
	_, err := ToJSON(&Builtin{Name: "car"})
	assert.Error(t, err)
}
