package examplefile

import (
	"testing"

	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_DecodesMixedExamples(t *testing.T) {
	data := []byte(`[
		{"input": 0, "output": 2},
		{"input": [1, 3, 2], "output": [1, 2, 3]}
	]`)

	examples, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, examples, 2)

	assert.Equal(t, lang.IntValue(0), examples[0].Input)
	assert.Equal(t, lang.IntValue(2), examples[0].Output)
	assert.Equal(t, lang.ListValue{lang.IntValue(1), lang.IntValue(3), lang.IntValue(2)}, examples[1].Input)
}

func Test_Parse_RejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}

func Test_Format_RoundTripsThroughParse(t *testing.T) {
	examples := []evaluator.Example{
		{Input: lang.IntValue(5), Output: lang.BoolValue(true)},
		{Input: lang.StrValue("hi"), Output: lang.StrValue("HI")},
	}

	data, err := Format(examples)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, examples, back)
}
