package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_SimpleRule(t *testing.T) {
	rs, err := Parse("input + 0 -> input")
	require.NoError(t, err)
	require.Len(t, rs.Rules, 1)
	assert.Equal(t, "input", rs.Rules[0].Template)
}

func Test_Apply_RewritesToFixedPoint(t *testing.T) {
	rs, err := Parse("aaa -> bb")
	require.NoError(t, err)
	out := rs.Apply("aaaaaa")
	assert.Equal(t, "bbbb", out)
}

func Test_Apply_NoRulesIsIdentity(t *testing.T) {
	rs, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, "input", rs.Apply("input"))
}

func Test_Apply_NilRuleSetIsIdentity(t *testing.T) {
	var rs *RuleSet
	assert.Equal(t, "input", rs.Apply("input"))
}

func Test_Apply_LeftToRightOrder(t *testing.T) {
	rs, err := Parse("a -> b\nb -> c")
	require.NoError(t, err)
	assert.Equal(t, "c", rs.Apply("a"))
}
