package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse_SimpleArithmetic(t *testing.T) {
	g, err := Parse(`
		PROGRAM ::= NUM
		NUM ::= 1 | NUM \s+\s NUM
	`)
	require.NoError(t, err)
	assert.True(t, g.IsNonTerminal("PROGRAM"))
	assert.True(t, g.IsNonTerminal("NUM"))
	assert.Len(t, g.RulesFor("NUM"), 2)
}

func Test_Parse_Comments(t *testing.T) {
	g, err := Parse(`
		# this is a comment
		PROGRAM ::= NUM # trailing comment
		NUM ::= 1
	`)
	require.NoError(t, err)
	assert.Len(t, g.Rules, 2)
}

func Test_Parse_Escapes(t *testing.T) {
	g, err := Parse(`
		PROGRAM ::= NUM OP NUM
		OP ::= \s+\s | \s-\s
		NUM ::= 1 | True | False
	`)
	require.NoError(t, err)
	numRules := g.RulesFor("NUM")
	require.Len(t, numRules, 3)
	assert.Equal(t, []string{"(1==1)"}, numRules[1].RHS)
	assert.Equal(t, []string{"(1==0)"}, numRules[2].RHS)

	// \s expands to a standalone space token, so "\s+\s" tokenizes to three
	// fields (space, operator, space); joined, the candidate text reads
	// " + " with the operator surrounded by spaces either way.
	opRules := g.RulesFor("OP")
	assert.Equal(t, " + ", joinTokens(opRules[0].RHS))
	assert.Equal(t, " - ", joinTokens(opRules[1].RHS))
}

func joinTokens(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += t
	}
	return out
}

func Test_Parse_MissingProgram(t *testing.T) {
	_, err := Parse(`NUM ::= 1`)
	assert.Error(t, err)
}

func Test_Parse_DuplicateProgram(t *testing.T) {
	_, err := Parse(`
		PROGRAM ::= NUM
		PROGRAM ::= NUM
		NUM ::= 1
	`)
	assert.Error(t, err)
}

func Test_Parse_ProgramOnRHS(t *testing.T) {
	_, err := Parse(`
		PROGRAM ::= NUM
		NUM ::= PROGRAM
	`)
	assert.Error(t, err)
}

func Test_Parse_UndefinedNonTerminal(t *testing.T) {
	_, err := Parse(`PROGRAM ::= NUM`)
	assert.Error(t, err)
}

func Test_Parse_BadTokenName(t *testing.T) {
	// "fooBar" is neither all-uppercase/digit/underscore nor free of
	// uppercase letters, so it matches neither half of TokenRegex.
	_, err := Parse(`PROGRAM ::= fooBar`)
	assert.Error(t, err)
}

func Test_GroundExpressions_GroundOnly(t *testing.T) {
	g, err := Parse(`
		PROGRAM ::= NUM
		NUM ::= 1 | 2
	`)
	require.NoError(t, err)

	ground := GroundExpressions("PROGRAM", g)
	require.Len(t, ground, 2, "PROGRAM ::= NUM is a unit production, so NUM's ground literals are PROGRAM's too")

	groundNum := GroundExpressions("NUM", g)
	require.Len(t, groundNum, 2)
	assert.Equal(t, []string{"1"}, groundNum[0])
	assert.Equal(t, []string{"2"}, groundNum[1])
}

func Test_GroundExpressions_UnitProductionClosure(t *testing.T) {
	g, err := Parse(`
		PROGRAM ::= EXPR
		EXPR ::= CONST
		CONST ::= 0 | 1
	`)
	require.NoError(t, err)

	ground := GroundExpressions("PROGRAM", g)
	require.Len(t, ground, 2)
	assert.Equal(t, []string{"0"}, ground[0])
	assert.Equal(t, []string{"1"}, ground[1])
}

func Test_GroundExpressions_MixedRHSNotGround(t *testing.T) {
	g, err := Parse(`
		PROGRAM ::= EXPR
		EXPR ::= CONST \s+\s CONST | CONST
		CONST ::= 0
	`)
	require.NoError(t, err)

	ground := GroundExpressions("PROGRAM", g)
	require.Len(t, ground, 1, "only the unit production EXPR ::= CONST contributes a ground expression")
	assert.Equal(t, []string{"0"}, ground[0])
}
