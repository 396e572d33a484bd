package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSrc(t *testing.T, src string, input Value) Result {
	t.Helper()
	expr, err := Compile(src)
	require.NoError(t, err)
	return Eval(expr, input)
}

func Test_Arithmetic(t *testing.T) {
	r := runSrc(t, "1 + 2 * 3", IntValue(0))
	assert.False(t, r.Fail)
	assert.Equal(t, IntValue(7), r.Value)
}

func Test_Comparison(t *testing.T) {
	r := runSrc(t, "input <= 10", IntValue(5))
	assert.False(t, r.Fail)
	assert.Equal(t, BoolValue(true), r.Value)
}

func Test_DivisionByZeroIsFail(t *testing.T) {
	r := runSrc(t, "1 / 0", IntValue(0))
	assert.True(t, r.Fail)
}

func Test_UnboundIdentIsFail(t *testing.T) {
	r := runSrc(t, "nonexistent", IntValue(0))
	assert.True(t, r.Fail)
}

func Test_ListLiteralAndSpread(t *testing.T) {
	r := runSrc(t, "[1, 2, *[3, 4], 5]", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(1), IntValue(2), IntValue(3), IntValue(4), IntValue(5)}, r.Value)
}

func Test_ListComprehension(t *testing.T) {
	r := runSrc(t, "[x * 2 for x in [1, 2, 3]]", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(2), IntValue(4), IntValue(6)}, r.Value)
}

func Test_ListComprehensionWithFilter(t *testing.T) {
	r := runSrc(t, "[x for x in [1, 2, 3, 4, 5] if x % 2 == 0]", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(2), IntValue(4)}, r.Value)
}

func Test_IndexingNegative(t *testing.T) {
	r := runSrc(t, "[1, 2, 3][-1]", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(3), r.Value)
}

func Test_IndexOutOfRangeIsFail(t *testing.T) {
	r := runSrc(t, "[1, 2, 3][5]", IntValue(0))
	assert.True(t, r.Fail)
}

func Test_Slicing(t *testing.T) {
	r := runSrc(t, "[1, 2, 3, 4, 5][1:3]", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(2), IntValue(3)}, r.Value)
}

func Test_SliceOpenEnded(t *testing.T) {
	r := runSrc(t, "[1, 2, 3, 4, 5][2:]", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(3), IntValue(4), IntValue(5)}, r.Value)
}

func Test_LambdaAndCall(t *testing.T) {
	r := runSrc(t, "(lambda x, y: x + y)(3, 4)", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(7), r.Value)
}

func Test_ClosureCapturesEnv(t *testing.T) {
	r := runSrc(t, "(lambda x: (lambda y: x + y))(3)(4)", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(7), r.Value)
}

func Test_IfThenElse(t *testing.T) {
	r := runSrc(t, "if_then_else(input > 0, 1, -1)", IntValue(5))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(1), r.Value)
}

func Test_CarCdrConsNull(t *testing.T) {
	r := runSrc(t, "cons(0, cdr([1, 2, 3]))", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(0), IntValue(2), IntValue(3)}, r.Value)

	r = runSrc(t, "null([])", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, BoolValue(true), r.Value)
}

func Test_CarOfEmptyIsFail(t *testing.T) {
	r := runSrc(t, "car([])", IntValue(0))
	assert.True(t, r.Fail)
}

func Test_FoldlSum(t *testing.T) {
	r := runSrc(t, "foldl(lambda acc, x: acc + x, 0, [1, 2, 3, 4])", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(10), r.Value)
}

func Test_FoldrBuildsList(t *testing.T) {
	r := runSrc(t, "foldr(lambda x, acc: cons(x, acc), [], [1, 2, 3])", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(1), IntValue(2), IntValue(3)}, r.Value)
}

func Test_ConcatAndSorted(t *testing.T) {
	r := runSrc(t, "sorted(concat([3, 1], [2, 0]))", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, ListValue{IntValue(0), IntValue(1), IntValue(2), IntValue(3)}, r.Value)
}

// Test_ZFactorial exercises the fixed-point combinator on a recursive
// factorial, the canonical use spec.md §6 calls out explicitly. It must
// use the lazy "... if ... else ..." form rather than if_then_else: the
// latter is an ordinary call, so CallExpr.eval would evaluate the
// recursive else-branch even on the base case and recurse forever.
func Test_ZFactorial(t *testing.T) {
	src := "z(lambda rec: lambda n: 1 if n == 0 else n * rec(n - 1))(5)"
	r := runSrc(t, src, IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(120), r.Value)
}

// Test_ConditionalExpr_OnlyEvaluatesSelectedBranch confirms the else
// branch is never reached when the condition is true, which is what lets
// Test_ZFactorial terminate at all.
func Test_ConditionalExpr_OnlyEvaluatesSelectedBranch(t *testing.T) {
	r := runSrc(t, "1 if input == 0 else 1 / 0", IntValue(0))
	require.False(t, r.Fail)
	assert.Equal(t, IntValue(1), r.Value)
}

func Test_NoResultNeverEqualsItself(t *testing.T) {
	a := FailResult()
	b := FailResult()
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(a))
}

func Test_ResultEqualComparesValues(t *testing.T) {
	a := Ok(IntValue(3))
	b := Ok(IntValue(3))
	c := Ok(IntValue(4))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
