package oracle

import (
	"testing"

	"github.com/dekarrin/pbe/internal/evaluator"
	"github.com/dekarrin/pbe/internal/lang"
	"github.com/dekarrin/pbe/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKept(strs ...string) *util.Set[string, string] {
	s := util.NewSet[string, string](len(strs))
	for _, v := range strs {
		s.Add(v, v)
	}
	return s
}

func Test_Redundant_LiteralDuplicate(t *testing.T) {
	ev := evaluator.New([]evaluator.Example{{Input: lang.IntValue(0), Output: lang.IntValue(0)}})
	o := New(ev, false, nil)
	kept := newKept("input + 1")
	assert.True(t, o.Redundant("input + 1", kept))
}

func Test_Redundant_CallableAlwaysKept(t *testing.T) {
	ev := evaluator.New(nil)
	o := New(ev, false, nil)
	kept := newKept("lambda x: x")
	assert.False(t, o.Redundant("lambda x: x", kept))
}

func Test_Redundant_ConstantDeduplication(t *testing.T) {
	ev := evaluator.New(nil)
	o := New(ev, false, nil)
	kept := newKept()

	assert.False(t, o.Redundant("1 + 1", kept))
	kept.Add("1 + 1", "1 + 1")

	assert.True(t, o.Redundant("2", kept))
}

func Test_Redundant_ObservationalEquivalence(t *testing.T) {
	ev := evaluator.New([]evaluator.Example{
		{Input: lang.IntValue(1), Output: lang.IntValue(2)},
		{Input: lang.IntValue(5), Output: lang.IntValue(6)},
	})
	o := New(ev, false, nil)
	kept := newKept()

	assert.False(t, o.Redundant("input + 1", kept))
	kept.Add("input + 1", "input + 1")

	assert.True(t, o.Redundant("1 + input", kept))
}

func Test_Redundant_NoResultNeverMatchesNoResult(t *testing.T) {
	ev := evaluator.New([]evaluator.Example{{Input: lang.IntValue(0), Output: lang.IntValue(0)}})
	o := New(ev, false, nil)
	kept := newKept()

	assert.False(t, o.Redundant("1 / 0", kept))
	kept.Add("1 / 0", "1 / 0")

	assert.False(t, o.Redundant("1 % 0", kept))
}

func Test_Redundant_DistinctValuesNotRedundant(t *testing.T) {
	ev := evaluator.New([]evaluator.Example{{Input: lang.IntValue(1), Output: lang.IntValue(1)}})
	o := New(ev, false, nil)
	kept := newKept()

	assert.False(t, o.Redundant("input", kept))
	kept.Add("input", "input")

	assert.False(t, o.Redundant("input * 2", kept))
}

func Test_Redundant_ProveUpgrade(t *testing.T) {
	ev := evaluator.New(nil)
	o := New(ev, true, nil)
	kept := newKept()

	assert.False(t, o.Redundant("input + 1", kept))
	kept.Add("input + 1", "input + 1")

	assert.True(t, o.Redundant("1 + input", kept))
	require.True(t, o.Proving())
}

func Test_Reset_ClearsConstantsAndRestoresProve(t *testing.T) {
	ev := evaluator.New(nil)
	o := New(ev, false, nil)
	kept := newKept()
	o.Redundant("5", kept)

	o.Reset(true)
	assert.True(t, o.Proving())
	assert.Empty(t, o.constantProgs)
}
