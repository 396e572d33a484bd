package checkpoint

import (
	"testing"

	"github.com/dekarrin/pbe/internal/enum"
	"github.com/dekarrin/pbe/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TakeAndPopulate_RoundTrips(t *testing.T) {
	g, err := grammar.Parse(`
		PROGRAM ::= NUM
		NUM ::= 1 | 2
	`)
	require.NoError(t, err)

	pool := enum.NewPool(g)
	pool.Add("NUM", enum.Fragment{"1"})
	pool.Add("NUM", enum.Fragment{"2"})
	pool.Add("PROGRAM", enum.Fragment{"1"})

	snap := Take(pool, 3)
	assert.Equal(t, 3, snap.Height)

	fresh := enum.NewPool(g)
	snap.Populate(fresh)

	assert.Equal(t, pool.Fragments("NUM"), fresh.Fragments("NUM"))
	assert.Equal(t, pool.Fragments("PROGRAM"), fresh.Fragments("PROGRAM"))
}

func Test_SaveAndRestore_RoundTrips(t *testing.T) {
	g, err := grammar.Parse(`
		PROGRAM ::= NUM
		NUM ::= 1 | 2
	`)
	require.NoError(t, err)

	pool := enum.NewPool(g)
	pool.Add("NUM", enum.Fragment{"1"})
	pool.Add("NUM", enum.Fragment{"2"})

	snap := Take(pool, 5)
	data := snap.Save()

	restored, err := Restore(data)
	require.NoError(t, err)
	assert.Equal(t, 5, restored.Height)
	assert.Equal(t, snap.Fragments, restored.Fragments)
	assert.Equal(t, snap.Order, restored.Order)
}

func Test_Restore_RejectsGarbage(t *testing.T) {
	_, err := Restore([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}
