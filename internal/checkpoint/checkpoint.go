// Package checkpoint snapshots and restores an enumerator's instance pool,
// letting a long-running synthesis job be interrupted and resumed at the
// stratum it left off instead of restarting from stratum 0. This is a pure
// addition over the core: original_source/synthesizer.py has no
// persistence layer at all.
package checkpoint

import (
	"fmt"

	"github.com/dekarrin/pbe/internal/enum"
	"github.com/dekarrin/pbe/internal/synerr"
	"github.com/dekarrin/rezi"
)

// Snapshot is a point-in-time capture of an instance pool: every
// non-terminal's kept fragments, in insertion order, plus the stratum the
// enumerator had just finished when the snapshot was taken.
type Snapshot struct {
	Height    int
	Order     []string
	Fragments map[string][][]string
}

// Take captures pool's current contents at the given height.
func Take(pool *enum.Pool, height int) Snapshot {
	order := pool.NonTerminals()
	frags := make(map[string][][]string, len(order))

	for _, nt := range order {
		kept := pool.Fragments(nt)
		tuples := make([][]string, len(kept))
		for i, f := range kept {
			tuples[i] = []string(f)
		}
		frags[nt] = tuples
	}

	return Snapshot{Height: height, Order: order, Fragments: frags}
}

// Save encodes the snapshot to a binary blob, the same rezi.EncBinary call
// tunaq/server/dao/sqlite uses to persist a game.State.
func (s Snapshot) Save() []byte {
	return rezi.EncBinary(s)
}

// Restore decodes a blob previously produced by Save.
func Restore(data []byte) (Snapshot, error) {
	var s Snapshot
	n, err := rezi.DecBinary(data, &s)
	if err != nil {
		return Snapshot{}, synerr.New("checkpoint could not be decoded", synerr.ErrCheckpoint, err)
	}
	if n != len(data) {
		return Snapshot{}, synerr.New(fmt.Sprintf("checkpoint decode consumed %d/%d bytes", n, len(data)), synerr.ErrCheckpoint)
	}
	return s, nil
}

// Populate rebuilds an enum.Pool from the snapshot, ready to be handed to
// (*enum.Enumerator).Resume alongside Height+1 as the starting stratum.
func (s Snapshot) Populate(pool *enum.Pool) {
	for _, nt := range s.Order {
		for _, tuple := range s.Fragments[nt] {
			pool.Add(nt, enum.Fragment(tuple))
		}
	}
}
