package intrusive

import (
	"math/rand/v2"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/require"
)

// TestHashSetMatchesModel checks membership against a reference set under
// random inserts and removals.
func TestHashSetMatchesModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	s := NewHashSet[uint64, tag, *tag](16, WithHasher(Uint64Hash))
	model := mapset.NewThreadUnsafeSet[uint64]()
	elems := make(map[uint64]*tag)

	for range 5000 {
		k := rng.Uint64N(64)
		if rng.IntN(2) == 0 {
			if _, ok := elems[k]; !ok {
				elems[k] = &tag{id: k}
			}
			inserted := s.Insert(elems[k])
			require.Equal(t, !model.Contains(k), inserted)
			model.Add(k)
		} else {
			require.Equal(t, model.Contains(k), s.Erase(k) == 1)
			model.Remove(k)
		}
		require.Equal(t, model.Cardinality(), s.Len())
	}

	got := mapset.NewThreadUnsafeSet[uint64]()
	for e := range s.All() {
		got.Add(e.id)
	}
	require.True(t, model.Equal(got))
}
