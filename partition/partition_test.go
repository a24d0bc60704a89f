// SPDX-License-Identifier: MIT

package partition_test

import (
	"testing"

	"github.com/katalvlaran/pairalign/partition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairs_CanonicalOrder(t *testing.T) {
	pairs, err := partition.Pairs(4)
	require.NoError(t, err)
	want := []partition.Pair{
		{I: 1, J: 0}, {I: 2, J: 0}, {I: 2, J: 1}, {I: 3, J: 0}, {I: 3, J: 1}, {I: 3, J: 2},
	}
	assert.Equal(t, want, pairs)
	assert.Equal(t, 6, partition.NumPairs(4))
	assert.Equal(t, 0, partition.NumPairs(1))

	_, err = partition.Pairs(1)
	assert.ErrorIs(t, err, partition.ErrTooFewSequences)
}

// TestIndex_RoundTrip checks Index and PairAt against the enumeration.
func TestIndex_RoundTrip(t *testing.T) {
	pairs, err := partition.Pairs(60)
	require.NoError(t, err)
	for idx, p := range pairs {
		got, err := partition.Index(p.I, p.J)
		require.NoError(t, err)
		require.Equal(t, idx, got, "Index%v", p)

		back, err := partition.PairAt(idx)
		require.NoError(t, err)
		require.Equal(t, p, back, "PairAt(%d)", idx)
	}
}

func TestIndex_Errors(t *testing.T) {
	for _, p := range [][2]int{{0, 0}, {2, 2}, {3, -1}, {1, 4}} {
		_, err := partition.Index(p[0], p[1])
		assert.ErrorIs(t, err, partition.ErrBadIndex, "%v", p)
	}
	_, err := partition.PairAt(-1)
	assert.ErrorIs(t, err, partition.ErrBadIndex)
}

// TestOwned_DisjointCover: the shares of all ranks partition [0, num_pairs).
func TestOwned_DisjointCover(t *testing.T) {
	for _, k := range []int{2, 3, 5, 9} {
		for _, w := range []int{1, 2, 3, 4, 7, 50} {
			owner := make(map[int]int)
			for rank := 0; rank < w; rank++ {
				idxs, err := partition.Owned(k, w, rank)
				require.NoError(t, err)
				for n, idx := range idxs {
					if n > 0 {
						require.Less(t, idxs[n-1], idx, "ascending")
					}
					_, dup := owner[idx]
					require.False(t, dup, "index %d owned twice", idx)
					owner[idx] = rank
					got, err := partition.Owner(idx, w)
					require.NoError(t, err)
					assert.Equal(t, rank, got)
				}
			}
			assert.Len(t, owner, partition.NumPairs(k), "k=%d w=%d", k, w)
		}
	}
}

func TestOwner_Errors(t *testing.T) {
	_, err := partition.Owner(3, 0)
	assert.ErrorIs(t, err, partition.ErrBadWorkers)
	_, err = partition.Owner(3, -2)
	assert.ErrorIs(t, err, partition.ErrBadWorkers)
	_, err = partition.Owner(-1, 2)
	assert.ErrorIs(t, err, partition.ErrBadIndex)
}

func TestOwned_Errors(t *testing.T) {
	_, err := partition.Owned(1, 2, 0)
	assert.ErrorIs(t, err, partition.ErrTooFewSequences)
	_, err = partition.Owned(3, 0, 0)
	assert.ErrorIs(t, err, partition.ErrBadWorkers)
	_, err = partition.Owned(3, 2, 2)
	assert.ErrorIs(t, err, partition.ErrBadRank)
}
