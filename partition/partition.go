// SPDX-License-Identifier: MIT

// Package partition enumerates the unordered pairs over k sequences and
// assigns them to workers round robin.
//
// Pairs are ranked row-major over (i, j) with 1 ≤ i < k, 0 ≤ j < i:
//
//	index: 0      1      2      3      4      5
//	pair:  (1,0)  (2,0)  (2,1)  (3,0)  (3,1)  (3,2)
//
// so Index(i, j) = i(i-1)/2 + j and owner(index) = index mod workers.
// Every worker computes its share from (k, workers) alone; nothing about
// the assignment is communicated.
package partition

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewSequences indicates k < 2.
	ErrTooFewSequences = errors.New("partition: need at least two sequences")

	// ErrBadWorkers indicates a worker count below one.
	ErrBadWorkers = errors.New("partition: workers must be >= 1")

	// ErrBadRank indicates a rank outside [0, workers).
	ErrBadRank = errors.New("partition: rank out of range")

	// ErrBadIndex indicates a pair index or pair outside the enumeration.
	ErrBadIndex = errors.New("partition: pair index out of range")
)

// Pair identifies sequences I and J, with J < I.
type Pair struct {
	I, J int
}

// String implements fmt.Stringer.
func (p Pair) String() string { return fmt.Sprintf("(%d,%d)", p.I, p.J) }

// NumPairs returns k(k-1)/2, or 0 for k < 2.
func NumPairs(k int) int {
	if k < 2 {
		return 0
	}
	return k * (k - 1) / 2
}

// Index returns the rank of pair (i, j).
func Index(i, j int) (int, error) {
	if i < 1 || j < 0 || j >= i {
		return 0, fmt.Errorf("(%d,%d): %w", i, j, ErrBadIndex)
	}
	return i*(i-1)/2 + j, nil
}

// PairAt inverts Index.
func PairAt(idx int) (Pair, error) {
	if idx < 0 {
		return Pair{}, fmt.Errorf("index %d: %w", idx, ErrBadIndex)
	}
	// largest i with i(i-1)/2 <= idx
	i := int((1 + math.Sqrt(float64(1+8*idx))) / 2)
	for i*(i-1)/2 > idx {
		i--
	}
	for (i+1)*i/2 <= idx {
		i++
	}
	return Pair{I: i, J: idx - i*(i-1)/2}, nil
}

// Pairs returns all pairs in canonical order.
func Pairs(k int) ([]Pair, error) {
	if k < 2 {
		return nil, fmt.Errorf("k=%d: %w", k, ErrTooFewSequences)
	}
	out := make([]Pair, 0, NumPairs(k))
	for i := 1; i < k; i++ {
		for j := 0; j < i; j++ {
			out = append(out, Pair{I: i, J: j})
		}
	}
	return out, nil
}

// Owner returns the rank that computes pair idx.
func Owner(idx, workers int) (int, error) {
	if workers < 1 {
		return 0, fmt.Errorf("workers=%d: %w", workers, ErrBadWorkers)
	}
	if idx < 0 {
		return 0, fmt.Errorf("index %d: %w", idx, ErrBadIndex)
	}
	return idx % workers, nil
}

// Owned returns, in ascending order, the pair indices rank computes.
func Owned(k, workers, rank int) ([]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("k=%d: %w", k, ErrTooFewSequences)
	}
	if workers < 1 {
		return nil, fmt.Errorf("workers=%d: %w", workers, ErrBadWorkers)
	}
	if rank < 0 || rank >= workers {
		return nil, fmt.Errorf("rank=%d workers=%d: %w", rank, workers, ErrBadRank)
	}
	total := NumPairs(k)
	out := make([]int, 0, total/workers+1)
	for idx := rank; idx < total; idx += workers {
		out = append(out, idx)
	}
	return out, nil
}
