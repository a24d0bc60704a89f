// SPDX-License-Identifier: MIT

package coordinator

import (
	"fmt"

	"github.com/katalvlaran/pairalign/digest"
)

// Combine places results by index and folds their digests in ascending
// index order. Results may be given in any order; every index in
// [0, numPairs) must appear exactly once.
func Combine(results []PairResult, numPairs int) (*Output, error) {
	if numPairs < 0 {
		return nil, fmt.Errorf("%w: num_pairs=%d", ErrProtocol, numPairs)
	}
	seen := make([]bool, numPairs)
	byIndex := make([]PairResult, numPairs)
	for _, r := range results {
		if r.Index < 0 || r.Index >= numPairs {
			return nil, fmt.Errorf("%w: index %d outside [0,%d)", ErrProtocol, r.Index, numPairs)
		}
		if seen[r.Index] {
			return nil, fmt.Errorf("index %d: %w", r.Index, ErrDuplicateResult)
		}
		if !digest.Valid(r.Digest) {
			return nil, fmt.Errorf("%w: index %d: %w", ErrProtocol, r.Index, digest.ErrMalformed)
		}
		seen[r.Index] = true
		byIndex[r.Index] = r
	}

	out := &Output{Penalties: make([]int, numPairs)}
	f := digest.NewFold()
	for idx, r := range byIndex {
		if !seen[idx] {
			return nil, fmt.Errorf("index %d: %w", idx, ErrMissingResult)
		}
		out.Penalties[idx] = r.Penalty
		f.Add(r.Digest)
	}
	out.Aggregate = f.Sum()
	return out, nil
}
