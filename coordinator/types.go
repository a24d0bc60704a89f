// SPDX-License-Identifier: MIT

package coordinator

import (
	"fmt"

	"github.com/katalvlaran/pairalign/costtable"
	"github.com/katalvlaran/pairalign/digest"
	"github.com/katalvlaran/pairalign/partition"
)

// Root is the rank of the coordinator.
const Root = 0

// Role is the part a rank plays in a run.
type Role int

const (
	// Coordinator is rank 0.
	Coordinator Role = iota
	// Worker is every other rank.
	Worker
)

// String implements fmt.Stringer.
func (r Role) String() string {
	if r == Coordinator {
		return "coordinator"
	}
	return "worker"
}

// RoleOf returns the role of rank.
func RoleOf(rank int) Role {
	if rank == Root {
		return Coordinator
	}
	return Worker
}

// Input is what the coordinator distributes.
type Input struct {
	Penalties costtable.Penalties
	Sequences [][]byte
}

// K returns the number of sequences.
func (in *Input) K() int { return len(in.Sequences) }

// Validate checks k >= 2, non-negative penalties, and that no sequence
// contains the gap sentinel. Empty sequences are allowed.
func (in *Input) Validate() error {
	if in == nil {
		return fmt.Errorf("%w: nil input", ErrBadInput)
	}
	if len(in.Sequences) < 2 {
		return fmt.Errorf("%w: k=%d: %w", ErrBadInput, len(in.Sequences), partition.ErrTooFewSequences)
	}
	if err := in.Penalties.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadInput, err)
	}
	for i, s := range in.Sequences {
		if err := costtable.CheckSequence(s); err != nil {
			return fmt.Errorf("%w: sequence %d: %w", ErrBadInput, i, err)
		}
	}
	return nil
}

// Output is the coordinator's result of a run.
type Output struct {
	// Aggregate is the fold of all pair digests in canonical order.
	Aggregate digest.Digest
	// Penalties[idx] is the minimum penalty of pair idx.
	Penalties []int
}

// PairResult is the outcome for one pair.
type PairResult struct {
	Index   int
	Penalty int
	Digest  digest.Digest
}
