// SPDX-License-Identifier: MIT

// Package pairalign computes pairwise sequence alignment penalties under a
// mismatch penalty and a linear gap penalty, with two kinds of parallelism
// sharing one recurrence and one traceback.
//
//	costtable/   the (m+1)×(n+1) DP table, fill rule, traceback, Alignment
//	wavefront/   anti-diagonal parallel fill of one large table
//	aligner/     one pair in, penalty + alignment + digest out
//	digest/      SHA-512 hex fingerprints and the canonical-order fold
//	partition/   pair enumeration and round-robin ownership
//	transport/   broadcast and tagged point-to-point messaging
//	coordinator/ the distributed all-pairs run over a transport
//	input/, report/, config/, logging/, app/ the command line around it
//
// Quick example (all pairs of three sequences over two ranks):
//
//	in := &coordinator.Input{
//		Penalties: costtable.Penalties{Mismatch: 3, Gap: 2},
//		Sequences: [][]byte{[]byte("AGGGCT"), []byte("AGGCA"), []byte("CAT")},
//	}
//	out, err := coordinator.RunLocal(ctx, in, 2)
//	// out.Penalties[idx] for pair idx, out.Aggregate for the whole run
//
// The aggregate digest depends only on the input: the same sequences and
// penalties give the same value for any number of ranks and threads.
//
//	go install github.com/katalvlaran/pairalign/cmd/pairalign@latest
package pairalign
