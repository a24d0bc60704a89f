// SPDX-License-Identifier: MIT

// Package coordinator runs the distributed all-pairs computation.
//
// Every rank of a transport.Transport runs the same Node.Run. Rank 0 is the
// coordinator: it owns the input, broadcasts it, computes its share of the
// pairs, collects everyone else's penalties and digests, and folds the
// digests in canonical pair order. The other ranks are workers: they
// receive the input, compute their share, and send results back.
//
// Broadcast order (all ranks must agree):
//
//	k, num_pairs, mismatch, gap, then for each sequence: length, bytes
//
// Result messages for pair idx use tag idx (penalty, int) and
// tag idx+num_pairs (digest, bytes), so collection never depends on the
// order in which messages arrive. The aggregate digest depends only on the
// input, never on the number of ranks or local workers.
package coordinator
