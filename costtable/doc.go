// SPDX-License-Identifier: MIT

// Package costtable holds the dynamic-programming table for pairwise
// alignment under a mismatch penalty and a linear gap penalty, together
// with the recurrence, the traceback and the trimming of the traceback
// buffers.
//
// 🚀 What is the cost table?
//
//	For sequences x (length m) and y (length n) the table has (m+1)×(n+1)
//	cells. Cell (i, j) holds the minimum cost of aligning x[:i] against y[:j]:
//
//	  T[i][0] = i·gap,  T[0][j] = j·gap
//	  T[i][j] = T[i-1][j-1]                                 if x[i-1] == y[j-1]
//	          = min(T[i-1][j-1] + mismatch,
//	                T[i-1][j]   + gap,
//	                T[i][j-1]   + gap)                      otherwise
//
// ✨ Key features:
//   - dense row-major storage with the explicit index formula i*cols + j
//   - bounds-checked At/Set for callers, unchecked accessors for fill loops
//   - per-cell FillCell so alternative schedulers (see package wavefront)
//     reuse the exact same recurrence
//   - traceback with a fixed tie-break priority:
//     match → diagonal mismatch → vertical (x, _) → horizontal (_, y)
//   - Trim, the worst-case (m+n) buffer trimming step, exposed on its own
//
// ⚙️ Usage:
//
//	p := costtable.Penalties{Mismatch: 3, Gap: 2}
//	cost, a, err := costtable.Align([]byte("AGGGCT"), []byte("AGGCA"), p)
//	// cost == 5, a.X == "AGGGCT", a.Y == "A_GGCA"
//
// Performance:
//
//   - Time:   O(m·n)
//   - Memory: O(m·n) for the table, O(m+n) for traceback buffers
//
// The tie-break order decides which of several optimal alignments is
// returned, and downstream digests depend on it. Do not reorder it.
package costtable
