// SPDX-License-Identifier: MIT

// Dense storage (row-major) for the alignment cost table.
//
// Purpose:
//   - One flat []int buffer owned by a single alignment; offset = i*cols + j.
//   - Public At/Set return errors instead of panicking.
//   - Fill loops use the unchecked accessors; their loop bounds are the check.
//
// Complexity quicksheet:
//   - New: O(r*c) zero-init; At/Set: O(1); Equal: O(r*c).

package costtable

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

var (
	// maxCells caps the cells of all live tables together; 0 disables the cap.
	maxCells atomic.Int64
	// liveCells counts cells reserved by New and not yet Released.
	liveCells atomic.Int64
)

// SetMaxCells installs a process-wide cell budget shared by every table
// alive at the same time. A value <= 0 removes the budget. The CLI derives
// it from available memory.
func SetMaxCells(n int64) {
	if n < 0 {
		n = 0
	}
	maxCells.Store(n)
}

// MaxCells returns the current budget (0 means unlimited).
func MaxCells() int64 {
	return maxCells.Load()
}

// LiveCells returns the cells held by tables that were not yet released.
func LiveCells() int64 {
	return liveCells.Load()
}

func reserve(cells int64) (live, budget int64, ok bool) {
	for {
		budget = maxCells.Load()
		live = liveCells.Load()
		if budget > 0 && live+cells > budget {
			return live, budget, false
		}
		if liveCells.CompareAndSwap(live, live+cells) {
			return live + cells, budget, true
		}
	}
}

// Table is the (m+1)×(n+1) cost matrix for sequences of length m and n.
type Table struct {
	r, c int   // rows = m+1, cols = n+1
	data []int // row-major, len == r*c
}

// New allocates a zeroed table for sequences of length m and n.
//
// Errors:
//   - ErrBadShape if m or n is negative.
//   - ErrTableTooLarge if (m+1)*(n+1) overflows, or if it does not fit in
//     the budget next to the tables already live.
//
// The table holds its share of the budget until Release.
func New(m, n int) (*Table, error) {
	if m < 0 || n < 0 {
		return nil, fmt.Errorf("New(%d,%d): %w", m, n, ErrBadShape)
	}
	rows, cols := m+1, n+1
	if cols > math.MaxInt/rows {
		return nil, fmt.Errorf("New(%d,%d): %w", m, n, ErrTableTooLarge)
	}
	cells := rows * cols
	if live, budget, ok := reserve(int64(cells)); !ok {
		return nil, fmt.Errorf("New(%d,%d): %d cells with %d live, budget %d: %w",
			m, n, cells, live, budget, ErrTableTooLarge)
	}

	return &Table{r: rows, c: cols, data: make([]int, cells)}, nil
}

// Release returns the table's cells to the budget and drops its storage.
// A released table has no cells; releasing twice is a no-op.
func (t *Table) Release() {
	if t == nil || t.data == nil {
		return
	}
	liveCells.Add(-int64(len(t.data)))
	t.data = nil
	t.r, t.c = 0, 0
}

// Rows returns m+1.
func (t *Table) Rows() int { return t.r }

// Cols returns n+1.
func (t *Table) Cols() int { return t.c }

// index computes the flat offset of (i, j) without bounds checks.
func (t *Table) index(i, j int) int { return i*t.c + j }

func (t *Table) at(i, j int) int { return t.data[i*t.c+j] }

// At returns the value of cell (i, j).
func (t *Table) At(i, j int) (int, error) {
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		return 0, tableErrorf(ctxAt, i, j, ErrOutOfRange)
	}
	return t.data[t.index(i, j)], nil
}

// Set assigns v to cell (i, j).
func (t *Table) Set(i, j, v int) error {
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		return tableErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	t.data[t.index(i, j)] = v
	return nil
}

// Penalty returns the bottom-right cell, the minimum alignment cost.
func (t *Table) Penalty() int {
	return t.data[len(t.data)-1]
}

// Equal reports whether both tables have the same shape and values.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.r != o.r || t.c != o.c {
		return false
	}
	for k, v := range t.data {
		if o.data[k] != v {
			return false
		}
	}
	return true
}

// Diff returns the first cell where t and o differ, or ok=false when the
// tables are equal. Shape mismatch reports ErrDimensionMismatch.
func (t *Table) Diff(o *Table) (i, j int, ok bool, err error) {
	if t.r != o.r || t.c != o.c {
		return 0, 0, false, fmt.Errorf("%dx%d vs %dx%d: %w", t.r, t.c, o.r, o.c, ErrDimensionMismatch)
	}
	for k, v := range t.data {
		if o.data[k] != v {
			return k / t.c, k % t.c, true, nil
		}
	}
	return 0, 0, false, nil
}

// String renders the table one row per line.
func (t *Table) String() string {
	var sb strings.Builder
	for i := 0; i < t.r; i++ {
		sb.WriteString("[")
		for j := 0; j < t.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", t.at(i, j))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
