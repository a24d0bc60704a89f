// SPDX-License-Identifier: MIT

package wavefront

import (
	"context"
	"fmt"

	"github.com/exascience/pargo/parallel"

	"github.com/katalvlaran/pairalign/costtable"
)

// Diagonal returns the inclusive range [lo, hi] of zero-based x indices i
// on anti-diagonal slice for an m×n interior, where j = slice - i.
// ok is false when the slice has no cells.
func Diagonal(slice, m, n int) (lo, hi int, ok bool) {
	if slice < 0 || m <= 0 || n <= 0 {
		return 0, 0, false
	}
	z1, z2 := 0, 0
	if slice >= m {
		z1 = slice - m + 1
	}
	if slice >= n {
		z2 = slice - n + 1
	}
	lo, hi = z2, slice-z1
	return lo, hi, lo <= hi
}

// Slices returns the number of interior anti-diagonals, m+n-1 (0 if either
// sequence is empty).
func Slices(m, n int) int {
	if m == 0 || n == 0 {
		return 0
	}
	return m + n - 1
}

// Fill builds the cost table for x and y with the wavefront schedule.
//
// Stages:
//  1. Allocate the table (errors from costtable.New are fatal to the caller).
//  2. Write row 0 and column 0 concurrently; both return before stage 3.
//  3. For each slice, split [lo, hi] into at most Workers disjoint ranges
//     and fill them in parallel. parallel.Range returns only when every
//     range is done, which is the barrier between slices.
//
// ctx is checked between slices; a cancelled fill releases its table.
func Fill(ctx context.Context, x, y []byte, p costtable.Penalties, opts ...Option) (*costtable.Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m, n := len(x), len(y)
	t, err := costtable.New(m, n)
	if err != nil {
		return nil, err
	}

	parallel.Do(
		func() { t.InitRow0(p) },
		func() { t.InitCol0(p) },
	)

	for slice := 0; slice < Slices(m, n); slice++ {
		if err := ctx.Err(); err != nil {
			t.Release()
			return nil, fmt.Errorf("wavefront: slice %d: %w", slice, err)
		}
		lo, hi, ok := Diagonal(slice, m, n)
		if !ok {
			continue
		}
		fillRange := func(low, high int) {
			for i := low; i < high; i++ {
				t.FillCell(x, y, p, i+1, slice-i+1)
			}
		}

		cells := hi - lo + 1
		batches := min(o.Workers, cells)
		if batches <= 1 || cells < o.MinParallel {
			fillRange(lo, hi+1)
			continue
		}
		parallel.Range(lo, hi+1, batches, fillRange)
	}

	return t, nil
}
