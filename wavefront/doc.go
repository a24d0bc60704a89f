// SPDX-License-Identifier: MIT

// Package wavefront fills one cost table in parallel, anti-diagonal by
// anti-diagonal.
//
// Cell (i+1, j+1) depends on (i, j), (i, j+1) and (i+1, j), all on
// anti-diagonal i+j. Cells of one anti-diagonal are therefore independent:
// each slice is split into disjoint row ranges handed to workers, and the
// next slice starts only after every range of the current one returned.
//
//	slice:  0  1  2  3
//	      ┌──┬──┬──┬──
//	      │ 0│ 1│ 2│ 3
//	      ├──┼──┼──┼──
//	      │ 1│ 2│ 3│ 4
//	      ├──┼──┼──┼──
//	      │ 2│ 3│ 4│ 5
//
// Row 0 and column 0 are written first, concurrently with each other.
// The result is identical, cell for cell, to costtable.Fill.
package wavefront
