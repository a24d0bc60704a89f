// SPDX-License-Identifier: MIT

package costtable

import "fmt"

// Traceback walks a filled table from (m, n) back to (0, 0) and returns the
// witnessing alignment.
//
// Algorithm Outline:
//  1. Allocate x and y buffers of the worst-case length l = m+n and write
//     them back to front starting at l-1.
//  2. While i > 0 and j > 0, take the first rule that holds:
//     x[i-1] == y[j-1]                → diagonal, emit (x[i-1], y[j-1])
//     T[i-1][j-1] + mismatch == T[i][j] → diagonal, emit (x[i-1], y[j-1])
//     T[i-1][j] + gap == T[i][j]        → vertical, emit (x[i-1], _)
//     otherwise                         → horizontal, emit (_, y[j-1])
//  3. Pad both buffers independently down to position 0: the remaining
//     characters of whichever sequence is left, then gaps.
//  4. Trim the leading gap/gap padding.
//
// Errors:
//   - ErrDimensionMismatch if t was not built for len(x)×len(y).
func Traceback(t *Table, x, y []byte, p Penalties) (Alignment, error) {
	m, n := len(x), len(y)
	if t.r != m+1 || t.c != n+1 {
		return Alignment{}, fmt.Errorf("traceback %dx%d table for %d,%d: %w", t.r, t.c, m, n, ErrDimensionMismatch)
	}

	l := m + n
	xbuf := make([]byte, l)
	ybuf := make([]byte, l)

	i, j := m, n
	pos := l - 1
	for i > 0 && j > 0 {
		cur := t.at(i, j)
		switch {
		case x[i-1] == y[j-1], t.at(i-1, j-1)+p.Mismatch == cur:
			xbuf[pos], ybuf[pos] = x[i-1], y[j-1]
			i--
			j--
		case t.at(i-1, j)+p.Gap == cur:
			xbuf[pos], ybuf[pos] = x[i-1], Gap
			i--
		default:
			xbuf[pos], ybuf[pos] = Gap, y[j-1]
			j--
		}
		pos--
	}

	for k := pos; k >= 0; k-- {
		if i > 0 {
			i--
			xbuf[k] = x[i]
		} else {
			xbuf[k] = Gap
		}
	}
	for k := pos; k >= 0; k-- {
		if j > 0 {
			j--
			ybuf[k] = y[j]
		} else {
			ybuf[k] = Gap
		}
	}

	return Trim(xbuf, ybuf), nil
}

// Trim drops the unused front of back-to-front traceback buffers.
//
// Scanning from the last position toward the first, the first column with a
// gap on both sides marks the end of the padding; everything after it is the
// alignment. When no such column exists the whole buffer is used. The
// returned slices are copies sized to the alignment.
func Trim(xbuf, ybuf []byte) Alignment {
	l := min(len(xbuf), len(ybuf))
	start := 0
	for k := l - 1; k >= 0; k-- {
		if xbuf[k] == Gap && ybuf[k] == Gap {
			start = k + 1
			break
		}
	}
	a := Alignment{
		X: make([]byte, l-start),
		Y: make([]byte, l-start),
	}
	copy(a.X, xbuf[start:l])
	copy(a.Y, ybuf[start:l])
	return a
}
