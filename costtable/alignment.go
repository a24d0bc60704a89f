// SPDX-License-Identifier: MIT

package costtable

import (
	"bytes"
	"fmt"
)

// Alignment is a pair of equal-length rows over the input alphabet plus Gap.
// No column holds Gap on both sides, and removing gaps from X (resp. Y)
// yields the original x (resp. y).
type Alignment struct {
	X []byte
	Y []byte
}

// Len returns the number of columns.
func (a Alignment) Len() int { return len(a.X) }

// Strip removes gap sentinels from both rows.
func (a Alignment) Strip() (x, y []byte) {
	return stripGaps(a.X), stripGaps(a.Y)
}

// Gaps counts gap sentinels in X and Y.
func (a Alignment) Gaps() (inX, inY int) {
	return bytes.Count(a.X, []byte{Gap}), bytes.Count(a.Y, []byte{Gap})
}

// Cost rescores the alignment column by column under p.
func (a Alignment) Cost(p Penalties) int {
	cost := 0
	for k := range a.X {
		switch {
		case a.X[k] == Gap || a.Y[k] == Gap:
			cost += p.Gap
		case a.X[k] != a.Y[k]:
			cost += p.Mismatch
		}
	}
	return cost
}

// Validate checks the Alignment invariants against the original sequences.
func (a Alignment) Validate(x, y []byte) error {
	if len(a.X) != len(a.Y) {
		return fmt.Errorf("rows %d and %d long: %w", len(a.X), len(a.Y), ErrBadAlignment)
	}
	for k := range a.X {
		if a.X[k] == Gap && a.Y[k] == Gap {
			return fmt.Errorf("column %d is gap/gap: %w", k, ErrBadAlignment)
		}
	}
	sx, sy := a.Strip()
	if !bytes.Equal(sx, x) || !bytes.Equal(sy, y) {
		return fmt.Errorf("stripped rows do not recover inputs: %w", ErrBadAlignment)
	}
	return nil
}

// String renders both rows on separate lines.
func (a Alignment) String() string {
	return string(a.X) + "\n" + string(a.Y)
}

func stripGaps(s []byte) []byte {
	out := make([]byte, 0, len(s))
	for _, c := range s {
		if c != Gap {
			out = append(out, c)
		}
	}
	return out
}
