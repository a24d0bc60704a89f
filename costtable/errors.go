// SPDX-License-Identifier: MIT

package costtable

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every message is prefixed with "costtable:"; callers
// match them with errors.Is.
var (
	// ErrBadShape is returned when a table is requested for negative lengths.
	ErrBadShape = errors.New("costtable: invalid shape")

	// ErrOutOfRange indicates that (i, j) lies outside the table.
	ErrOutOfRange = errors.New("costtable: index out of range")

	// ErrTableTooLarge indicates that the table would exceed the configured
	// cell budget (see SetMaxCells). The alignment cannot proceed without it.
	ErrTableTooLarge = errors.New("costtable: table exceeds memory budget")

	// ErrNegativePenalty indicates a negative mismatch or gap penalty.
	ErrNegativePenalty = errors.New("costtable: penalties must be non-negative")

	// ErrGapInInput indicates that an input sequence contains the gap sentinel.
	ErrGapInInput = errors.New("costtable: gap sentinel in input sequence")

	// ErrDimensionMismatch indicates that two tables (or a table and a pair
	// of sequences) disagree on shape.
	ErrDimensionMismatch = errors.New("costtable: dimension mismatch")

	// ErrBadAlignment indicates an Alignment that violates its invariants.
	ErrBadAlignment = errors.New("costtable: invalid alignment")
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// tableErrorf wraps a sentinel with the method name and coordinates.
func tableErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Table.%s(%d,%d): %w", method, i, j, err)
}
