// SPDX-License-Identifier: MIT

package costtable

import "fmt"

// Gap is the sentinel written into an Alignment where one side has no
// character. It must never occur in input sequences.
const Gap byte = '_'

// Penalties is the scoring scheme: a match costs nothing, a mismatch costs
// Mismatch and every gap position costs Gap. Both must be non-negative and
// identical on every worker for the duration of a run.
type Penalties struct {
	Mismatch int
	Gap      int
}

// Validate reports ErrNegativePenalty when either penalty is negative.
func (p Penalties) Validate() error {
	if p.Mismatch < 0 || p.Gap < 0 {
		return fmt.Errorf("mismatch=%d gap=%d: %w", p.Mismatch, p.Gap, ErrNegativePenalty)
	}
	return nil
}

// CheckSequence rejects sequences containing the gap sentinel.
func CheckSequence(s []byte) error {
	for i, c := range s {
		if c == Gap {
			return fmt.Errorf("position %d: %w", i, ErrGapInInput)
		}
	}
	return nil
}
