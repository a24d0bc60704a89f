// SPDX-License-Identifier: MIT

// Package digest fingerprints alignments and folds per-pair fingerprints
// into one aggregate value.
//
// A Digest is the lowercase hex text of a SHA-512 sum. Composite digests
// hash the concatenation of hex texts, not of raw sums:
//
//	OfAlignment(x, y) = Sum(hex(Sum(x)) ++ hex(Sum(y)))
//	fold step         = Sum(agg ++ next), agg starting empty
//
// so a fold over digests d0, d1 is Sum(Sum(d0) ++ d1).
package digest

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
)

// Size is the length of a Digest in hex characters.
const Size = 2 * sha512.Size

// ErrMalformed indicates a value that is not Size lowercase hex characters.
var ErrMalformed = errors.New("digest: malformed digest")

// Digest is a hex-encoded SHA-512 value.
type Digest string

// Empty is the starting value of a Fold. It is not a valid Digest.
const Empty Digest = ""

// Sum hashes b.
func Sum(b []byte) Digest {
	s := sha512.Sum512(b)
	return Digest(hex.EncodeToString(s[:]))
}

// SumString hashes s.
func SumString(s string) Digest {
	return Sum([]byte(s))
}

// Concat hashes the concatenated text of a and b.
func Concat(a, b Digest) Digest {
	buf := make([]byte, 0, len(a)+len(b))
	buf = append(buf, a...)
	buf = append(buf, b...)
	return Sum(buf)
}

// OfAlignment fingerprints both rows of an alignment in one value.
func OfAlignment(x, y []byte) Digest {
	return Concat(Sum(x), Sum(y))
}

// Parse validates raw bytes received from a peer.
func Parse(b []byte) (Digest, error) {
	d := Digest(b)
	if !Valid(d) {
		return Empty, fmt.Errorf("%d bytes: %w", len(b), ErrMalformed)
	}
	return d, nil
}

// Valid reports whether d is exactly Size lowercase hex characters.
func Valid(d Digest) bool {
	if len(d) != Size {
		return false
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (d Digest) String() string { return string(d) }

// Fold accumulates digests in the order they are added.
// Callers are responsible for adding them in canonical order.
type Fold struct {
	agg Digest
	n   int
}

// NewFold returns an empty accumulator.
func NewFold() *Fold { return &Fold{} }

// Add folds d into the running value.
func (f *Fold) Add(d Digest) {
	f.agg = Concat(f.agg, d)
	f.n++
}

// Sum returns the running value; Empty if nothing was added.
func (f *Fold) Sum() Digest { return f.agg }

// Len returns how many digests were folded.
func (f *Fold) Len() int { return f.n }

// FoldAll folds ds in slice order.
func FoldAll(ds []Digest) Digest {
	f := NewFold()
	for _, d := range ds {
		f.Add(d)
	}
	return f.Sum()
}
