// SPDX-License-Identifier: MIT

// Package input reads sequences and penalties for a run.
//
// Two plain-text token formats are accepted, whitespace separated:
//
//	all pairs:   mismatch gap k seq_0 ... seq_{k-1}
//	single pair: mismatch gap x y
//
// FASTA files are read with biogo; their penalties come from elsewhere.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/pairalign/coordinator"
	"github.com/katalvlaran/pairalign/costtable"
)

var (
	// ErrTruncated indicates input that ended before all fields were read.
	ErrTruncated = errors.New("input: truncated input")

	// ErrBadNumber indicates a numeric field that is not a non-negative integer.
	ErrBadNumber = errors.New("input: bad number")

	// ErrGapInInput is costtable.ErrGapInInput, re-exported for callers that
	// only import this package.
	ErrGapInInput = costtable.ErrGapInInput
)

// MaxToken bounds the length of one sequence token.
const MaxToken = 1 << 30

type tokens struct {
	sc   *bufio.Scanner
	read int
}

func newTokens(r io.Reader) *tokens {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxToken)
	sc.Split(bufio.ScanWords)
	return &tokens{sc: sc}
}

func (t *tokens) next(what string) ([]byte, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return nil, fmt.Errorf("input: %s: %w", what, err)
		}
		return nil, fmt.Errorf("%w: missing %s after %d fields", ErrTruncated, what, t.read)
	}
	t.read++
	tok := t.sc.Bytes()
	out := make([]byte, len(tok))
	copy(out, tok)
	return out, nil
}

func (t *tokens) int(what string) (int, error) {
	tok, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(string(tok))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrBadNumber, what, tok)
	}
	return v, nil
}

func (t *tokens) penalties() (costtable.Penalties, error) {
	var p costtable.Penalties
	var err error
	if p.Mismatch, err = t.int("mismatch penalty"); err != nil {
		return p, err
	}
	if p.Gap, err = t.int("gap penalty"); err != nil {
		return p, err
	}
	return p, nil
}

func (t *tokens) sequence(what string) ([]byte, error) {
	s, err := t.next(what)
	if err != nil {
		return nil, err
	}
	if err := costtable.CheckSequence(s); err != nil {
		return nil, fmt.Errorf("input: %s: %w", what, err)
	}
	return s, nil
}

// Read parses the all-pairs format. Fields after the k-th sequence are
// ignored.
func Read(r io.Reader) (*coordinator.Input, error) {
	t := newTokens(r)
	p, err := t.penalties()
	if err != nil {
		return nil, err
	}
	k, err := t.int("sequence count")
	if err != nil {
		return nil, err
	}
	in := &coordinator.Input{Penalties: p, Sequences: make([][]byte, 0, min(k, 1<<16))}
	for i := 0; i < k; i++ {
		s, err := t.sequence(fmt.Sprintf("sequence %d", i))
		if err != nil {
			return nil, err
		}
		in.Sequences = append(in.Sequences, s)
	}
	return in, nil
}

// ReadPair parses the single-pair format.
func ReadPair(r io.Reader) (costtable.Penalties, []byte, []byte, error) {
	t := newTokens(r)
	p, err := t.penalties()
	if err != nil {
		return p, nil, nil, err
	}
	x, err := t.sequence("first sequence")
	if err != nil {
		return p, nil, nil, err
	}
	y, err := t.sequence("second sequence")
	if err != nil {
		return p, nil, nil, err
	}
	return p, x, y, nil
}
