// SPDX-License-Identifier: MIT

// Package report renders run results as the classic text layout or JSON.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/pairalign/aligner"
	"github.com/katalvlaran/pairalign/coordinator"
	"github.com/katalvlaran/pairalign/costtable"
	"github.com/katalvlaran/pairalign/partition"
)

// Format selects the output layout.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// ErrBadFormat indicates an unknown format name.
var ErrBadFormat = errors.New("report: unknown format")

// ParseFormat accepts "text" and "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadFormat, s)
	}
}

// Writer renders results to an io.Writer.
type Writer struct {
	w      io.Writer
	format Format
	timing bool
}

// New returns a Writer. With timing unset, elapsed times are omitted, which
// keeps output reproducible.
func New(w io.Writer, f Format, timing bool) *Writer {
	return &Writer{w: w, format: f, timing: timing}
}

// PairRow is one pair in the JSON all-pairs report.
type PairRow struct {
	Index   int `json:"index"`
	I       int `json:"i"`
	J       int `json:"j"`
	Penalty int `json:"penalty"`
}

// PairsReport is the JSON all-pairs report.
type PairsReport struct {
	Aggregate string    `json:"aggregate"`
	Penalties []int     `json:"penalties"`
	Pairs     []PairRow `json:"pairs"`
	ElapsedUS *int64    `json:"elapsed_us,omitempty"`
}

// SingleReport is the JSON single-pair report.
type SingleReport struct {
	Mismatch  int    `json:"mismatch"`
	Gap       int    `json:"gap"`
	Penalty   int    `json:"penalty"`
	X         string `json:"x"`
	Y         string `json:"y"`
	Digest    string `json:"digest"`
	ElapsedUS *int64 `json:"elapsed_us,omitempty"`
}

func (r *Writer) elapsed(d time.Duration) *int64 {
	if !r.timing {
		return nil
	}
	us := d.Microseconds()
	return &us
}

// Pairs renders an all-pairs result.
//
// Text layout:
//
//	Time: <us> us          (only with timing)
//	<aggregate digest>
//	<p0> <p1> ... <pN-1>   (each penalty followed by one space)
func (r *Writer) Pairs(out *coordinator.Output, elapsed time.Duration) error {
	if r.format == JSON {
		rep := PairsReport{
			Aggregate: out.Aggregate.String(),
			Penalties: out.Penalties,
			Pairs:     make([]PairRow, len(out.Penalties)),
			ElapsedUS: r.elapsed(elapsed),
		}
		for idx, pen := range out.Penalties {
			p, err := partition.PairAt(idx)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			rep.Pairs[idx] = PairRow{Index: idx, I: p.I, J: p.J, Penalty: pen}
		}
		return r.encode(rep)
	}

	var b strings.Builder
	if r.timing {
		fmt.Fprintf(&b, "Time: %d us\n", elapsed.Microseconds())
	}
	b.WriteString(out.Aggregate.String())
	b.WriteByte('\n')
	for _, p := range out.Penalties {
		fmt.Fprintf(&b, "%d ", p)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Single renders a single-pair result.
//
// Text layout:
//
//	misMatchPenalty=<mismatch>
//	gapPenalty=<gap>
//	Time: <us> us          (only with timing)
//	Minimum Penalty in aligning the genes = <penalty>
//	The aligned genes are :
//	<aligned x>
//	<aligned y>
func (r *Writer) Single(p costtable.Penalties, res aligner.Result, elapsed time.Duration) error {
	if r.format == JSON {
		return r.encode(SingleReport{
			Mismatch:  p.Mismatch,
			Gap:       p.Gap,
			Penalty:   res.Penalty,
			X:         string(res.Alignment.X),
			Y:         string(res.Alignment.Y),
			Digest:    res.Digest.String(),
			ElapsedUS: r.elapsed(elapsed),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "misMatchPenalty=%d\n", p.Mismatch)
	fmt.Fprintf(&b, "gapPenalty=%d\n", p.Gap)
	if r.timing {
		fmt.Fprintf(&b, "Time: %d us\n", elapsed.Microseconds())
	}
	fmt.Fprintf(&b, "Minimum Penalty in aligning the genes = %d\n", res.Penalty)
	b.WriteString("The aligned genes are :\n")
	b.WriteString(res.Alignment.String())
	b.WriteByte('\n')
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Writer) encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}
