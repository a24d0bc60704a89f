// SPDX-License-Identifier: MIT

// Package aligner turns one pair of sequences into a penalty and a digest.
//
// It is the single call site shared by the distributed mode (many pairs,
// one per call) and the wavefront mode (one large pair); the two differ
// only in the Filler used to build the cost table.
package aligner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/pairalign/costtable"
	"github.com/katalvlaran/pairalign/digest"
)

// Result is the outcome of one alignment.
type Result struct {
	Penalty   int
	Alignment costtable.Alignment
	Digest    digest.Digest
}

// Aligner aligns pairs under fixed penalties. It is safe for concurrent use;
// each call owns its own cost table.
type Aligner struct {
	p      costtable.Penalties
	filler Filler
	log    zerolog.Logger
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithFiller selects the table fill schedule (default Sequential).
func WithFiller(f Filler) Option {
	return func(a *Aligner) {
		if f != nil {
			a.filler = f
		}
	}
}

// WithLogger attaches a logger (default disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(a *Aligner) { a.log = l }
}

// New validates p and returns an Aligner.
func New(p costtable.Penalties, opts ...Option) (*Aligner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	a := &Aligner{p: p, filler: Sequential{}, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Penalties returns the scoring scheme.
func (a *Aligner) Penalties() costtable.Penalties { return a.p }

// Filler returns the fill schedule in use.
func (a *Aligner) Filler() Filler { return a.filler }

// Align computes the minimum penalty of x against y, the witnessing
// alignment and its digest. The cost table is dropped before returning.
//
// Errors:
//   - costtable.ErrGapInInput if either sequence contains the gap sentinel.
//   - costtable.ErrTableTooLarge (or any fill error) from the Filler.
func (a *Aligner) Align(ctx context.Context, x, y []byte) (Result, error) {
	ctx, span := getTracer().Start(ctx, "aligner.Align")
	defer span.End()
	span.SetAttributes(
		attribute.Int("x.len", len(x)),
		attribute.Int("y.len", len(y)),
		attribute.String("filler", a.filler.Name()),
	)

	res, err := a.align(ctx, x, y)
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "alignment failed")
	} else {
		span.SetAttributes(attribute.Int("penalty", res.Penalty))
		span.SetStatus(codes.Ok, "aligned")
	}
	alignTotal.WithLabelValues(a.filler.Name(), status).Inc()
	return res, err
}

func (a *Aligner) align(ctx context.Context, x, y []byte) (Result, error) {
	if err := costtable.CheckSequence(x); err != nil {
		return Result{}, fmt.Errorf("aligner: x: %w", err)
	}
	if err := costtable.CheckSequence(y); err != nil {
		return Result{}, fmt.Errorf("aligner: y: %w", err)
	}

	start := time.Now()
	t, err := a.filler.Fill(ctx, x, y, a.p)
	if err != nil {
		return Result{}, fmt.Errorf("aligner: fill %dx%d: %w", len(x), len(y), err)
	}
	defer t.Release()
	cellsFilled.Add(float64(t.Rows() * t.Cols()))

	aln, err := costtable.Traceback(t, x, y, a.p)
	if err != nil {
		return Result{}, fmt.Errorf("aligner: %w", err)
	}
	res := Result{
		Penalty:   t.Penalty(),
		Alignment: aln,
		Digest:    digest.OfAlignment(aln.X, aln.Y),
	}

	elapsed := time.Since(start)
	alignDuration.WithLabelValues(a.filler.Name()).Observe(elapsed.Seconds())
	a.log.Debug().
		Int("m", len(x)).
		Int("n", len(y)).
		Int("penalty", res.Penalty).
		Int("columns", aln.Len()).
		Dur("elapsed", elapsed).
		Msg("aligned pair")

	return res, nil
}
