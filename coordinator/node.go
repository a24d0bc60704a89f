// SPDX-License-Identifier: MIT

package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/pairalign/aligner"
	"github.com/katalvlaran/pairalign/costtable"
	"github.com/katalvlaran/pairalign/digest"
	"github.com/katalvlaran/pairalign/partition"
	"github.com/katalvlaran/pairalign/transport"
)

// Node is one rank's participant in a run.
type Node struct {
	tr           transport.Transport
	filler       aligner.Filler
	log          zerolog.Logger
	localWorkers int
}

// Option configures a Node.
type Option func(*Node)

// WithFiller selects the table fill schedule used for every pair.
func WithFiller(f aligner.Filler) Option {
	return func(n *Node) {
		if f != nil {
			n.filler = f
		}
	}
}

// WithLogger attaches a logger (default disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(n *Node) { n.log = l }
}

// WithLocalWorkers sets how many goroutines align this rank's pairs.
// Values below one are treated as one.
func WithLocalWorkers(w int) Option {
	return func(n *Node) {
		if w < 1 {
			w = 1
		}
		n.localWorkers = w
	}
}

// New binds a Node to tr.
func New(tr transport.Transport, opts ...Option) (*Node, error) {
	if tr == nil {
		return nil, ErrNilTransport
	}
	n := &Node{
		tr:           tr,
		filler:       aligner.Sequential{},
		log:          zerolog.Nop(),
		localWorkers: 1,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.With().Int("rank", tr.Rank()).Str("role", RoleOf(tr.Rank()).String()).Logger()
	return n, nil
}

// Role returns the node's role.
func (n *Node) Role() Role { return RoleOf(n.tr.Rank()) }

// Run executes one distributed run. On the coordinator in is required and
// the folded Output is returned; on workers in is ignored and the Output
// is nil.
//
// Any broadcast or result that violates the wire contract fails the run
// with ErrProtocol. A message that never arrives fails it with the ctx
// error; results are never skipped.
func (n *Node) Run(ctx context.Context, in *Input) (*Output, error) {
	role := n.Role()
	ctx, span := getTracer().Start(ctx, "coordinator.Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("rank", n.tr.Rank()),
		attribute.Int("size", n.tr.Size()),
		attribute.String("role", role.String()),
	)

	var (
		out *Output
		err error
	)
	if role == Coordinator {
		out, err = n.runCoordinator(ctx, in)
	} else {
		err = n.runWorker(ctx)
	}

	if err != nil {
		runsTotal.WithLabelValues(role.String(), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		n.log.Error().Err(err).Msg("run failed")
		return nil, err
	}
	runsTotal.WithLabelValues(role.String(), "ok").Inc()
	span.SetStatus(codes.Ok, "done")
	return out, nil
}

func (n *Node) runCoordinator(ctx context.Context, in *Input) (*Output, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	k := in.K()
	numPairs := partition.NumPairs(k)
	n.log.Info().
		Int("k", k).
		Int("num_pairs", numPairs).
		Int("workers", n.tr.Size()).
		Int("local_workers", n.localWorkers).
		Msg("run started")

	if err := n.broadcastInput(ctx, in); err != nil {
		return nil, err
	}

	own, err := n.computeOwned(ctx, in)
	if err != nil {
		return nil, err
	}

	results := make([]PairResult, 0, numPairs)
	results = append(results, own...)
	size := n.tr.Size()
	for idx := 0; idx < numPairs; idx++ {
		owner, err := partition.Owner(idx, size)
		if err != nil {
			return nil, fmt.Errorf("coordinator: %w", err)
		}
		if owner == Root {
			continue
		}
		r, err := n.receiveResult(ctx, owner, idx, numPairs)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
		pairsCollected.Inc()
	}

	out, err := Combine(results, numPairs)
	if err != nil {
		return nil, err
	}
	n.log.Info().
		Str("aggregate", out.Aggregate.String()).
		Dur("elapsed", time.Since(start)).
		Msg("run finished")
	return out, nil
}

func (n *Node) runWorker(ctx context.Context) error {
	in, err := n.receiveInput(ctx)
	if err != nil {
		return err
	}
	numPairs := partition.NumPairs(in.K())
	n.log.Debug().Int("k", in.K()).Int("num_pairs", numPairs).Msg("input received")

	own, err := n.computeOwned(ctx, in)
	if err != nil {
		return err
	}
	for _, r := range own {
		if err := n.tr.SendInt(ctx, r.Penalty, Root, r.Index); err != nil {
			return fmt.Errorf("coordinator: send penalty %d: %w", r.Index, err)
		}
		if err := n.tr.SendBytes(ctx, []byte(r.Digest), Root, r.Index+numPairs); err != nil {
			return fmt.Errorf("coordinator: send digest %d: %w", r.Index, err)
		}
	}
	n.log.Debug().Int("sent", len(own)).Msg("results sent")
	return nil
}

func (n *Node) broadcastInput(ctx context.Context, in *Input) error {
	k := in.K()
	numPairs := partition.NumPairs(k)
	mismatch, gap := in.Penalties.Mismatch, in.Penalties.Gap
	for _, v := range []*int{&k, &numPairs, &mismatch, &gap} {
		if err := n.tr.BroadcastInt(ctx, v, Root); err != nil {
			return fmt.Errorf("coordinator: broadcast header: %w", err)
		}
	}
	for i, s := range in.Sequences {
		l := len(s)
		if err := n.tr.BroadcastInt(ctx, &l, Root); err != nil {
			return fmt.Errorf("coordinator: broadcast length %d: %w", i, err)
		}
		buf := s
		if err := n.tr.BroadcastBytes(ctx, &buf, Root); err != nil {
			return fmt.Errorf("coordinator: broadcast sequence %d: %w", i, err)
		}
	}
	return nil
}

// receiveInput mirrors broadcastInput and checks every value it is given.
func (n *Node) receiveInput(ctx context.Context) (*Input, error) {
	var k, numPairs, mismatch, gap int
	for _, v := range []*int{&k, &numPairs, &mismatch, &gap} {
		if err := n.tr.BroadcastInt(ctx, v, Root); err != nil {
			return nil, fmt.Errorf("coordinator: receive header: %w", err)
		}
	}
	if k < 2 {
		return nil, fmt.Errorf("%w: k=%d", ErrProtocol, k)
	}
	if want := partition.NumPairs(k); numPairs != want {
		return nil, fmt.Errorf("%w: num_pairs=%d, want %d for k=%d", ErrProtocol, numPairs, want, k)
	}
	in := &Input{
		Penalties: costtable.Penalties{Mismatch: mismatch, Gap: gap},
		Sequences: make([][]byte, k),
	}
	if err := in.Penalties.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	for i := 0; i < k; i++ {
		var l int
		if err := n.tr.BroadcastInt(ctx, &l, Root); err != nil {
			return nil, fmt.Errorf("coordinator: receive length %d: %w", i, err)
		}
		var buf []byte
		if err := n.tr.BroadcastBytes(ctx, &buf, Root); err != nil {
			return nil, fmt.Errorf("coordinator: receive sequence %d: %w", i, err)
		}
		if l < 0 || len(buf) != l {
			return nil, fmt.Errorf("%w: sequence %d: announced length %d, got %d bytes", ErrProtocol, i, l, len(buf))
		}
		if err := costtable.CheckSequence(buf); err != nil {
			return nil, fmt.Errorf("%w: sequence %d: %w", ErrProtocol, i, err)
		}
		in.Sequences[i] = buf
	}
	return in, nil
}

func (n *Node) receiveResult(ctx context.Context, from, idx, numPairs int) (PairResult, error) {
	pen, err := n.tr.RecvInt(ctx, from, idx)
	if err != nil {
		return PairResult{}, fmt.Errorf("coordinator: penalty of pair %d from rank %d: %w", idx, from, err)
	}
	if pen < 0 {
		return PairResult{}, fmt.Errorf("%w: pair %d: negative penalty %d", ErrProtocol, idx, pen)
	}
	raw, err := n.tr.RecvBytes(ctx, from, idx+numPairs)
	if err != nil {
		return PairResult{}, fmt.Errorf("coordinator: digest of pair %d from rank %d: %w", idx, from, err)
	}
	d, err := digest.Parse(raw)
	if err != nil {
		return PairResult{}, fmt.Errorf("%w: pair %d: %w", ErrProtocol, idx, err)
	}
	return PairResult{Index: idx, Penalty: pen, Digest: d}, nil
}

// computeOwned aligns this rank's pairs with up to localWorkers goroutines
// and returns the results in ascending index order.
func (n *Node) computeOwned(ctx context.Context, in *Input) ([]PairResult, error) {
	owned, err := partition.Owned(in.K(), n.tr.Size(), n.tr.Rank())
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	al, err := aligner.New(in.Penalties, aligner.WithFiller(n.filler), aligner.WithLogger(n.log))
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	results := make([]PairResult, len(owned))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(n.localWorkers)
	for pos, idx := range owned {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pair, err := partition.PairAt(idx)
			if err != nil {
				return fmt.Errorf("coordinator: %w", err)
			}
			res, err := al.Align(ctx, in.Sequences[pair.I], in.Sequences[pair.J])
			if err != nil {
				return fmt.Errorf("coordinator: pair %d %s: %w", idx, pair, err)
			}
			results[pos] = PairResult{Index: idx, Penalty: res.Penalty, Digest: res.Digest}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	pairsComputed.WithLabelValues(n.Role().String()).Add(float64(len(owned)))
	return results, nil
}
