// SPDX-License-Identifier: MIT

package coordinator

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/pairalign/transport"
)

// RunLocal runs a whole computation in-process: it builds an in-memory
// network of workers ranks, runs a Node on each, and returns the
// coordinator's Output. The first failing rank cancels the others.
func RunLocal(ctx context.Context, in *Input, workers int, opts ...Option) (*Output, error) {
	if workers < 1 {
		return nil, fmt.Errorf("workers=%d: %w", workers, ErrBadWorkers)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	net, err := transport.NewNetwork(workers)
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}
	defer net.Close()
	return RunNetwork(ctx, net, in, opts...)
}

// RunNetwork runs one Node per endpoint of net and returns the
// coordinator's Output. Every rank gets its own goroutine: a rank blocked
// on a receive only makes progress once its peer runs.
func RunNetwork(ctx context.Context, net *transport.Network, in *Input, opts ...Option) (*Output, error) {
	eps := net.Endpoints()
	nodes := make([]*Node, len(eps))
	for r, ep := range eps {
		node, err := New(ep, opts...)
		if err != nil {
			return nil, err
		}
		nodes[r] = node
	}

	var out *Output
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for r, node := range nodes {
		p.Go(func(ctx context.Context) error {
			res, err := node.Run(ctx, in)
			if err != nil {
				return fmt.Errorf("rank %d: %w", r, err)
			}
			if r == Root {
				out = res
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
