// SPDX-License-Identifier: MIT

package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Network is an in-process communicator: a fixed set of endpoints that
// exchange messages through per-endpoint mailboxes.
type Network struct {
	eps []*Endpoint
	log zerolog.Logger

	mu    sync.Mutex
	drops map[dropKey]int
}

type dropKey struct{ from, to, tag int }

// NetworkOption configures a Network.
type NetworkOption func(*Network)

// WithLogger traces every delivery at trace level.
func WithLogger(l zerolog.Logger) NetworkOption {
	return func(n *Network) { n.log = l }
}

// NewNetwork builds a network of size endpoints; endpoint r has rank r.
func NewNetwork(size int, opts ...NetworkOption) (*Network, error) {
	if size < 1 {
		return nil, fmt.Errorf("size %d: %w", size, ErrBadNetwork)
	}
	n := &Network{
		log:   zerolog.Nop(),
		drops: make(map[dropKey]int),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.eps = make([]*Endpoint, size)
	for r := range n.eps {
		n.eps[r] = &Endpoint{net: n, rank: r, box: newMailbox()}
	}
	return n, nil
}

// Size returns the number of endpoints.
func (n *Network) Size() int { return len(n.eps) }

// Endpoint returns the endpoint of rank r.
func (n *Network) Endpoint(r int) (*Endpoint, error) {
	if r < 0 || r >= len(n.eps) {
		return nil, fmt.Errorf("rank %d: %w", r, ErrUnknownPeer)
	}
	return n.eps[r], nil
}

// Endpoints returns all endpoints in rank order.
func (n *Network) Endpoints() []*Endpoint {
	out := make([]*Endpoint, len(n.eps))
	copy(out, n.eps)
	return out
}

// DropNext discards the next point-to-point message from -> to on tag.
// Used to simulate a lost message.
func (n *Network) DropNext(from, to, tag int) {
	n.mu.Lock()
	n.drops[dropKey{from, to, tag}]++
	n.mu.Unlock()
}

func (n *Network) shouldDrop(from, to, tag int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	k := dropKey{from, to, tag}
	if n.drops[k] == 0 {
		return false
	}
	n.drops[k]--
	if n.drops[k] == 0 {
		delete(n.drops, k)
	}
	return true
}

// Close closes every endpoint.
func (n *Network) Close() error {
	for _, ep := range n.eps {
		_ = ep.Close()
	}
	return nil
}

// Endpoint is one rank of a Network. It implements Transport and is safe
// for concurrent use, except that concurrent receives on the same
// (source, tag) are rejected.
type Endpoint struct {
	net  *Network
	rank int
	box  *mailbox

	bmu      sync.Mutex
	bcastSeq int
}

var _ Transport = (*Endpoint)(nil)

// Rank implements Transport.
func (e *Endpoint) Rank() int { return e.rank }

// Size implements Transport.
func (e *Endpoint) Size() int { return len(e.net.eps) }

// Close implements Transport. Pending and future operations on e fail
// with ErrClosed.
func (e *Endpoint) Close() error {
	e.box.close()
	return nil
}

func (e *Endpoint) peer(r int) (*Endpoint, error) {
	if r < 0 || r >= len(e.net.eps) {
		return nil, fmt.Errorf("transport: rank %d: peer %d: %w", e.rank, r, ErrUnknownPeer)
	}
	return e.net.eps[r], nil
}

func (e *Endpoint) nextBroadcast() int {
	e.bmu.Lock()
	defer e.bmu.Unlock()
	seq := e.bcastSeq
	e.bcastSeq++
	return seq
}

func (e *Endpoint) broadcast(ctx context.Context, m message, root int) (message, error) {
	if _, err := e.peer(root); err != nil {
		return message{}, err
	}
	if e.box.isClosed() {
		return message{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return message{}, err
	}
	seq := e.nextBroadcast()
	k := key{from: root, tag: seq, bcast: true}
	if e.rank != root {
		got, err := e.box.take(ctx, k)
		if err != nil {
			return message{}, fmt.Errorf("transport: rank %d: broadcast %d from %d: %w", e.rank, seq, root, err)
		}
		if got.kind != m.kind {
			return message{}, fmt.Errorf("transport: rank %d: broadcast %d: got %s, want %s: %w",
				e.rank, seq, got.kind, m.kind, ErrTypeMismatch)
		}
		return got, nil
	}
	for _, p := range e.net.eps {
		if p.rank == root {
			continue
		}
		out := m
		if m.kind == KindBytes {
			out.data = clone(m.data)
		}
		if err := p.box.deliver(k, out); err != nil {
			return message{}, fmt.Errorf("transport: rank %d: broadcast %d to %d: %w", e.rank, seq, p.rank, err)
		}
	}
	e.net.log.Trace().Int("root", root).Int("seq", seq).Stringer("kind", m.kind).Msg("broadcast")
	return m, nil
}

// BroadcastInt implements Transport.
func (e *Endpoint) BroadcastInt(ctx context.Context, v *int, root int) error {
	m, err := e.broadcast(ctx, message{kind: KindInt, num: *v}, root)
	if err != nil {
		return err
	}
	*v = m.num
	return nil
}

// BroadcastBytes implements Transport.
func (e *Endpoint) BroadcastBytes(ctx context.Context, b *[]byte, root int) error {
	m, err := e.broadcast(ctx, message{kind: KindBytes, data: *b}, root)
	if err != nil {
		return err
	}
	if e.rank != root {
		*b = m.data
	}
	return nil
}

func (e *Endpoint) send(ctx context.Context, m message, to, tag int) error {
	p, err := e.peer(to)
	if err != nil {
		return err
	}
	if e.box.isClosed() {
		return ErrClosed
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if e.net.shouldDrop(e.rank, to, tag) {
		e.net.log.Trace().Int("from", e.rank).Int("to", to).Int("tag", tag).Msg("dropped")
		return nil
	}
	if err = p.box.deliver(key{from: e.rank, tag: tag}, m); err != nil {
		return fmt.Errorf("transport: rank %d: send to %d tag %d: %w", e.rank, to, tag, err)
	}
	e.net.log.Trace().Int("from", e.rank).Int("to", to).Int("tag", tag).Stringer("kind", m.kind).Msg("sent")
	return nil
}

func (e *Endpoint) recv(ctx context.Context, want Kind, from, tag int) (message, error) {
	if _, err := e.peer(from); err != nil {
		return message{}, err
	}
	m, err := e.box.take(ctx, key{from: from, tag: tag})
	if err != nil {
		return message{}, fmt.Errorf("transport: rank %d: recv from %d tag %d: %w", e.rank, from, tag, err)
	}
	if m.kind != want {
		return message{}, fmt.Errorf("transport: rank %d: recv from %d tag %d: got %s, want %s: %w",
			e.rank, from, tag, m.kind, want, ErrTypeMismatch)
	}
	return m, nil
}

// SendInt implements Transport.
func (e *Endpoint) SendInt(ctx context.Context, v, to, tag int) error {
	return e.send(ctx, message{kind: KindInt, num: v}, to, tag)
}

// RecvInt implements Transport.
func (e *Endpoint) RecvInt(ctx context.Context, from, tag int) (int, error) {
	m, err := e.recv(ctx, KindInt, from, tag)
	if err != nil {
		return 0, err
	}
	return m.num, nil
}

// SendBytes implements Transport. The buffer is copied before delivery.
func (e *Endpoint) SendBytes(ctx context.Context, b []byte, to, tag int) error {
	return e.send(ctx, message{kind: KindBytes, data: clone(b)}, to, tag)
}

// RecvBytes implements Transport.
func (e *Endpoint) RecvBytes(ctx context.Context, from, tag int) ([]byte, error) {
	m, err := e.recv(ctx, KindBytes, from, tag)
	if err != nil {
		return nil, err
	}
	return m.data, nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
