// SPDX-License-Identifier: MIT

// Package transport moves scalars and byte buffers between the ranks of a
// run: one-to-all broadcast from a root, and tagged point-to-point messages.
//
// Semantics:
//   - Broadcasts are matched by order: the n-th broadcast a rank takes part
//     in receives the root's n-th broadcast.
//   - Point-to-point messages are matched by (source, tag), so messages for
//     different tags may arrive in any order without being misattributed.
//   - Sends are eager (they do not wait for the matching receive).
//   - Every blocking call honours ctx; a lost message surfaces as the ctx
//     error on the receiver, never as a silent skip.
//
// The rank is an explicit value of each endpoint; there is no global
// communicator state.
package transport

import (
	"context"
	"errors"
)

var (
	// ErrClosed is returned by operations on a closed endpoint.
	ErrClosed = errors.New("transport: endpoint closed")

	// ErrUnknownPeer indicates a rank outside [0, Size()).
	ErrUnknownPeer = errors.New("transport: unknown peer")

	// ErrTypeMismatch indicates a receive whose kind differs from the send.
	ErrTypeMismatch = errors.New("transport: message kind mismatch")

	// ErrDuplicateReceive indicates two concurrent receives on one (source, tag).
	ErrDuplicateReceive = errors.New("transport: concurrent receive on the same source and tag")

	// ErrBadNetwork indicates a network size below one.
	ErrBadNetwork = errors.New("transport: network size must be >= 1")
)

// Kind is the payload type of a message.
type Kind int

const (
	// KindInt carries one integer.
	KindInt Kind = iota
	// KindBytes carries a byte buffer.
	KindBytes
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Transport is one rank's view of the communicator.
type Transport interface {
	// Rank returns this endpoint's rank.
	Rank() int
	// Size returns the number of ranks.
	Size() int

	// BroadcastInt sends *v from root to every rank; on non-root ranks *v is
	// overwritten with the root's value.
	BroadcastInt(ctx context.Context, v *int, root int) error
	// BroadcastBytes is BroadcastInt for byte buffers. Receivers get a copy.
	BroadcastBytes(ctx context.Context, b *[]byte, root int) error

	SendInt(ctx context.Context, v, to, tag int) error
	RecvInt(ctx context.Context, from, tag int) (int, error)
	SendBytes(ctx context.Context, b []byte, to, tag int) error
	RecvBytes(ctx context.Context, from, tag int) ([]byte, error)

	Close() error
}
