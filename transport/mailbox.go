// SPDX-License-Identifier: MIT

package transport

import (
	"context"
	"fmt"
	"sync"
)

// key addresses a message: broadcasts use their sequence number as tag.
type key struct {
	from  int
	tag   int
	bcast bool
}

type message struct {
	kind Kind
	num  int
	data []byte
}

// mailbox queues undelivered messages and parks at most one receiver per key.
type mailbox struct {
	mu      sync.Mutex
	queued  map[key][]message
	waiters map[key]chan message
	closed  chan struct{}
	once    sync.Once
}

func newMailbox() *mailbox {
	return &mailbox{
		queued:  make(map[key][]message),
		waiters: make(map[key]chan message),
		closed:  make(chan struct{}),
	}
}

func (mb *mailbox) isClosed() bool {
	select {
	case <-mb.closed:
		return true
	default:
		return false
	}
}

func (mb *mailbox) deliver(k key, m message) error {
	mb.mu.Lock()
	if mb.isClosed() {
		mb.mu.Unlock()
		return ErrClosed
	}
	if w, ok := mb.waiters[k]; ok {
		delete(mb.waiters, k)
		// Send under the lock so abandon always finds the message in w.
		w <- m // buffered, never blocks
		mb.mu.Unlock()
		return nil
	}
	mb.queued[k] = append(mb.queued[k], m)
	mb.mu.Unlock()
	return nil
}

func (mb *mailbox) take(ctx context.Context, k key) (message, error) {
	mb.mu.Lock()
	if mb.isClosed() {
		mb.mu.Unlock()
		return message{}, ErrClosed
	}
	if q := mb.queued[k]; len(q) > 0 {
		m := q[0]
		if len(q) == 1 {
			delete(mb.queued, k)
		} else {
			mb.queued[k] = q[1:]
		}
		mb.mu.Unlock()
		return m, nil
	}
	if _, busy := mb.waiters[k]; busy {
		mb.mu.Unlock()
		return message{}, fmt.Errorf("source %d tag %d: %w", k.from, k.tag, ErrDuplicateReceive)
	}
	w := make(chan message, 1)
	mb.waiters[k] = w
	mb.mu.Unlock()

	select {
	case m := <-w:
		return m, nil
	case <-ctx.Done():
		mb.abandon(k, w)
		return message{}, ctx.Err()
	case <-mb.closed:
		return message{}, ErrClosed
	}
}

// abandon unregisters a waiter; a message that raced into w is requeued.
func (mb *mailbox) abandon(k key, w chan message) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.waiters[k] == w {
		delete(mb.waiters, k)
		return
	}
	select {
	case m := <-w:
		mb.queued[k] = append([]message{m}, mb.queued[k]...)
	default:
	}
}

func (mb *mailbox) close() {
	mb.once.Do(func() {
		mb.mu.Lock()
		close(mb.closed)
		mb.mu.Unlock()
	})
}
