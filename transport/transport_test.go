// SPDX-License-Identifier: MIT

package transport_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairalign/transport"
)

func newNet(t *testing.T, size int) (*transport.Network, []*transport.Endpoint) {
	t.Helper()
	n, err := transport.NewNetwork(size)
	require.NoError(t, err)
	t.Cleanup(func() { _ = n.Close() })
	return n, n.Endpoints()
}

func TestNewNetwork_Errors(t *testing.T) {
	_, err := transport.NewNetwork(0)
	assert.ErrorIs(t, err, transport.ErrBadNetwork)

	n, err := transport.NewNetwork(2)
	require.NoError(t, err)
	_, err = n.Endpoint(2)
	assert.ErrorIs(t, err, transport.ErrUnknownPeer)
	ep, err := n.Endpoint(1)
	require.NoError(t, err)
	assert.Equal(t, 1, ep.Rank())
	assert.Equal(t, 2, ep.Size())
}

func TestBroadcast_OrderedFromRoot(t *testing.T) {
	_, eps := newNet(t, 4)
	ctx := context.Background()

	var wg sync.WaitGroup
	got := make([][]int, len(eps))
	gotBytes := make([][]byte, len(eps))
	for r, ep := range eps {
		wg.Add(1)
		go func(r int, ep *transport.Endpoint) {
			defer wg.Done()
			a, b := 0, 0
			var buf []byte
			if r == 0 {
				a, b, buf = 7, 11, []byte("ACGT")
			}
			assert.NoError(t, ep.BroadcastInt(ctx, &a, 0))
			assert.NoError(t, ep.BroadcastInt(ctx, &b, 0))
			assert.NoError(t, ep.BroadcastBytes(ctx, &buf, 0))
			got[r] = []int{a, b}
			gotBytes[r] = buf
		}(r, ep)
	}
	wg.Wait()

	for r := range eps {
		assert.Equal(t, []int{7, 11}, got[r], "rank %d", r)
		assert.Equal(t, []byte("ACGT"), gotBytes[r], "rank %d", r)
	}
}

func TestBroadcast_ReceiverGetsCopy(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx := context.Background()

	src := []byte("GATTACA")
	require.NoError(t, eps[0].BroadcastBytes(ctx, &src, 0))
	src[0] = 'X'

	var dst []byte
	require.NoError(t, eps[1].BroadcastBytes(ctx, &dst, 0))
	assert.Equal(t, []byte("GATTACA"), dst)
}

func TestBroadcast_KindMismatch(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx := context.Background()

	b := []byte("x")
	require.NoError(t, eps[0].BroadcastBytes(ctx, &b, 0))
	var v int
	assert.ErrorIs(t, eps[1].BroadcastInt(ctx, &v, 0), transport.ErrTypeMismatch)
}

func TestPointToPoint_MatchedByTag(t *testing.T) {
	_, eps := newNet(t, 3)
	ctx := context.Background()

	// Out of order on purpose: the receiver asks for tag 1 first.
	require.NoError(t, eps[2].SendInt(ctx, 20, 0, 2))
	require.NoError(t, eps[1].SendInt(ctx, 10, 0, 1))
	require.NoError(t, eps[2].SendBytes(ctx, []byte("d2"), 0, 5))

	v, err := eps[0].RecvInt(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	b, err := eps[0].RecvBytes(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("d2"), b)

	v, err = eps[0].RecvInt(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 20, v)
}

func TestPointToPoint_SameTagDifferentSource(t *testing.T) {
	_, eps := newNet(t, 3)
	ctx := context.Background()

	require.NoError(t, eps[1].SendInt(ctx, 1, 0, 9))
	require.NoError(t, eps[2].SendInt(ctx, 2, 0, 9))

	v, err := eps[0].RecvInt(ctx, 2, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	v, err = eps[0].RecvInt(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestRecv_BlocksUntilSend(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx := context.Background()

	done := make(chan int, 1)
	go func() {
		v, err := eps[0].RecvInt(ctx, 1, 3)
		assert.NoError(t, err)
		done <- v
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, eps[1].SendInt(ctx, 42, 0, 3))

	select {
	case v := <-done:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("receive did not complete")
	}
}

func TestRecv_KindMismatch(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx := context.Background()

	require.NoError(t, eps[1].SendBytes(ctx, []byte("abc"), 0, 0))
	_, err := eps[0].RecvInt(ctx, 1, 0)
	assert.ErrorIs(t, err, transport.ErrTypeMismatch)
}

func TestRecv_ContextDeadline(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := eps[0].RecvInt(ctx, 1, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned receive must not swallow a later message.
	require.NoError(t, eps[1].SendInt(context.Background(), 5, 0, 0))
	v, err := eps[0].RecvInt(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

// TestRecv_CancelRacingSend cancels receives while the matching send is in
// flight. A cancelled receive must leave the message for the next one.
func TestRecv_CancelRacingSend(t *testing.T) {
	_, eps := newNet(t, 2)
	const rounds = 500

	for i := 0; i < rounds; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		got := make(chan error, 1)
		go func() {
			_, err := eps[0].RecvInt(ctx, 1, i)
			got <- err
		}()
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, eps[1].SendInt(context.Background(), i, 0, i))
		}()
		go func() {
			defer wg.Done()
			cancel()
		}()
		wg.Wait()

		if err := <-got; err != nil {
			require.ErrorIs(t, err, context.Canceled)
			rctx, rcancel := context.WithTimeout(context.Background(), 2*time.Second)
			v, err := eps[0].RecvInt(rctx, 1, i)
			rcancel()
			require.NoError(t, err, "round %d: message lost after cancelled receive", i)
			assert.Equal(t, i, v)
		}
	}
}

func TestDropNext_SurfacesAsTimeout(t *testing.T) {
	n, eps := newNet(t, 2)
	n.DropNext(1, 0, 4)

	require.NoError(t, eps[1].SendInt(context.Background(), 1, 0, 4))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := eps[0].RecvInt(ctx, 1, 4)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Only one message is dropped.
	require.NoError(t, eps[1].SendInt(context.Background(), 2, 0, 4))
	v, err := eps[0].RecvInt(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestClose(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() {
		_, err := eps[0].RecvInt(ctx, 1, 0)
		errc <- err
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, eps[0].Close())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, transport.ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("receive did not observe close")
	}

	assert.ErrorIs(t, eps[1].SendInt(ctx, 1, 0, 0), transport.ErrClosed)
	assert.ErrorIs(t, eps[0].SendInt(ctx, 1, 1, 0), transport.ErrClosed)
	// Closing twice is harmless.
	assert.NoError(t, eps[0].Close())
}

func TestUnknownPeer(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx := context.Background()

	assert.ErrorIs(t, eps[0].SendInt(ctx, 1, 5, 0), transport.ErrUnknownPeer)
	_, err := eps[0].RecvBytes(ctx, -1, 0)
	assert.ErrorIs(t, err, transport.ErrUnknownPeer)
	v := 0
	assert.ErrorIs(t, eps[0].BroadcastInt(ctx, &v, 3), transport.ErrUnknownPeer)
}

func TestDuplicateReceive(t *testing.T) {
	_, eps := newNet(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = eps[0].RecvInt(ctx, 1, 0)
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	_, err := eps[0].RecvInt(ctx, 1, 0)
	assert.ErrorIs(t, err, transport.ErrDuplicateReceive)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "int", transport.KindInt.String())
	assert.Equal(t, "bytes", transport.KindBytes.String())
	assert.Equal(t, "unknown", transport.Kind(9).String())
}
