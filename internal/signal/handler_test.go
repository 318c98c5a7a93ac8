package signal

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled within timeout")
	}
}

func TestWatch_SIGINTCancelsContext(t *testing.T) {
	var (
		mu  sync.Mutex
		got os.Signal
	)
	ctx, w := Watch(context.Background(), func(s os.Signal) {
		mu.Lock()
		got = s
		mu.Unlock()
	})
	defer w.Stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	waitDone(t, ctx)

	assert.True(t, w.Interrupted())
	mu.Lock()
	assert.Equal(t, syscall.SIGINT, got)
	mu.Unlock()
}

func TestWatch_SIGTERMCancelsContext(t *testing.T) {
	ctx, w := Watch(context.Background(), nil)
	defer w.Stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	waitDone(t, ctx)

	assert.True(t, w.Interrupted())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWatch_StopCancelsWithoutInterrupt(t *testing.T) {
	called := false
	ctx, w := Watch(context.Background(), func(os.Signal) { called = true })

	w.Stop()
	waitDone(t, ctx)

	assert.False(t, w.Interrupted())
	assert.False(t, called)
}

func TestWatch_StopIsIdempotent(t *testing.T) {
	_, w := Watch(context.Background(), nil)
	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop()
	})
}

func TestWatch_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, w := Watch(parent, nil)
	defer w.Stop()

	cancel()
	waitDone(t, ctx)
	assert.False(t, w.Interrupted())
}
