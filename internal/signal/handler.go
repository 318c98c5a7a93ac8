// Package signal turns SIGINT and SIGTERM into context cancellation so an
// in-flight generation request, including any retry wait, stops promptly.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// Watcher observes termination signals for the lifetime of one run.
type Watcher struct {
	sigCh       chan os.Signal
	done        chan struct{}
	cancel      context.CancelFunc
	stopOnce    sync.Once
	interrupted atomic.Bool
}

// Watch derives a context from parent that is canceled when SIGINT or
// SIGTERM arrives. onInterrupt, if non-nil, runs with the received signal
// before the context is canceled. Call Stop when the run is over to release
// the signal registration.
//
//	ctx, w := signal.Watch(context.Background(), func(s os.Signal) {
//	    logging.Warn("Received " + s.String() + ", aborting...")
//	})
//	defer w.Stop()
func Watch(parent context.Context, onInterrupt func(os.Signal)) (context.Context, *Watcher) {
	ctx, cancel := context.WithCancel(parent)
	w := &Watcher{
		sigCh:  make(chan os.Signal, 1),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	signal.Notify(w.sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-w.sigCh:
			w.interrupted.Store(true)
			if onInterrupt != nil {
				onInterrupt(sig)
			}
			cancel()
		case <-ctx.Done():
		case <-w.done:
		}
	}()
	return ctx, w
}

// Interrupted reports whether a signal was received.
func (w *Watcher) Interrupted() bool {
	return w.interrupted.Load()
}

// Stop unregisters the signal handler and cancels the derived context.
// It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		signal.Stop(w.sigCh)
		close(w.done)
		w.cancel()
	})
}
