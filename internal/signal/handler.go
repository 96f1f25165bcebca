// Package signal turns SIGINT and SIGTERM into context cancellation so a
// running session stops after the current workspace is disposed.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler registers SIGINT and SIGTERM handlers.
// When a signal is received, it calls onInterrupt (if non-nil), then cancels
// the context.
//
// The listening goroutine exits on the first signal or when ctx is done.
// The returned stop function unregisters the handlers and waits for that
// goroutine.
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	stop := signal.SetupSignalHandler(ctx, cancel, func() {
//	    logging.Warn("interrupt received, finishing current repository")
//	})
//	defer stop()
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	quit := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
		case <-quit:
		}
	}()

	return func() {
		signal.Stop(sigCh)
		select {
		case <-quit:
		default:
			close(quit)
		}
		<-done
	}
}
