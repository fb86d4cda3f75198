//go:build windows

package cmd

import (
	"context"
	"os"
	"os/signal"
)

// shutdownContext returns a context that is canceled on interrupt.
// syscall.SIGTERM is not delivered on Windows.
func shutdownContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
