package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobsync/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain cleanup function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error { return f(ctx) }

// Graceful blocks until one of signals arrives, then stops every Stoppable in
// order under a shared timeout.
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, stoppables ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	Stop(timeout, log, stoppables...)
}

// Stop runs the shutdown sequence without waiting for a signal
func Stop(timeout time.Duration, log *logging.Logger, stoppables ...Stoppable) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := false
	for _, s := range stoppables {
		if err := s.Shutdown(ctx); err != nil {
			failed = true
			log.Warn("graceful shutdown completed with error", "err", err)
		}
	}

	if !failed {
		log.Info("graceful shutdown completed successfully")
	}
}
