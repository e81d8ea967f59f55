package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/joblynk/internal/services"
)

// JobExpiryWorker periodically moves active jobs past their expiresAt to
// expired.
type JobExpiryWorker struct {
	Jobs     services.JobService
	Interval time.Duration
	Logger   *logrus.Logger

	now func() time.Time
}

// Start validates the worker and runs the loop in a goroutine until ctx is
// done. A zero interval disables the worker.
func (w *JobExpiryWorker) Start(ctx context.Context) error {
	if w.Jobs == nil {
		return errors.New("JobExpiryWorker missing dependency: Jobs must be set")
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}
	if w.Interval <= 0 {
		w.Logger.Info("job expiry worker disabled")
		return nil
	}
	if w.now == nil {
		w.now = func() time.Time { return time.Now().UTC() }
	}

	go w.run(ctx)
	return nil
}

func (w *JobExpiryWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	w.Logger.WithField("interval", w.Interval.String()).Info("job expiry worker started")
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("job expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *JobExpiryWorker) sweep(ctx context.Context) int {
	start := time.Now()
	n, err := w.Jobs.ExpireDue(ctx, w.now())
	if err != nil {
		w.Logger.WithError(err).Error("job expiry sweep failed")
		return 0
	}
	if n > 0 {
		w.Logger.WithFields(logrus.Fields{
			"expired":    n,
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("jobs expired")
	}
	return n
}
