// Package worker runs the background credit-reset sweep. The lazy per-request
// reset keeps individual users correct; the sweep keeps the rest of the table
// fresh so reporting and admin views do not show day-old counters.
package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wisker-app/wisker/internal/domain/subscription"
	"github.com/wisker-app/wisker/internal/domain/user"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// CreditResetWorker zeroes stale daily credit counters on a schedule
type CreditResetWorker struct {
	users     user.Repository
	schedule  string
	scheduler *cron.Cron
	logger    *logger.Logger
}

// NewCreditResetWorker creates a credit reset worker. The default schedule
// runs hourly; users crossing their 24h window between runs are still handled
// by the lazy reset.
func NewCreditResetWorker(users user.Repository, schedule string, log *logger.Logger) *CreditResetWorker {
	if schedule == "" {
		schedule = "@hourly"
	}
	return &CreditResetWorker{
		users:    users,
		schedule: schedule,
		logger:   log,
	}
}

// Start schedules the sweep and runs it once immediately
func (w *CreditResetWorker) Start(ctx context.Context) error {
	w.scheduler = cron.New()
	if _, err := w.scheduler.AddFunc(w.schedule, func() {
		w.sweep(ctx)
	}); err != nil {
		return err
	}

	w.scheduler.Start()
	w.logger.WithFields(map[string]interface{}{
		"schedule": w.schedule,
	}).Info("Credit reset worker started")

	w.sweep(ctx)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (w *CreditResetWorker) Stop() {
	if w.scheduler == nil {
		return
	}
	<-w.scheduler.Stop().Done()
	w.logger.Info("Credit reset worker stopped")
}

func (w *CreditResetWorker) sweep(ctx context.Context) {
	now := time.Now()
	cutoff := now.Add(-subscription.CreditResetInterval)

	affected, err := w.users.ResetStaleCredits(ctx, cutoff, now)
	if err != nil {
		w.logger.ErrorWithErr(err, "Credit reset sweep failed")
		return
	}

	if affected > 0 {
		w.logger.WithFields(map[string]interface{}{
			"users": affected,
		}).Info("Reset stale daily credits")
	}
}
