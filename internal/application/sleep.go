package application

import (
	"context"
	"time"

	"github.com/eugenenazirov/senzing-package/internal/logging"
)

// SleepLogInterval is how often an infinite sleep reports that it is alive.
const SleepLogInterval = 10 * time.Minute

// sleep blocks for sleep_time_in_seconds, or forever when it is zero.
// Only context cancellation ends an infinite sleep.
func (a *App) sleep(ctx context.Context) error {
	if seconds := a.cfg.SleepTimeInSeconds; seconds > 0 {
		a.msgs.Info(logging.MsgSleeping, seconds)

		timer := time.NewTimer(time.Duration(seconds) * a.sleepUnit)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	a.msgs.Info(logging.MsgSleepingForever)
	start := a.now()
	ticker := time.NewTicker(a.sleepLogInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			a.msgs.Info(logging.MsgStillSleeping, a.now().Sub(start).Round(time.Second))
		}
	}
}
