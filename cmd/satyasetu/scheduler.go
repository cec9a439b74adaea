// cmd/satyasetu/scheduler.go
package main

import (
	"context"

	"github.com/robfig/cron/v3"
)

// StartScheduler wires the feed monitor onto the configured cron schedule
// and kicks off an immediate first run. Returns the cron so the caller can
// stop it on shutdown.
func StartScheduler(ctx context.Context, monitor *Monitor) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cfg.MonitorCron, func() {
		monitor.Run(ctx)
	})
	if err != nil {
		return nil, NewConfigError(ErrConfigValidation, "invalid monitor schedule", err)
	}

	go monitor.Run(ctx)
	c.Start()
	Logger().Info("feed monitor scheduled: %s", cfg.MonitorCron)
	return c, nil
}
