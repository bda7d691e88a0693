package service

import (
	"context"
	"net/netip"
	"time"

	"myfleet/helpers"
	"myfleet/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Announcer keeps a worker registered with its manager by calling Connect right away and then
// on every tick. The manager refreshes the worker's status and uptime on each call.
type Announcer struct {
	connector interfaces.ManagerConnector
	interval  time.Duration
	timeout   time.Duration
	logger    log.Logger
}

// NewAnnouncer creates an Announcer. Each Connect call is bounded by timeout.
// Panics on nil dependencies or non-positive durations.
func NewAnnouncer(connector interfaces.ManagerConnector, interval, timeout time.Duration, logger log.Logger) *Announcer {
	return &Announcer{
		connector: helpers.NilPanic(connector, "service.announcer.go: connector is required"),
		interval:  helpers.DurationPanic(interval, "service.announcer.go: interval must be positive"),
		timeout:   helpers.DurationPanic(timeout, "service.announcer.go: timeout must be positive"),
		logger:    log.With(helpers.NilPanic(logger, "service.announcer.go: logger is required"), "component", "announcer"),
	}
}

// Run announces to manager until ctx is done. Failed announcements are logged and retried on
// the next tick; there is no re-discovery if the manager goes away.
func (a *Announcer) Run(ctx context.Context, manager netip.Addr) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	fails := 0
	for {
		if err := a.announce(ctx, manager); err != nil {
			fails++
			level.Warn(a.logger).Log("msg", "announce failed", "manager", manager, "consecutive_fails", fails, "err", err)
		} else {
			if fails > 0 {
				level.Info(a.logger).Log("msg", "announce recovered", "manager", manager, "after_fails", fails)
			}
			fails = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *Announcer) announce(ctx context.Context, manager netip.Addr) error {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.connector.Connect(callCtx, manager)
}
