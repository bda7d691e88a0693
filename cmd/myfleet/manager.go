package main

import (
	"context"
	"net/http"
	"net/netip"
	"time"

	"myfleet/adapters/nodehttp"
	"myfleet/domain"
	"myfleet/handlers"
	"myfleet/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

// missedHeartbeats is how many announce intervals a worker may skip before it is listed offline.
const missedHeartbeats = 3

func newManagerCmd(a *app) *cobra.Command {
	var skipCheck bool
	cmd := &cobra.Command{
		Use:   "manager",
		Short: "Run the manager node: answer role probes, register workers and dispatch tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return a.runManager(ctx, skipCheck)
		},
	}
	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "start without scanning the subnet for another manager")
	return cmd
}

func (a *app) runManager(ctx context.Context, skipCheck bool) error {
	logger := log.With(a.logger, "node", "manager")
	level.Info(logger).Log("msg", "Starting myfleet manager")

	if !skipCheck {
		if err := a.ensureNoOtherManager(ctx); err != nil {
			level.Error(logger).Log("msg", "Refusing to start", "err", err)
			return err
		}
	}

	clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
	store, closeStore, err := a.newWorkerStore(ctx, clock)
	if err != nil {
		level.Error(logger).Log("msg", "Failed to create worker store", "err", err)
		return err
	}
	defer closeStore()

	registry := service.NewWorkerRegistry(store, clock, a.config.WorkerTTLMs, missedHeartbeats*a.config.HeartbeatInterval, logger)
	sender := nodehttp.TaskSender(a.config.WorkerPort, &http.Client{})
	dispatcher := service.NewTaskDispatcher(registry, sender, a.config.DispatchConcurrency, logger)

	e, err := newEcho(ctx, logger)
	if err != nil {
		return err
	}
	handlers.RegisterManagerHandlers(e, handlers.NewManagerHTTPServer(registry, dispatcher, a.config.DispatchTimeout, logger))

	return serveUntilDone(ctx, e, a.config.ManagerPort, logger)
}

// ensureNoOtherManager scans the local subnet, ignoring this host, and fails if any other host
// already answers as manager.
func (a *app) ensureNoOtherManager(ctx context.Context) error {
	report, err := a.newDiscovery(true).Run(ctx)
	switch {
	case service.IsNoManagerError(err):
		return nil
	case err != nil:
		return err
	default:
		addrs := []netip.Addr{report.Local, report.Manager}
		domain.SortByAddress(addrs, func(a netip.Addr) netip.Addr { return a })
		return service.NewMultipleManagersError(addrs)
	}
}
