package main

import (
	"context"
	"net/http"

	"myfleet/adapters/nodehttp"
	"myfleet/adapters/process"
	"myfleet/handlers"
	"myfleet/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWorkerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run a worker node: find the manager, announce to it and execute tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return a.runWorker(ctx)
		},
	}
}

// runWorker starts the task endpoint first so the worker can accept tasks as soon as the
// manager records it, then discovers the manager and keeps announcing to it.
func (a *app) runWorker(ctx context.Context) error {
	logger := log.With(a.logger, "node", "worker")
	level.Info(logger).Log("msg", "Starting myfleet worker")

	executor := service.NewTaskExecutor(process.NewRunner(), logger)
	e, err := newEcho(ctx, logger)
	if err != nil {
		return err
	}
	handlers.RegisterWorkerHandlers(e, handlers.NewWorkerHTTPServer(executor, logger))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serveUntilDone(ctx, e, a.config.WorkerPort, logger)
	})
	g.Go(func() error {
		report, err := a.newDiscovery(false).Run(ctx)
		if err != nil {
			level.Error(logger).Log("msg", "Manager discovery failed", "err", err)
			return err
		}
		level.Info(logger).Log("msg", "Manager found", "manager", report.Manager, "subnet", report.Subnet)

		connector := nodehttp.ManagerConnector(a.config.ManagerPort, &http.Client{})
		service.NewAnnouncer(connector, a.config.HeartbeatInterval, a.config.ProbeTimeout, logger).Run(ctx, report.Manager)
		return nil
	})
	return g.Wait()
}
