package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"myfleet/adapters/memory"
	"myfleet/adapters/myredis"
	"myfleet/adapters/netlocal"
	"myfleet/adapters/nodehttp"
	"myfleet/api"
	"myfleet/domain"
	"myfleet/handlers"
	"myfleet/interfaces"
	"myfleet/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

const (
	redisPrefix         = "worker"
	redisConnectTimeout = 5 * time.Second
	shutdownTimeout     = 10 * time.Second
)

func (a *app) newDiscovery(excludeSelf bool) *service.Discovery {
	prober := nodehttp.RoleProber(a.config.ManagerPort, nodehttp.NewProbeClient(), a.config.Roles)
	scanner := service.NewSubnetScanner(prober, service.ScannerConfig{
		ProbeTimeout: a.config.ProbeTimeout,
		Concurrency:  a.config.ScanConcurrency,
		MaxHosts:     a.config.MaxScanHosts,
	}, a.logger)
	return service.NewDiscovery(netlocal.NewLocator(netlocal.DefaultRouteProbe), scanner, excludeSelf, a.logger)
}

// newWorkerStore returns the redis store when REDIS_ADDR is set and the in-memory one otherwise.
// The returned func releases the redis client.
func (a *app) newWorkerStore(ctx context.Context, clock interfaces.TimeProvider) (interfaces.Cache[domain.WorkerRecord], func(), error) {
	if a.config.RedisAddr == "" {
		level.Info(a.logger).Log("msg", "Using in-memory worker store")
		return memory.NewCache[domain.WorkerRecord](clock), func() {}, nil
	}

	redisClient, err := myredis.NewRedisUniversalClient(a.config.RedisAddr, myredis.WithDialTimeout(redisConnectTimeout))
	if err != nil {
		return nil, nil, fmt.Errorf("create redis client: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	level.Info(a.logger).Log("msg", "Connected to Redis")

	store := myredis.NewCache[domain.WorkerRecord](redisClient, redisPrefix, myredis.MarshalWorker, myredis.UnmarshalWorker)
	return store, func() { _ = redisClient.Close() }, nil
}

// newEcho creates an echo instance with the myfleet error handler and OpenAPI request validation.
func newEcho(ctx context.Context, logger log.Logger) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := handlers.OpenAPIValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)
	e.Use(validator)
	return e, nil
}

// serveUntilDone runs e on port until ctx is cancelled, then shuts it down gracefully.
func serveUntilDone(ctx context.Context, e *echo.Echo, port int, logger log.Logger) error {
	addr := fmt.Sprintf(":%d", port)
	errCh := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	level.Info(logger).Log("msg", "Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
		return err
	}
	level.Info(logger).Log("msg", "Server stopped")
	return nil
}
