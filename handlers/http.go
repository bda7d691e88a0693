// Package handlers contains the http handlers of manager and worker nodes.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"myfleet/domain"
	"myfleet/helpers"
	"myfleet/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ManagerHTTPServer implements ManagerServerInterface.
type ManagerHTTPServer struct {
	registry        interfaces.WorkerRegistry
	dispatcher      interfaces.TaskDispatcher
	dispatchTimeout time.Duration
	logger          log.Logger
}

// NewManagerHTTPServer creates a new ManagerHTTPServer. dispatchTimeout is the per-worker
// deadline used when a send request sets none.
func NewManagerHTTPServer(registry interfaces.WorkerRegistry, dispatcher interfaces.TaskDispatcher, dispatchTimeout time.Duration, logger log.Logger) *ManagerHTTPServer {
	logger = log.WithPrefix(logger, "component", "ManagerHTTPServer")
	return &ManagerHTTPServer{
		registry:        helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		dispatcher:      helpers.NilPanic(dispatcher, "handlers.http.go: dispatcher is required"),
		dispatchTimeout: helpers.DurationPanic(dispatchTimeout, "handlers.http.go: dispatch timeout must be positive"),
		logger:          logger,
	}
}

// GetRole (GET /role) answers with the manager tag as plain text.
func (h *ManagerHTTPServer) GetRole(ectx echo.Context) error {
	return ectx.String(http.StatusOK, string(domain.RoleManager))
}

// ConnectWorker (GET /connect) registers the caller's source address as an online worker and
// returns its record.
func (h *ManagerHTTPServer) ConnectWorker(ectx echo.Context) error {
	addr, err := fromRemoteIP(ectx.RealIP())
	if err != nil {
		return err
	}

	record, err := h.registry.Register(ectx.Request().Context(), addr)
	if err != nil {
		return fmt.Errorf("connectWorker failed to register %s, err: %w", addr, err)
	}

	return ectx.JSON(http.StatusOK, toWorkerInfo(record))
}

// ListWorkers (GET /workers) returns every registered worker sorted by address.
func (h *ManagerHTTPServer) ListWorkers(ectx echo.Context) error {
	workers, err := h.registry.List(ectx.Request().Context())
	if err != nil {
		return fmt.Errorf("listWorkers failed to list workers, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, toWorkersResponse(workers))
}

// SendTask (POST /send/{task}) dispatches task to every registered worker and returns one
// outcome per worker under a fresh dispatch id.
func (h *ManagerHTTPServer) SendTask(ectx echo.Context, task string) error {
	var req SendRequest
	if err := ectx.Bind(&req); err != nil {
		return err
	}

	descriptor, timeout, err := fromSendRequest(task, req, h.dispatchTimeout)
	if err != nil {
		return err
	}

	dispatchID := uuid.NewString()
	level.Info(h.logger).Log("msg", "dispatching task", "dispatch_id", dispatchID, "instructions", descriptor.Instructions, "timeout", timeout)

	outcomes, err := h.dispatcher.Dispatch(ectx.Request().Context(), descriptor, timeout)
	if err != nil {
		return fmt.Errorf("sendTask failed to dispatch %s, err: %w", dispatchID, err)
	}

	return ectx.JSON(http.StatusOK, toSendResponse(dispatchID, outcomes))
}

// WorkerHTTPServer implements WorkerServerInterface.
type WorkerHTTPServer struct {
	executor interfaces.TaskExecutor
	logger   log.Logger
}

// NewWorkerHTTPServer creates a new WorkerHTTPServer.
func NewWorkerHTTPServer(executor interfaces.TaskExecutor, logger log.Logger) *WorkerHTTPServer {
	logger = log.WithPrefix(logger, "component", "WorkerHTTPServer")
	return &WorkerHTTPServer{
		executor: helpers.NilPanic(executor, "handlers.http.go: executor is required"),
		logger:   logger,
	}
}

// GetRole (GET /role) answers with the worker tag as plain text.
func (h *WorkerHTTPServer) GetRole(ectx echo.Context) error {
	return ectx.String(http.StatusOK, string(domain.RoleWorker))
}

// RunTask (POST /get) runs the task and returns its exit code. The process is killed if the
// manager disconnects first.
func (h *WorkerHTTPServer) RunTask(ectx echo.Context) error {
	var req TaskRequest
	if err := ectx.Bind(&req); err != nil {
		return err
	}

	task, err := fromTaskRequest(req)
	if err != nil {
		return err
	}

	code, err := h.executor.Execute(ectx.Request().Context(), task)
	if err != nil {
		return fmt.Errorf("runTask failed, err: %w", err)
	}

	return ectx.JSON(http.StatusOK, TaskResult{Result: code})
}
