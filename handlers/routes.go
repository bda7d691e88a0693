package handlers

import (
	"github.com/labstack/echo/v4"
)

// ManagerServerInterface is served on the manager port.
type ManagerServerInterface interface {
	// (GET /role)
	GetRole(ctx echo.Context) error
	// (GET /connect)
	ConnectWorker(ctx echo.Context) error
	// (GET /workers)
	ListWorkers(ctx echo.Context) error
	// (POST /send/{task})
	SendTask(ctx echo.Context, task string) error
}

// WorkerServerInterface is served on the worker port.
type WorkerServerInterface interface {
	// (GET /role)
	GetRole(ctx echo.Context) error
	// (POST /get)
	RunTask(ctx echo.Context) error
}

// RegisterManagerHandlers adds each manager route to e. Callers are identified by the TCP
// source address only, so forwarding headers cannot register someone else.
func RegisterManagerHandlers(e *echo.Echo, si ManagerServerInterface) {
	e.IPExtractor = echo.ExtractIPDirect()

	e.GET("/role", si.GetRole)
	e.GET("/connect", si.ConnectWorker)
	e.GET("/workers", si.ListWorkers)
	e.POST("/send/:task", func(ctx echo.Context) error {
		return si.SendTask(ctx, ctx.Param("task"))
	})
}

// RegisterWorkerHandlers adds each worker route to e.
func RegisterWorkerHandlers(e *echo.Echo, si WorkerServerInterface) {
	e.GET("/role", si.GetRole)
	e.POST("/get", si.RunTask)
}
