package interfaces

import (
	"context"
	"time"

	"myfleet/domain"
)

// CommandRunner starts an external program and waits for it.
//
// Implemented by adapters/process. Called by service.TaskExecutor.
//
//go:generate moq -stub -out mock/command_runner.go -pkg mock . CommandRunner
type CommandRunner interface {
	// Run returns the program's exit code. A program that starts and exits non-zero is not
	// an error. Failure to start (not found, permission denied) is an execution_error.
	Run(ctx context.Context, task domain.TaskDescriptor) (int, error)
}

// TimeProvider supplies the current time for worker uptime bookkeeping.
// Injected so tests can use a fixed clock instead of time.Now().
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	Now() time.Time
}
