// Package process launches task instructions as child processes on the worker.
package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"myfleet/domain"
	"myfleet/service"
)

// waitDelay bounds how long Run waits for the child's I/O after it was killed.
const waitDelay = 2 * time.Second

// Runner implements interfaces.CommandRunner with os/exec. The instructions name the program
// directly and are never passed through a shell.
type Runner struct{}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run starts task.Instructions with task.Args and waits for it to exit. Output is discarded.
// The child is killed when ctx is done.
func (r *Runner) Run(ctx context.Context, task domain.TaskDescriptor) (int, error) {
	cmd := exec.CommandContext(ctx, task.Instructions, task.Args...)
	cmd.WaitDelay = waitDelay

	if err := cmd.Start(); err != nil {
		return 0, service.NewExecutionError(fmt.Sprintf("cannot start %q", task.Instructions), err)
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case ctx.Err() != nil:
		return 0, service.NewExecutionError(fmt.Sprintf("%q was stopped", task.Instructions), ctx.Err())
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), nil
	default:
		return 0, service.NewExecutionError(fmt.Sprintf("waiting for %q", task.Instructions), err)
	}
}
