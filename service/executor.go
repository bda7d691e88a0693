package service

import (
	"context"
	"fmt"
	"time"

	"myfleet/domain"
	"myfleet/helpers"
	"myfleet/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// taskExecutor implements interfaces.TaskExecutor on the worker side.
type taskExecutor struct {
	runner interfaces.CommandRunner
	logger log.Logger
}

// NewTaskExecutor creates an executor that launches tasks through runner.
func NewTaskExecutor(runner interfaces.CommandRunner, logger log.Logger) interfaces.TaskExecutor {
	return &taskExecutor{
		runner: helpers.NilPanic(runner, "service.executor.go: runner is required"),
		logger: log.With(helpers.NilPanic(logger, "service.executor.go: logger is required"), "component", "task_executor"),
	}
}

// Execute runs task as a child process and returns its exit code. A non-zero exit code is a
// normal result. Failing to start the program is an execution_error; the process is killed
// when ctx ends (the manager gave up waiting).
func (e *taskExecutor) Execute(ctx context.Context, task domain.TaskDescriptor) (int, error) {
	if task.Instructions == "" {
		return 0, NewBadParameterError("instructions are required", nil)
	}

	started := time.Now()
	code, err := e.runner.Run(ctx, task)
	if err != nil {
		level.Warn(e.logger).Log("msg", "task failed to run", "instructions", task.Instructions, "err", err)
		return 0, NewExecutionError(fmt.Sprintf("cannot run %q", task.Instructions), err)
	}

	level.Info(e.logger).Log("msg", "task finished", "instructions", task.Instructions, "exit_code", code, "elapsed", time.Since(started))
	return code, nil
}
