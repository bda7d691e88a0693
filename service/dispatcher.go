package service

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"myfleet/domain"
	"myfleet/helpers"
	"myfleet/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// taskDispatcher implements interfaces.TaskDispatcher.
type taskDispatcher struct {
	registry    interfaces.WorkerRegistry
	sender      interfaces.TaskSender
	concurrency int
	logger      log.Logger
}

// NewTaskDispatcher creates a dispatcher sending through sender to the workers in registry.
// concurrency caps in-flight sends; 0 means all workers at once. Panics on nil dependencies
// or negative concurrency.
func NewTaskDispatcher(registry interfaces.WorkerRegistry, sender interfaces.TaskSender, concurrency int, logger log.Logger) interfaces.TaskDispatcher {
	if concurrency < 0 {
		panic("service.dispatcher.go: concurrency must not be negative")
	}
	return &taskDispatcher{
		registry:    helpers.NilPanic(registry, "service.dispatcher.go: registry is required"),
		sender:      helpers.NilPanic(sender, "service.dispatcher.go: sender is required"),
		concurrency: concurrency,
		logger:      log.With(helpers.NilPanic(logger, "service.dispatcher.go: logger is required"), "component", "task_dispatcher"),
	}
}

// Dispatch sends task to every worker in a registry snapshot taken at call time. Each send
// gets its own timeoutPerWorker deadline; a worker that times out, refuses, or reports an
// execution error yields an outcome with a nil Result and does not delay the others.
// Nothing is retried.
func (d *taskDispatcher) Dispatch(ctx context.Context, task domain.TaskDescriptor, timeoutPerWorker time.Duration) ([]domain.TaskOutcome, error) {
	if task.Instructions == "" {
		return nil, NewBadParameterError("task instructions are required", nil)
	}
	if timeoutPerWorker <= 0 {
		return nil, NewBadParameterError("timeout per worker must be positive", nil)
	}

	workers, err := d.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dispatch: snapshot workers: %w", err)
	}

	outcomes := make([]domain.TaskOutcome, len(workers))
	var g errgroup.Group
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}
	for i, w := range workers {
		g.Go(func() error {
			outcomes[i] = d.sendOne(ctx, w, task, timeoutPerWorker)
			return nil
		})
	}
	_ = g.Wait()

	domain.SortByAddress(outcomes, func(o domain.TaskOutcome) netip.Addr { return o.Worker })

	failed := 0
	for _, o := range outcomes {
		if o.Result == nil {
			failed++
		}
	}
	level.Info(d.logger).Log("msg", "dispatch finished", "instructions", task.Instructions, "workers", len(outcomes), "failed", failed)
	return outcomes, nil
}

func (d *taskDispatcher) sendOne(ctx context.Context, w domain.WorkerRecord, task domain.TaskDescriptor, timeout time.Duration) domain.TaskOutcome {
	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	code, err := d.sender.SendTask(sendCtx, w.Address, task)
	if err != nil {
		level.Debug(d.logger).Log("msg", "worker send failed", "addr", w.Address, "err", err)
		return domain.TaskOutcome{Worker: w.Address, Err: err.Error()}
	}
	return domain.TaskOutcome{Worker: w.Address, Result: Ptr(code)}
}
