package interfaces

import (
	"context"
	"net/netip"
	"time"

	"myfleet/domain"
)

// SubnetScanner probes every host of a subnet and returns one result per host.
//
//go:generate moq -stub -out mock/subnet_scanner.go -pkg mock . SubnetScanner
type SubnetScanner interface {
	Scan(ctx context.Context, subnet domain.Subnet) ([]domain.RoleProbeResult, error)
}

// WorkerRegistry records workers by address on the manager.
//
//go:generate moq -stub -out mock/worker_registry.go -pkg mock . WorkerRegistry
type WorkerRegistry interface {
	// Register upserts the record for addr and returns it.
	Register(ctx context.Context, addr netip.Addr) (domain.WorkerRecord, error)
	// List returns a snapshot of all records sorted by address.
	List(ctx context.Context) ([]domain.WorkerRecord, error)
}

// TaskDispatcher fans a task out to every registered worker.
//
//go:generate moq -stub -out mock/task_dispatcher.go -pkg mock . TaskDispatcher
type TaskDispatcher interface {
	// Dispatch returns one outcome per worker in the registry snapshot, sorted by address.
	// It only fails when the snapshot itself cannot be read.
	Dispatch(ctx context.Context, task domain.TaskDescriptor, timeoutPerWorker time.Duration) ([]domain.TaskOutcome, error)
}

// TaskExecutor runs a task received on the worker endpoint.
//
//go:generate moq -stub -out mock/task_executor.go -pkg mock . TaskExecutor
type TaskExecutor interface {
	Execute(ctx context.Context, task domain.TaskDescriptor) (int, error)
}
