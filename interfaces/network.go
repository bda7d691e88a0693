package interfaces

import (
	"context"
	"net/netip"
	"time"

	"myfleet/domain"
)

// NetworkLocator finds this host's private IPv4 address and the prefix length of the adapter
// that carries it.
//
// Implemented by adapters/netlocal. Called once at startup by the discover and worker commands.
//
//go:generate moq -stub -out mock/network_locator.go -pkg mock . NetworkLocator
type NetworkLocator interface {
	// Locate returns (address, prefixLength, nil), or a no_route error when there is no
	// outbound route or no adapter owns the address, or a validation_error when the address
	// is not in a private range.
	Locate() (netip.Addr, int, error)
}

// RoleProber asks a single address which role it plays.
//
// Implemented by adapters/nodehttp (GET /role). Called by the subnet scanner, once per host.
//
//go:generate moq -stub -out mock/role_prober.go -pkg mock . RoleProber
type RoleProber interface {
	// Probe never fails: refused connections, timeouts and unrecognised answers all come back
	// as a result with a nil Role. The call returns within timeout (plus scheduling slack).
	Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) domain.RoleProbeResult
}

// TaskSender delivers one task to one worker and returns the worker's exit code.
//
// Implemented by adapters/nodehttp (POST /get). Called by the task dispatcher per worker.
//
//go:generate moq -stub -out mock/task_sender.go -pkg mock . TaskSender
type TaskSender interface {
	// SendTask returns the exit code reported by the worker, or an error on timeout,
	// transport failure, a non-200 answer, or an execution_error reported by the worker.
	// The deadline comes from ctx.
	SendTask(ctx context.Context, worker netip.Addr, task domain.TaskDescriptor) (int, error)
}

// ManagerConnector announces this worker to a manager.
//
// Implemented by adapters/nodehttp (GET /connect). Called by service.Announcer.
//
//go:generate moq -stub -out mock/manager_connector.go -pkg mock . ManagerConnector
type ManagerConnector interface {
	// Connect returns nil once the manager has recorded this worker.
	Connect(ctx context.Context, manager netip.Addr) error
}
