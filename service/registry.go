package service

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"myfleet/domain"
	"myfleet/helpers"
	"myfleet/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// workerRegistry implements interfaces.WorkerRegistry over a Cache keyed by worker address.
// mu serialises read-modify-write upserts so two announcements from the same worker can
// never produce a torn or duplicated record.
type workerRegistry struct {
	store        interfaces.Cache[domain.WorkerRecord]
	clock        interfaces.TimeProvider
	ttlMs        int
	offlineAfter time.Duration
	logger       log.Logger

	mu sync.Mutex
}

// NewWorkerRegistry creates a registry over store. ttlMs <= 0 keeps records forever.
// A worker not seen for longer than offlineAfter is listed as offline; offlineAfter <= 0
// lists every record as stored. Panics on nil store, clock or logger.
func NewWorkerRegistry(store interfaces.Cache[domain.WorkerRecord], clock interfaces.TimeProvider, ttlMs int, offlineAfter time.Duration, logger log.Logger) interfaces.WorkerRegistry {
	return &workerRegistry{
		store:        helpers.NilPanic(store, "service.registry.go: store is required"),
		clock:        helpers.NilPanic(clock, "service.registry.go: clock is required"),
		ttlMs:        ttlMs,
		offlineAfter: offlineAfter,
		logger:       log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "worker_registry"),
	}
}

// Register inserts a new online record with zero uptime for an unknown address, or marks an
// existing one online and refreshes its uptime. Exactly one record per address exists after
// any number of calls.
func (r *workerRegistry) Register(ctx context.Context, addr netip.Addr) (domain.WorkerRecord, error) {
	if !addr.Is4() {
		return domain.WorkerRecord{}, NewBadParameterError(fmt.Sprintf("worker address %s is not IPv4", addr), nil)
	}
	key := addr.String()

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.clock.Now()

	record, err := r.store.ReadValue(ctx, key)
	switch {
	case err == nil:
		record.Status = domain.StatusOnline
		record.LastSeen = now
		record.Uptime = now.Sub(record.FirstSeen)
	case IsEntityNotFoundError(err):
		record = domain.WorkerRecord{
			Address:   addr,
			Status:    domain.StatusOnline,
			FirstSeen: now,
			LastSeen:  now,
		}
		level.Info(r.logger).Log("msg", "worker registered", "addr", addr)
	default:
		return domain.WorkerRecord{}, fmt.Errorf("register worker %s: read record: %w", addr, err)
	}

	if err := r.store.WriteValue(ctx, key, record, r.ttlMs); err != nil {
		return domain.WorkerRecord{}, fmt.Errorf("register worker %s: write record: %w", addr, err)
	}
	level.Debug(r.logger).Log("msg", "worker record updated", "addr", addr, "uptime", record.Uptime)
	return record, nil
}

// List returns a read-only snapshot sorted by address. An empty store is an empty list.
// Records whose LastSeen is older than offlineAfter come back with StatusOffline.
func (r *workerRegistry) List(ctx context.Context) ([]domain.WorkerRecord, error) {
	records, err := r.store.ListAllValues(ctx)
	if err != nil {
		if IsEntityNotFoundError(err) {
			return []domain.WorkerRecord{}, nil
		}
		return nil, fmt.Errorf("list workers: %w", err)
	}
	if r.offlineAfter > 0 {
		now := r.clock.Now()
		for i := range records {
			if now.Sub(records[i].LastSeen) > r.offlineAfter {
				records[i].Status = domain.StatusOffline
			}
		}
	}
	domain.SortByAddress(records, func(w domain.WorkerRecord) netip.Addr { return w.Address })
	return records, nil
}
