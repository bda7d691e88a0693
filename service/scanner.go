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
	"golang.org/x/sync/errgroup"
)

// ScannerConfig tunes a subnet scan.
type ScannerConfig struct {
	// ProbeTimeout bounds each individual probe.
	ProbeTimeout time.Duration
	// Concurrency caps in-flight probes; 0 means one goroutine per host.
	Concurrency int
	// MaxHosts rejects subnets with more usable hosts than this; 0 disables the check.
	MaxHosts uint64
}

// subnetScanner implements interfaces.SubnetScanner on top of a RoleProber.
type subnetScanner struct {
	prober interfaces.RoleProber
	cfg    ScannerConfig
	logger log.Logger
}

// NewSubnetScanner creates a scanner. Panics on nil prober or logger, a non-positive probe
// timeout or a negative concurrency.
func NewSubnetScanner(prober interfaces.RoleProber, cfg ScannerConfig, logger log.Logger) interfaces.SubnetScanner {
	helpers.DurationPanic(cfg.ProbeTimeout, "service.scanner.go: probe timeout must be positive")
	if cfg.Concurrency < 0 {
		panic("service.scanner.go: concurrency must not be negative")
	}
	return &subnetScanner{
		prober: helpers.NilPanic(prober, "service.scanner.go: prober is required"),
		cfg:    cfg,
		logger: log.With(helpers.NilPanic(logger, "service.scanner.go: logger is required"), "component", "subnet_scanner"),
	}
}

// Scan probes every usable host of subnet and returns exactly one result
// per probed host, in ascending address order. Each probe carries its own timeout, so the
// wall time is bounded by ceil(hosts/concurrency) probe timeouts rather than their sum.
//
// Returns bad_parameter when the subnet exceeds MaxHosts. Cancelling ctx stops launching new
// probes; hosts never probed are reported with a nil role.
func (s *subnetScanner) Scan(ctx context.Context, subnet domain.Subnet) ([]domain.RoleProbeResult, error) {
	if s.cfg.MaxHosts > 0 && subnet.HostCount() > s.cfg.MaxHosts {
		return nil, NewBadParameterError(
			fmt.Sprintf("subnet %s has %d hosts, limit is %d", subnet, subnet.HostCount(), s.cfg.MaxHosts), nil)
	}

	hosts := subnet.Hosts()

	level.Debug(s.logger).Log("msg", "scan started", "subnet", subnet, "hosts", len(hosts), "concurrency", s.cfg.Concurrency)
	started := time.Now()

	// Each goroutine owns one slot, so no locking is needed.
	results := make([]domain.RoleProbeResult, len(hosts))
	for i, h := range hosts {
		results[i] = domain.RoleProbeResult{Address: h}
	}

	var g errgroup.Group
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}
	for i, h := range hosts {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = s.prober.Probe(ctx, h, s.cfg.ProbeTimeout)
			results[i].Address = h
			if results[i].Role != nil {
				level.Debug(s.logger).Log("msg", "host answered", "addr", h, "role", *results[i].Role)
			}
			return nil
		})
	}
	_ = g.Wait()

	found := 0
	for _, r := range results {
		if r.Role != nil {
			found++
		}
	}
	level.Info(s.logger).Log("msg", "scan finished", "subnet", subnet, "hosts", len(hosts), "answered", found, "elapsed", time.Since(started))

	return results, nil
}
