package service

import (
	"context"
	"fmt"
	"net/netip"

	"myfleet/domain"
	"myfleet/helpers"
	"myfleet/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DiscoveryReport is everything one discovery pass learned.
type DiscoveryReport struct {
	Local   netip.Addr
	Subnet  domain.Subnet
	Results []domain.RoleProbeResult
	Manager netip.Addr
}

// Discovery chains the network locator, the subnet scanner and ResolveManager.
type Discovery struct {
	locator     interfaces.NetworkLocator
	scanner     interfaces.SubnetScanner
	excludeSelf bool
	logger      log.Logger
}

// NewDiscovery creates a Discovery. With excludeSelf the local address is dropped from the
// scan results, so a manager host looking for a second manager does not find itself.
func NewDiscovery(locator interfaces.NetworkLocator, scanner interfaces.SubnetScanner, excludeSelf bool, logger log.Logger) *Discovery {
	return &Discovery{
		locator:     helpers.NilPanic(locator, "service.discovery.go: locator is required"),
		scanner:     helpers.NilPanic(scanner, "service.discovery.go: scanner is required"),
		excludeSelf: excludeSelf,
		logger:      log.With(helpers.NilPanic(logger, "service.discovery.go: logger is required"), "component", "discovery"),
	}
}

// Run locates the local subnet, scans it and resolves the manager. The report is returned
// together with resolver errors so callers can show what the scan saw; it is nil when the
// locator or the scan itself failed.
func (d *Discovery) Run(ctx context.Context) (*DiscoveryReport, error) {
	local, bits, err := d.locator.Locate()
	if err != nil {
		return nil, err
	}
	subnet, err := domain.NewSubnet(local, bits)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("local address %s/%d is not a usable subnet", local, bits), err)
	}
	level.Info(d.logger).Log("msg", "local network located", "addr", local, "subnet", subnet)

	results, err := d.scanner.Scan(ctx, subnet)
	if err != nil {
		return nil, err
	}
	if d.excludeSelf {
		kept := results[:0]
		for _, r := range results {
			if r.Address != local {
				kept = append(kept, r)
			}
		}
		results = kept
	}

	report := &DiscoveryReport{Local: local, Subnet: subnet, Results: results}
	manager, err := ResolveManager(results)
	if err != nil {
		return report, err
	}
	report.Manager = manager
	level.Info(d.logger).Log("msg", "manager resolved", "manager", manager)
	return report, nil
}
