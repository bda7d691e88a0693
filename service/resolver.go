package service

import (
	"net/netip"

	"myfleet/domain"
)

// ResolveManager returns the single address whose probe answered Manager.
//
// Returns no_manager when none did and multiple_managers, naming every conflicting address
// in ascending order, when more than one did. It never picks a winner. Results for the same
// address appearing twice count once.
func ResolveManager(results []domain.RoleProbeResult) (netip.Addr, error) {
	seen := make(map[netip.Addr]struct{})
	var managers []netip.Addr
	for _, r := range results {
		if !r.Is(domain.RoleManager) {
			continue
		}
		if _, dup := seen[r.Address]; dup {
			continue
		}
		seen[r.Address] = struct{}{}
		managers = append(managers, r.Address)
	}

	switch len(managers) {
	case 0:
		return netip.Addr{}, NewNoManagerError(len(results))
	case 1:
		return managers[0], nil
	default:
		domain.SortByAddress(managers, func(a netip.Addr) netip.Addr { return a })
		return netip.Addr{}, NewMultipleManagersError(managers)
	}
}
