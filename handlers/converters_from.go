package handlers

import (
	"fmt"
	"net/netip"
	"net/url"
	"time"

	"myfleet/domain"
	"myfleet/service"
)

// fromSendRequest builds the task and per-worker timeout for POST /send/{task}. rawTask is the
// path segment as routed; fallback applies when the body sets no timeout.
// Returns service.BadParameterError on validation failure.
func fromSendRequest(rawTask string, req SendRequest, fallback time.Duration) (domain.TaskDescriptor, time.Duration, error) {
	instructions, err := url.PathUnescape(rawTask)
	if err != nil {
		return domain.TaskDescriptor{}, 0, service.NewBadParameterError("task is not a valid path segment", err)
	}
	if instructions == "" {
		return domain.TaskDescriptor{}, 0, service.NewBadParameterError("task is required", nil)
	}

	timeout := fallback
	if req.TimeoutMs != nil {
		if *req.TimeoutMs <= 0 || *req.TimeoutMs > domain.MaxTimeoutMs {
			return domain.TaskDescriptor{}, 0, service.NewBadParameterError(fmt.Sprintf("timeout_ms must be 1-%d", domain.MaxTimeoutMs), nil)
		}
		timeout = time.Duration(*req.TimeoutMs) * time.Millisecond
	}

	return domain.TaskDescriptor{Instructions: instructions, Args: req.Args}, timeout, nil
}

// fromTaskRequest converts the POST /get body to a task.
// Returns service.BadParameterError on validation failure.
func fromTaskRequest(req TaskRequest) (domain.TaskDescriptor, error) {
	if req.Instructions == "" {
		return domain.TaskDescriptor{}, service.NewBadParameterError("instructions is required", nil)
	}
	return domain.TaskDescriptor{Instructions: req.Instructions, Args: req.Args}, nil
}

// fromRemoteIP parses the caller address reported by echo. IPv4-mapped IPv6 addresses are
// unmapped so a worker has one key regardless of the listener's address family.
func fromRemoteIP(ip string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return netip.Addr{}, service.NewBadParameterError(fmt.Sprintf("caller address %q is not an IP", ip), err)
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return netip.Addr{}, service.NewBadParameterError(fmt.Sprintf("caller address %s is not IPv4", addr), nil)
	}
	return addr, nil
}
