package domain

import (
	"net/netip"
	"time"
)

// OnlineStatus is the registry view of a worker's liveness.
type OnlineStatus string

const (
	StatusOnline  OnlineStatus = "online"
	StatusOffline OnlineStatus = "offline"
)

// WorkerRecord is the manager's registration for one worker. Address is the unique key.
// Uptime is LastSeen minus FirstSeen.
type WorkerRecord struct {
	Address   netip.Addr
	Status    OnlineStatus
	Uptime    time.Duration
	FirstSeen time.Time
	LastSeen  time.Time
}
