package myredis

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"time"

	"myfleet/domain"
)

// storedWorker is the JSON layout of a worker record in redis.
type storedWorker struct {
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	UptimeMs  int64     `json:"uptime_ms"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// MarshalWorker encodes a worker record for NewCache.
func MarshalWorker(w domain.WorkerRecord) ([]byte, error) {
	return json.Marshal(storedWorker{
		Address:   w.Address.String(),
		Status:    string(w.Status),
		UptimeMs:  w.Uptime.Milliseconds(),
		FirstSeen: w.FirstSeen,
		LastSeen:  w.LastSeen,
	})
}

// UnmarshalWorker decodes a worker record written by MarshalWorker.
func UnmarshalWorker(b []byte) (domain.WorkerRecord, error) {
	var s storedWorker
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.WorkerRecord{}, err
	}
	addr, err := netip.ParseAddr(s.Address)
	if err != nil {
		return domain.WorkerRecord{}, fmt.Errorf("stored worker address: %w", err)
	}
	return domain.WorkerRecord{
		Address:   addr,
		Status:    domain.OnlineStatus(s.Status),
		Uptime:    time.Duration(s.UptimeMs) * time.Millisecond,
		FirstSeen: s.FirstSeen,
		LastSeen:  s.LastSeen,
	}, nil
}
