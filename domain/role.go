package domain

import (
	"net/netip"
	"strings"
)

// RoleTag is the self-reported role of a node.
type RoleTag string

const (
	RoleManager RoleTag = "Manager"
	RoleWorker  RoleTag = "Worker"
)

// DefaultRoles are the tags every prober recognises.
var DefaultRoles = []RoleTag{RoleManager, RoleWorker}

// MatchRole is the single canonical role comparison: raw is trimmed of surrounding
// whitespace and must equal one of known exactly (case-sensitive).
func MatchRole(raw string, known []RoleTag) (RoleTag, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, tag := range known {
		if trimmed == string(tag) {
			return tag, true
		}
	}
	return "", false
}

// RoleProbeResult is the outcome of probing one address. Role is nil when the address did
// not answer in time, refused the connection, or answered with an unrecognised tag.
type RoleProbeResult struct {
	Address netip.Addr
	Role    *RoleTag
}

// Is reports whether the probe found the given role.
func (r RoleProbeResult) Is(tag RoleTag) bool {
	return r.Role != nil && *r.Role == tag
}
