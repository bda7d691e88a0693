package nodehttp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"myfleet/domain"
	"myfleet/interfaces"
)

const rolePath = "/role"

// RoleProber creates an interfaces.RoleProber that asks GET http://addr:port/role and
// recognises the given role tags. Panics on a bad port or nil client.
//
// Called from cmd/myfleet for the discover, worker and manager commands.
func RoleProber(port int, client *http.Client, known []domain.RoleTag) interfaces.RoleProber {
	if len(known) == 0 {
		known = domain.DefaultRoles
	}
	return &roleProber{nodeClient: newNodeClient(port, client, "prober.go"), known: known}
}

type roleProber struct {
	nodeClient
	known []domain.RoleTag
}

// Probe never returns an error. Refused connections, timeouts, non-200 answers and
// unrecognised tags all yield a nil role.
func (p *roleProber) Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) domain.RoleProbeResult {
	res := domain.RoleProbeResult{Address: addr}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url(addr, rolePath), nil)
	if err != nil {
		return res
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return res
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return res
	}
	body, err := readBody(resp)
	if err != nil {
		return res
	}

	if tag, ok := domain.MatchRole(roleText(body), p.known); ok {
		res.Role = &tag
	}
	return res
}

// roleText accepts both a bare tag and a JSON string literal such as "\"Manager\"".
func roleText(body []byte) string {
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return s
		}
	}
	return text
}
