// Package nodehttp is the HTTP client side of the node protocol: role probes, worker
// announcements and task delivery.
package nodehttp

import (
	"fmt"
	"io"
	"net/http"
	"net/netip"

	"myfleet/helpers"
)

// maxBodyBytes caps how much of any node response is read.
const maxBodyBytes = 64 << 10

// nodeClient addresses one fixed port on many hosts.
type nodeClient struct {
	port   int
	client *http.Client
}

func newNodeClient(port int, client *http.Client, file string) nodeClient {
	if port < 1 || port > 65535 {
		panic(fmt.Sprintf("nodehttp.%s: port %d out of range", file, port))
	}
	return nodeClient{
		port:   port,
		client: helpers.NilPanic(client, fmt.Sprintf("nodehttp.%s: http client is required", file)),
	}
}

func (n nodeClient) url(addr netip.Addr, path string) string {
	return "http://" + netip.AddrPortFrom(addr, uint16(n.port)).String() + path
}

// NewProbeClient returns an http.Client suited to subnet scans: connections are never reused,
// so a scan of many hosts does not pile up idle sockets. Timeouts come from request contexts.
func NewProbeClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}

func statusError(addr netip.Addr, path string, status int) error {
	return fmt.Errorf("%s%s returned %d", addr, path, status)
}
