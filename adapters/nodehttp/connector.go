package nodehttp

import (
	"context"
	"net/http"
	"net/netip"

	"myfleet/interfaces"
)

const connectPath = "/connect"

// ManagerConnector creates an interfaces.ManagerConnector that calls GET
// http://manager:port/connect. The manager identifies the worker by the connection's source
// address, so the request carries no body.
func ManagerConnector(port int, client *http.Client) interfaces.ManagerConnector {
	return &managerConnector{nodeClient: newNodeClient(port, client, "connector.go")}
}

type managerConnector struct {
	nodeClient
}

func (c *managerConnector) Connect(ctx context.Context, manager netip.Addr) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(manager, connectPath), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return statusError(manager, connectPath, resp.StatusCode)
	}
	return nil
}
