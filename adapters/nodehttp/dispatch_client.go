package nodehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"

	"myfleet/domain"
	"myfleet/service"
)

const sendPath = "/send/"

// DispatchResult is a manager's answer to a send request.
type DispatchResult struct {
	DispatchID string
	Outcomes   []domain.TaskOutcome
}

// DispatchClient asks a manager to fan a task out to its workers. Used by the send command.
type DispatchClient struct {
	nodeClient
}

// NewDispatchClient creates a DispatchClient for managers listening on port.
func NewDispatchClient(port int, client *http.Client) *DispatchClient {
	return &DispatchClient{nodeClient: newNodeClient(port, client, "dispatch_client.go")}
}

type sendRequest struct {
	Args      []string `json:"args,omitempty"`
	TimeoutMs int      `json:"timeout_ms,omitempty"`
}

type sendResponse struct {
	DispatchID string `json:"dispatch_id"`
	Outcomes   []struct {
		Worker string `json:"worker"`
		Result *int   `json:"result"`
		Error  string `json:"error"`
	} `json:"outcomes"`
}

// Send posts task to manager. timeoutMs <= 0 leaves the manager's default per-worker timeout.
// The manager's error body, when present, is returned as a MyError with the same code.
func (d *DispatchClient) Send(ctx context.Context, manager netip.Addr, task domain.TaskDescriptor, timeoutMs int) (DispatchResult, error) {
	if task.Instructions == "" {
		return DispatchResult{}, service.NewBadParameterError("task instructions are required", nil)
	}
	payload, err := json.Marshal(sendRequest{Args: task.Args, TimeoutMs: timeoutMs})
	if err != nil {
		return DispatchResult{}, err
	}
	path := sendPath + url.PathEscape(task.Instructions)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url(manager, path), bytes.NewReader(payload))
	if err != nil {
		return DispatchResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return DispatchResult{}, err
	}
	defer resp.Body.Close()
	body, err := readBody(resp)
	if err != nil {
		return DispatchResult{}, err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp service.ErrResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil && errResp.Error.Code != "" {
			return DispatchResult{}, service.NewMyError(errResp.Error.Code, errResp.Error.Message, statusError(manager, path, resp.StatusCode))
		}
		return DispatchResult{}, statusError(manager, path, resp.StatusCode)
	}

	var raw sendResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return DispatchResult{}, fmt.Errorf("decode %s%s response: %w", manager, path, err)
	}
	out := DispatchResult{DispatchID: raw.DispatchID, Outcomes: make([]domain.TaskOutcome, 0, len(raw.Outcomes))}
	for _, o := range raw.Outcomes {
		worker, err := netip.ParseAddr(o.Worker)
		if err != nil {
			return DispatchResult{}, fmt.Errorf("manager reported invalid worker address %q: %w", o.Worker, err)
		}
		out.Outcomes = append(out.Outcomes, domain.TaskOutcome{Worker: worker, Result: o.Result, Err: o.Error})
	}
	return out, nil
}
