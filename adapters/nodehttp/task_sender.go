package nodehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/netip"

	"myfleet/domain"
	"myfleet/interfaces"
	"myfleet/service"
)

const taskPath = "/get"

// TaskSender creates an interfaces.TaskSender that POSTs tasks to http://worker:port/get.
// Panics on a bad port or nil client.
func TaskSender(port int, client *http.Client) interfaces.TaskSender {
	return &taskSender{nodeClient: newNodeClient(port, client, "task_sender.go")}
}

type taskSender struct {
	nodeClient
}

type taskRequest struct {
	Instructions string   `json:"instructions"`
	Args         []string `json:"args,omitempty"`
}

type taskResponse struct {
	Result *int `json:"result"`
}

// SendTask returns the worker's exit code on 200. An error body from the worker is decoded so
// an execution_error keeps its code; anything else is a plain error.
func (s *taskSender) SendTask(ctx context.Context, worker netip.Addr, task domain.TaskDescriptor) (int, error) {
	payload, err := json.Marshal(taskRequest{Instructions: task.Instructions, Args: task.Args})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url(worker, taskPath), bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := readBody(resp)
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp service.ErrResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != nil && errResp.Error.Code != "" {
			return 0, service.NewMyError(errResp.Error.Code, errResp.Error.Message, statusError(worker, taskPath, resp.StatusCode))
		}
		return 0, statusError(worker, taskPath, resp.StatusCode)
	}

	var out taskResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("decode %s%s response: %w", worker, taskPath, err)
	}
	if out.Result == nil {
		return 0, fmt.Errorf("%s%s response missing result field", worker, taskPath)
	}
	return *out.Result, nil
}
