package handlers

import "time"

// WorkerInfo is the wire form of a worker record.
type WorkerInfo struct {
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	UptimeMs  int64     `json:"uptime_ms"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// WorkersResponse is the body of GET /workers.
type WorkersResponse struct {
	Workers []WorkerInfo `json:"workers"`
}

// SendRequest is the optional body of POST /send/{task}.
type SendRequest struct {
	Args      []string `json:"args,omitempty"`
	TimeoutMs *int     `json:"timeout_ms,omitempty"`
}

// TaskOutcome is one worker's entry in a SendResponse. Result is null when the worker did not
// report an exit code.
type TaskOutcome struct {
	Worker string `json:"worker"`
	Result *int   `json:"result"`
	Error  string `json:"error,omitempty"`
}

// SendResponse is the body returned by POST /send/{task}.
type SendResponse struct {
	DispatchId string        `json:"dispatch_id"`
	Outcomes   []TaskOutcome `json:"outcomes"`
}

// TaskRequest is the body of POST /get.
type TaskRequest struct {
	Instructions string   `json:"instructions"`
	Args         []string `json:"args,omitempty"`
}

// TaskResult is the body returned by POST /get.
type TaskResult struct {
	Result int `json:"result"`
}
