package handlers

import (
	"myfleet/domain"
)

// toWorkerInfo converts a domain worker record to its API form.
func toWorkerInfo(w domain.WorkerRecord) WorkerInfo {
	return WorkerInfo{
		Address:   w.Address.String(),
		Status:    string(w.Status),
		UptimeMs:  w.Uptime.Milliseconds(),
		FirstSeen: w.FirstSeen,
		LastSeen:  w.LastSeen,
	}
}

// toWorkersResponse converts domain worker records to the API response, keeping their order.
func toWorkersResponse(workers []domain.WorkerRecord) WorkersResponse {
	out := make([]WorkerInfo, 0, len(workers))
	for _, w := range workers {
		out = append(out, toWorkerInfo(w))
	}
	return WorkersResponse{Workers: out}
}

// toSendResponse converts dispatch outcomes to the API response.
func toSendResponse(dispatchID string, outcomes []domain.TaskOutcome) SendResponse {
	out := make([]TaskOutcome, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, TaskOutcome{
			Worker: o.Worker.String(),
			Result: o.Result,
			Error:  o.Err,
		})
	}
	return SendResponse{DispatchId: dispatchID, Outcomes: out}
}
