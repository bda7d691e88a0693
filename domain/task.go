package domain

import "net/netip"

// MaxTimeoutMs is the longest timeout, in milliseconds, accepted from a request or from
// configuration (one hour).
const MaxTimeoutMs = 3_600_000

// TaskDescriptor names an external program for a worker to run, plus its arguments.
type TaskDescriptor struct {
	Instructions string
	Args         []string
}

// TaskOutcome is one worker's result for a dispatched task. Result is nil on timeout,
// connection failure or a remote execution error; Err then describes why.
type TaskOutcome struct {
	Worker netip.Addr
	Result *int
	Err    string
}
