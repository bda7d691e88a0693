package integration

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"slices"
	"strings"

	"myfleet/domain"
	"myfleet/service"
)

func init() {
	Register("basic_workflow", BasicWorkflow)
	Register("no_manager", NoManager)
	Register("multiple_managers", MultipleManagers)
	Register("unreachable_worker", UnreachableWorker)
	Register("unknown_instruction", UnknownInstruction)
}

// BasicWorkflow: a worker discovers the manager, every worker announces itself, and a task
// sent through the manager runs on all of them.
func BasicWorkflow(ctx context.Context, f *Fleet) error {
	report, err := f.Discover(ctx, WorkerAddrs[0], f.ManagerPort)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	if report.Manager != ManagerAddr {
		return fmt.Errorf("discovered manager %s, want %s", report.Manager, ManagerAddr)
	}

	f.AnnounceWorkers(ctx)
	workers, err := f.WaitForWorkers(ctx, len(WorkerAddrs))
	if err != nil {
		return err
	}
	for _, w := range workers {
		if w.Status != string(domain.StatusOnline) {
			return fmt.Errorf("worker %s status %q, want %q", w.Address, w.Status, domain.StatusOnline)
		}
	}

	res, err := f.Send(ctx, domain.TaskDescriptor{Instructions: "sh", Args: []string{"-c", "exit 3"}}, 0)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if res.DispatchID == "" {
		return errors.New("send: empty dispatch id")
	}
	return expectOutcomes(res.Outcomes, map[netip.Addr]int{WorkerAddrs[0]: 3, WorkerAddrs[1]: 3})
}

// NoManager: probing the worker port finds only workers, so discovery reports no_manager
// together with what it saw.
func NoManager(ctx context.Context, f *Fleet) error {
	report, err := f.Discover(ctx, ManagerAddr, f.WorkerPort)
	if code := service.ToMyErrorCode(err); code != service.ErrNoManager {
		return fmt.Errorf("discover: got %v (code %q), want %s", err, code, service.ErrNoManager)
	}
	if report == nil {
		return errors.New("discover: no report returned with no_manager")
	}

	var found []netip.Addr
	for _, r := range report.Results {
		if r.Is(domain.RoleWorker) {
			found = append(found, r.Address)
		}
	}
	if !slices.Equal(found, WorkerAddrs) {
		return fmt.Errorf("workers seen %v, want %v", found, WorkerAddrs)
	}
	return nil
}

// MultipleManagers: a second manager on the subnet makes discovery fail and name both.
func MultipleManagers(ctx context.Context, f *Fleet) error {
	if err := f.StartManager(ctx, SpareAddr); err != nil {
		return fmt.Errorf("start second manager: %w", err)
	}

	_, err := f.Discover(ctx, WorkerAddrs[0], f.ManagerPort)
	if code := service.ToMyErrorCode(err); code != service.ErrMultipleManagers {
		return fmt.Errorf("discover: got %v (code %q), want %s", err, code, service.ErrMultipleManagers)
	}
	var conflict *service.ConflictingManagers
	if !errors.As(err, &conflict) {
		return fmt.Errorf("discover: %v does not carry the conflicting addresses", err)
	}
	if want := []netip.Addr{ManagerAddr, SpareAddr}; !slices.Equal(conflict.Addresses, want) {
		return fmt.Errorf("conflicting managers %v, want %v", conflict.Addresses, want)
	}
	return nil
}

// UnreachableWorker: a registered worker that no longer serves gets a null result while the
// others still report theirs.
func UnreachableWorker(ctx context.Context, f *Fleet) error {
	f.AnnounceWorkers(ctx)
	if err := f.Connect(ctx, GhostAddr); err != nil {
		return fmt.Errorf("connect ghost worker: %w", err)
	}
	if _, err := f.WaitForWorkers(ctx, len(WorkerAddrs)+1); err != nil {
		return err
	}

	res, err := f.Send(ctx, domain.TaskDescriptor{Instructions: "true"}, 1000)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if err := expectOutcomes(res.Outcomes, map[netip.Addr]int{WorkerAddrs[0]: 0, WorkerAddrs[1]: 0}); err != nil {
		return err
	}
	ghost := res.Outcomes[len(res.Outcomes)-1]
	if ghost.Worker != GhostAddr || ghost.Err == "" {
		return fmt.Errorf("ghost outcome %+v, want %s with an error", ghost, GhostAddr)
	}
	return nil
}

// UnknownInstruction: workers that cannot start the program report execution_error and the
// manager returns null results rather than failing the dispatch.
func UnknownInstruction(ctx context.Context, f *Fleet) error {
	f.AnnounceWorkers(ctx)
	if _, err := f.WaitForWorkers(ctx, len(WorkerAddrs)); err != nil {
		return err
	}

	res, err := f.Send(ctx, domain.TaskDescriptor{Instructions: "myfleet-no-such-program"}, 0)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if len(res.Outcomes) != len(WorkerAddrs) {
		return fmt.Errorf("got %d outcomes, want %d", len(res.Outcomes), len(WorkerAddrs))
	}
	for _, o := range res.Outcomes {
		if o.Result != nil || !strings.Contains(o.Err, service.ErrExecution) {
			return fmt.Errorf("outcome %+v, want null result with %s", o, service.ErrExecution)
		}
	}
	return nil
}

// expectOutcomes checks that every address in want reported its exit code. Outcomes for
// other addresses are ignored.
func expectOutcomes(outcomes []domain.TaskOutcome, want map[netip.Addr]int) error {
	if !slices.IsSortedFunc(outcomes, func(a, b domain.TaskOutcome) int { return a.Worker.Compare(b.Worker) }) {
		return fmt.Errorf("outcomes not sorted by worker: %+v", outcomes)
	}
	got := make(map[netip.Addr]domain.TaskOutcome, len(outcomes))
	for _, o := range outcomes {
		got[o.Worker] = o
	}
	for addr, code := range want {
		o, ok := got[addr]
		if !ok {
			return fmt.Errorf("no outcome for %s", addr)
		}
		if o.Result == nil || *o.Result != code {
			return fmt.Errorf("outcome for %s: %+v, want result %d", addr, o, code)
		}
	}
	return nil
}
