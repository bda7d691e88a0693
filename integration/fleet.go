package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"sync"
	"time"

	"myfleet/adapters/memory"
	"myfleet/adapters/nodehttp"
	"myfleet/adapters/process"
	"myfleet/api"
	"myfleet/domain"
	"myfleet/handlers"
	"myfleet/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// ErrNoLoopbackAliases means the host does not route 127.0.0.0/8 to loopback, so nodes cannot
// each get their own address.
var ErrNoLoopbackAliases = errors.New("loopback aliases 127.0.0.x are not available")

var (
	// FleetSubnet holds every node address below.
	FleetSubnet = domain.MustParseSubnet("127.0.0.0/29")
	// ManagerAddr serves the manager API.
	ManagerAddr = netip.MustParseAddr("127.0.0.1")
	// WorkerAddrs serve the worker API, all on the same port.
	WorkerAddrs = []netip.Addr{netip.MustParseAddr("127.0.0.2"), netip.MustParseAddr("127.0.0.3")}
	// SpareAddr serves nothing unless a scenario starts a node on it.
	SpareAddr = netip.MustParseAddr("127.0.0.5")
	// GhostAddr never serves anything; it is used as a worker that went away.
	GhostAddr = netip.MustParseAddr("127.0.0.6")
)

const (
	probeTimeout    = 500 * time.Millisecond
	dispatchTimeout = 2 * time.Second
	announceEvery   = 100 * time.Millisecond
	portAttempts    = 10
)

// Fleet is one manager and its workers served in-process, each node on its own loopback
// address. Ports are picked at start and shared by every node of the same role.
type Fleet struct {
	ManagerPort int
	WorkerPort  int

	logger log.Logger

	mu      sync.Mutex
	servers []*http.Server
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// StartFleet starts a manager on ManagerAddr and a worker on each of WorkerAddrs. Workers do
// not announce themselves until AnnounceWorkers is called.
func StartFleet(ctx context.Context, logger log.Logger) (*Fleet, error) {
	managerLn, err := listen(ManagerAddr, 0)
	if err != nil {
		return nil, err
	}
	workerLns, err := listenAll(WorkerAddrs)
	if err != nil {
		_ = managerLn.Close()
		return nil, err
	}

	f := &Fleet{
		ManagerPort: portOf(managerLn),
		WorkerPort:  portOf(workerLns[0]),
		logger:      logger,
	}
	if err := f.serveManager(ctx, managerLn); err != nil {
		_ = managerLn.Close()
		closeAll(workerLns)
		return nil, err
	}
	for _, ln := range workerLns {
		if err := f.serveWorker(ctx, ln); err != nil {
			f.Close()
			closeAll(workerLns)
			return nil, err
		}
	}
	return f, nil
}

// StartManager starts an extra manager on addr with the fleet's manager port.
func (f *Fleet) StartManager(ctx context.Context, addr netip.Addr) error {
	ln, err := listen(addr, f.ManagerPort)
	if err != nil {
		return err
	}
	if err := f.serveManager(ctx, ln); err != nil {
		_ = ln.Close()
		return err
	}
	return nil
}

// AnnounceWorkers runs an announcer for every worker until the fleet is closed.
func (f *Fleet) AnnounceWorkers(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	for _, w := range WorkerAddrs {
		announcer := service.NewAnnouncer(nodehttp.ManagerConnector(f.ManagerPort, clientFrom(w)), announceEvery, probeTimeout, log.With(f.logger, "worker", w))
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			announcer.Run(ctx, ManagerAddr)
		}()
	}
}

// Connect announces from once, as a worker would, without serving anything on from.
func (f *Fleet) Connect(ctx context.Context, from netip.Addr) error {
	return nodehttp.ManagerConnector(f.ManagerPort, clientFrom(from)).Connect(ctx, ManagerAddr)
}

// Discover runs a discovery pass as the host at from would, probing port.
func (f *Fleet) Discover(ctx context.Context, from netip.Addr, port int) (*service.DiscoveryReport, error) {
	prober := nodehttp.RoleProber(port, nodehttp.NewProbeClient(), domain.DefaultRoles)
	scanner := service.NewSubnetScanner(prober, service.ScannerConfig{
		ProbeTimeout: probeTimeout,
		MaxHosts:     FleetSubnet.HostCount(),
	}, f.logger)
	return service.NewDiscovery(fixedLocator{addr: from, bits: FleetSubnet.Bits()}, scanner, false, f.logger).Run(ctx)
}

// Workers returns the manager's current worker list.
func (f *Fleet) Workers(ctx context.Context) ([]handlers.WorkerInfo, error) {
	url := fmt.Sprintf("http://%s/workers", netip.AddrPortFrom(ManagerAddr, uint16(f.ManagerPort)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	var body handlers.WorkersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Workers, nil
}

// WaitForWorkers polls the manager until it lists at least n workers or ctx is done.
func (f *Fleet) WaitForWorkers(ctx context.Context, n int) ([]handlers.WorkerInfo, error) {
	ticker := time.NewTicker(announceEvery / 2)
	defer ticker.Stop()
	for {
		workers, err := f.Workers(ctx)
		if err == nil && len(workers) >= n {
			return workers, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %d workers (last: %d, err: %v): %w", n, len(workers), err, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Send dispatches task through the manager's /send endpoint.
func (f *Fleet) Send(ctx context.Context, task domain.TaskDescriptor, timeoutMs int) (nodehttp.DispatchResult, error) {
	return nodehttp.NewDispatchClient(f.ManagerPort, &http.Client{}).Send(ctx, ManagerAddr, task, timeoutMs)
}

// Close stops announcers and every server the fleet started.
func (f *Fleet) Close() {
	f.mu.Lock()
	cancel := f.cancel
	servers := f.servers
	f.servers = nil
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	f.wg.Wait()
	for _, s := range servers {
		_ = s.Close()
	}
}

func (f *Fleet) serveManager(ctx context.Context, ln net.Listener) error {
	e, err := f.newEcho(ctx)
	if err != nil {
		return err
	}
	clock := service.NewTimeProvider(time.Now)
	registry := service.NewWorkerRegistry(memory.NewCache[domain.WorkerRecord](clock), clock, 0, 0, f.logger)
	dispatcher := service.NewTaskDispatcher(registry, nodehttp.TaskSender(f.WorkerPort, &http.Client{}), 0, f.logger)
	handlers.RegisterManagerHandlers(e, handlers.NewManagerHTTPServer(registry, dispatcher, dispatchTimeout, f.logger))
	f.serve(e, ln)
	return nil
}

func (f *Fleet) serveWorker(ctx context.Context, ln net.Listener) error {
	e, err := f.newEcho(ctx)
	if err != nil {
		return err
	}
	executor := service.NewTaskExecutor(process.NewRunner(), f.logger)
	handlers.RegisterWorkerHandlers(e, handlers.NewWorkerHTTPServer(executor, f.logger))
	f.serve(e, ln)
	return nil
}

func (f *Fleet) newEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := handlers.OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, f.logger)
	e.Use(validator)
	return e, nil
}

func (f *Fleet) serve(e *echo.Echo, ln net.Listener) {
	srv := &http.Server{Handler: e, ReadHeaderTimeout: 5 * time.Second}
	f.mu.Lock()
	f.servers = append(f.servers, srv)
	f.mu.Unlock()
	go func() { _ = srv.Serve(ln) }()
}

type fixedLocator struct {
	addr netip.Addr
	bits int
}

func (l fixedLocator) Locate() (netip.Addr, int, error) { return l.addr, l.bits, nil }

// clientFrom returns an http client whose connections originate from addr, so the manager
// records addr as the worker.
func clientFrom(addr netip.Addr) *http.Client {
	dialer := &net.Dialer{LocalAddr: &net.TCPAddr{IP: addr.AsSlice()}}
	return &http.Client{Transport: &http.Transport{DialContext: dialer.DialContext, DisableKeepAlives: true}}
}

func listen(addr netip.Addr, port int) (net.Listener, error) {
	ln, err := net.Listen("tcp4", netip.AddrPortFrom(addr, uint16(port)).String())
	if err != nil {
		var opErr *net.OpError
		if addr != ManagerAddr && errors.As(err, &opErr) && opErr.Op == "listen" && port == 0 {
			return nil, fmt.Errorf("%w: %v", ErrNoLoopbackAliases, err)
		}
		return nil, err
	}
	return ln, nil
}

// listenAll binds every address on one shared port.
func listenAll(addrs []netip.Addr) ([]net.Listener, error) {
	var lastErr error
	for range portAttempts {
		first, err := listen(addrs[0], 0)
		if err != nil {
			return nil, err
		}
		lns := []net.Listener{first}
		for _, a := range addrs[1:] {
			ln, err := listen(a, portOf(first))
			if err != nil {
				lastErr = err
				break
			}
			lns = append(lns, ln)
		}
		if len(lns) == len(addrs) {
			return lns, nil
		}
		closeAll(lns)
	}
	return nil, fmt.Errorf("no shared port for %v after %d attempts: %w", addrs, portAttempts, lastErr)
}

func portOf(ln net.Listener) int {
	return ln.Addr().(*net.TCPAddr).Port
}

func closeAll(lns []net.Listener) {
	for _, ln := range lns {
		_ = ln.Close()
	}
}
