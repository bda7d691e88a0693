package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"myfleet/domain"
	"myfleet/interfaces/mock"
	"myfleet/service"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seenAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newManagerEcho(registry *mock.WorkerRegistryMock, dispatcher *mock.TaskDispatcherMock) *echo.Echo {
	e := echo.New()
	RegisterManagerHandlers(e, NewManagerHTTPServer(registry, dispatcher, 5*time.Second, log.NewNopLogger()))
	service.RegisterErrorHandler(e, log.NewNopLogger())
	return e
}

func newWorkerEcho(executor *mock.TaskExecutorMock) *echo.Echo {
	e := echo.New()
	RegisterWorkerHandlers(e, NewWorkerHTTPServer(executor, log.NewNopLogger()))
	service.RegisterErrorHandler(e, log.NewNopLogger())
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body service.ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestGetRole(t *testing.T) {
	t.Run("manager", func(t *testing.T) {
		rec := serve(newManagerEcho(&mock.WorkerRegistryMock{}, &mock.TaskDispatcherMock{}), http.MethodGet, "/role", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Manager", rec.Body.String())
		assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain))
	})
	t.Run("worker", func(t *testing.T) {
		rec := serve(newWorkerEcho(&mock.TaskExecutorMock{}), http.MethodGet, "/role", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Worker", rec.Body.String())
	})
}

func TestManagerHTTPServer_ConnectWorker(t *testing.T) {
	t.Run("registers the caller's source address", func(t *testing.T) {
		registry := &mock.WorkerRegistryMock{RegisterFunc: func(_ context.Context, addr netip.Addr) (domain.WorkerRecord, error) {
			return domain.WorkerRecord{Address: addr, Status: domain.StatusOnline, Uptime: 1500 * time.Millisecond, FirstSeen: seenAt, LastSeen: seenAt.Add(1500 * time.Millisecond)}, nil
		}}
		e := newManagerEcho(registry, &mock.TaskDispatcherMock{})
		req := httptest.NewRequest(http.MethodGet, "/connect", nil)
		req.RemoteAddr = "10.0.0.5:40000"
		req.Header.Set("X-Forwarded-For", "10.0.0.99")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, registry.RegisterCalls(), 1)
		assert.Equal(t, netip.MustParseAddr("10.0.0.5"), registry.RegisterCalls()[0].Addr)
		assert.JSONEq(t, `{
			"address": "10.0.0.5",
			"status": "online",
			"uptime_ms": 1500,
			"first_seen": "2024-05-01T12:00:00Z",
			"last_seen": "2024-05-01T12:00:01.5Z"
		}`, rec.Body.String())
	})

	t.Run("500 registry error", func(t *testing.T) {
		registry := &mock.WorkerRegistryMock{RegisterFunc: func(context.Context, netip.Addr) (domain.WorkerRecord, error) {
			return domain.WorkerRecord{}, assert.AnError
		}}
		rec := serve(newManagerEcho(registry, &mock.TaskDispatcherMock{}), http.MethodGet, "/connect", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, service.ErrInternalServerError, errorCode(t, rec))
	})
}

func TestManagerHTTPServer_ListWorkers(t *testing.T) {
	registry := &mock.WorkerRegistryMock{ListFunc: func(context.Context) ([]domain.WorkerRecord, error) {
		return []domain.WorkerRecord{
			{Address: netip.MustParseAddr("10.0.0.3"), Status: domain.StatusOnline, FirstSeen: seenAt, LastSeen: seenAt},
			{Address: netip.MustParseAddr("10.0.0.5"), Status: domain.StatusOffline, FirstSeen: seenAt, LastSeen: seenAt},
		}, nil
	}}
	rec := serve(newManagerEcho(registry, &mock.TaskDispatcherMock{}), http.MethodGet, "/workers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body WorkersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Workers, 2)
	assert.Equal(t, "10.0.0.3", body.Workers[0].Address)
	assert.Equal(t, "offline", body.Workers[1].Status)
}

func TestManagerHTTPServer_SendTask(t *testing.T) {
	outcomes := []domain.TaskOutcome{
		{Worker: netip.MustParseAddr("10.0.0.3"), Result: service.Ptr(0)},
		{Worker: netip.MustParseAddr("10.0.0.4"), Err: "connection refused"},
	}

	tests := []struct {
		name            string
		target          string
		body            string
		dispatchErr     error
		expectedStatus  int
		expectedTask    domain.TaskDescriptor
		expectedTimeout time.Duration
	}{
		{
			name:            "ok without body uses default timeout",
			target:          "/send/true",
			expectedStatus:  http.StatusOK,
			expectedTask:    domain.TaskDescriptor{Instructions: "true"},
			expectedTimeout: 5 * time.Second,
		},
		{
			name:            "ok with args and timeout",
			target:          "/send/echo",
			body:            `{"args":["hello"],"timeout_ms":250}`,
			expectedStatus:  http.StatusOK,
			expectedTask:    domain.TaskDescriptor{Instructions: "echo", Args: []string{"hello"}},
			expectedTimeout: 250 * time.Millisecond,
		},
		{
			name:            "escaped path segment",
			target:          "/send/my%20tool",
			expectedStatus:  http.StatusOK,
			expectedTask:    domain.TaskDescriptor{Instructions: "my tool"},
			expectedTimeout: 5 * time.Second,
		},
		{
			name:           "400 invalid JSON",
			target:         "/send/true",
			body:           `{invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "400 non positive timeout",
			target:         "/send/true",
			body:           `{"timeout_ms":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:            "longest accepted timeout",
			target:          "/send/true",
			body:            `{"timeout_ms":3600000}`,
			expectedStatus:  http.StatusOK,
			expectedTask:    domain.TaskDescriptor{Instructions: "true"},
			expectedTimeout: time.Hour,
		},
		{
			name:           "400 timeout that would overflow a duration",
			target:         "/send/true",
			body:           `{"timeout_ms":9223372036854775807}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "500 dispatch error",
			target:         "/send/true",
			dispatchErr:    assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dispatcher := &mock.TaskDispatcherMock{DispatchFunc: func(context.Context, domain.TaskDescriptor, time.Duration) ([]domain.TaskOutcome, error) {
				if tt.dispatchErr != nil {
					return nil, tt.dispatchErr
				}
				return outcomes, nil
			}}
			rec := serve(newManagerEcho(&mock.WorkerRegistryMock{}, dispatcher), http.MethodPost, tt.target, tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			require.Len(t, dispatcher.DispatchCalls(), 1)
			assert.Equal(t, tt.expectedTask, dispatcher.DispatchCalls()[0].Task)
			assert.Equal(t, tt.expectedTimeout, dispatcher.DispatchCalls()[0].TimeoutPerWorker)

			var body SendResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			_, err := uuid.Parse(body.DispatchId)
			assert.NoError(t, err)
			require.Len(t, body.Outcomes, 2)
			assert.Equal(t, 0, *body.Outcomes[0].Result)
			assert.Nil(t, body.Outcomes[1].Result)
			assert.Contains(t, rec.Body.String(), `"result":null`)
		})
	}
}

func TestWorkerHTTPServer_RunTask(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		executor       *mock.TaskExecutorMock
		expectedStatus int
		expectedBody   string
		expectedCode   string
	}{
		{
			name: "ok non zero exit code",
			body: `{"instructions":"sh","args":["-c","exit 4"]}`,
			executor: &mock.TaskExecutorMock{ExecuteFunc: func(_ context.Context, task domain.TaskDescriptor) (int, error) {
				assert.Equal(t, domain.TaskDescriptor{Instructions: "sh", Args: []string{"-c", "exit 4"}}, task)
				return 4, nil
			}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"result":4}`,
		},
		{
			name:           "400 missing instructions",
			body:           `{"args":["x"]}`,
			executor:       &mock.TaskExecutorMock{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.ErrBadParameter,
		},
		{
			name: "422 program cannot start",
			body: `{"instructions":"no-such-program"}`,
			executor: &mock.TaskExecutorMock{ExecuteFunc: func(context.Context, domain.TaskDescriptor) (int, error) {
				return 0, service.NewExecutionError(`cannot run "no-such-program"`, assert.AnError)
			}},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   service.ErrExecution,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newWorkerEcho(tt.executor), http.MethodPost, "/get", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}

func TestRoutesAreRoleSpecific(t *testing.T) {
	manager := newManagerEcho(&mock.WorkerRegistryMock{}, &mock.TaskDispatcherMock{})
	assert.Equal(t, http.StatusNotFound, serve(manager, http.MethodPost, "/get", `{"instructions":"true"}`).Code)

	worker := newWorkerEcho(&mock.TaskExecutorMock{})
	assert.Equal(t, http.StatusNotFound, serve(worker, http.MethodGet, "/connect", "").Code)
}

func TestNewHTTPServer_Guards(t *testing.T) {
	assert.Panics(t, func() { NewManagerHTTPServer(nil, &mock.TaskDispatcherMock{}, time.Second, log.NewNopLogger()) })
	assert.Panics(t, func() { NewManagerHTTPServer(&mock.WorkerRegistryMock{}, &mock.TaskDispatcherMock{}, 0, log.NewNopLogger()) })
	assert.Panics(t, func() { NewWorkerHTTPServer(nil, log.NewNopLogger()) })
}
