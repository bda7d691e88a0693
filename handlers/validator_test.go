package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"myfleet/api"
	"myfleet/domain"
	"myfleet/interfaces/mock"
	"myfleet/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withValidator(t *testing.T, e *echo.Echo) *echo.Echo {
	t.Helper()
	doc, err := api.Load(context.Background())
	require.NoError(t, err)
	mw, err := OpenAPIValidator(doc)
	require.NoError(t, err)
	e.Use(mw)
	return e
}

func TestOpenAPIValidator_WorkerTaskBody(t *testing.T) {
	executor := &mock.TaskExecutorMock{ExecuteFunc: func(context.Context, domain.TaskDescriptor) (int, error) { return 0, nil }}
	e := echo.New()
	RegisterWorkerHandlers(e, NewWorkerHTTPServer(executor, log.NewNopLogger()))
	service.RegisterErrorHandler(e, log.NewNopLogger())
	withValidator(t, e)

	t.Run("valid body reaches the handler", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/get", `{"instructions":"true"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"result":0}`, rec.Body.String())
	})

	t.Run("missing instructions is rejected before the handler", func(t *testing.T) {
		calls := len(executor.ExecuteCalls())
		rec := serve(e, http.MethodPost, "/get", `{"args":["x"]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, service.ErrBadParameter, errorCode(t, rec))
		assert.Len(t, executor.ExecuteCalls(), calls)
	})

	t.Run("wrong type", func(t *testing.T) {
		rec := serve(e, http.MethodPost, "/get", `{"instructions":42}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("role is not validated", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/role", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown path still 404", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOpenAPIValidator_SendBody(t *testing.T) {
	dispatcher := &mock.TaskDispatcherMock{DispatchFunc: func(context.Context, domain.TaskDescriptor, time.Duration) ([]domain.TaskOutcome, error) {
		return nil, nil
	}}
	e := withValidator(t, newManagerEcho(&mock.WorkerRegistryMock{}, dispatcher))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/send/true", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/send/true", `{"timeout_ms":100}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/send/true", `{"timeout_ms":"soon"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/send/true", `{"retries":3}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/send/true", `{"timeout_ms":3600001}`).Code)
	assert.Len(t, dispatcher.DispatchCalls(), 2)
}
