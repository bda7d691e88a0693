package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, method string, err error) (*httptest.ResponseRecorder, ErrResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/send/true", nil)
	rec := httptest.NewRecorder()

	NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), log.NewNopLogger()).Handler(err, e.NewContext(req, rec))

	var body ErrResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func TestHTTPErrorHandler_Handler_MyErrorCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewBadParameterError("invalid body", nil), http.StatusBadRequest},
		{NewEntityNotFoundError("missing", nil), http.StatusNotFound},
		{NewExecutionError("cannot run \"x\"", assert.AnError), http.StatusUnprocessableEntity},
		{NewNoManagerError(6), http.StatusServiceUnavailable},
		{NewMultipleManagersError([]netip.Addr{netip.MustParseAddr("10.0.0.2"), netip.MustParseAddr("10.0.0.6")}), http.StatusConflict},
		{NewNoRouteError("no route", nil), http.StatusInternalServerError},
		{NewMyError("unknown_code", "???", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(ToMyErrorCode(tc.err), func(t *testing.T) {
			rec, body := handle(t, http.MethodPost, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, ToMyErrorCode(tc.err), body.Error.Code)
		})
	}
}

func TestHTTPErrorHandler_Handler_InnerErrorIsHidden(t *testing.T) {
	rec, _ := handle(t, http.MethodPost, NewExecutionError("cannot run \"x\"", assert.AnError))
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestHTTPErrorHandler_Handler_NonMyError_Returns500(t *testing.T) {
	rec, body := handle(t, http.MethodGet, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrInternalServerError, body.Error.Code)
}

func TestHTTPErrorHandler_Handler_EchoHTTPError(t *testing.T) {
	t.Run("request validation failure is bad_parameter", func(t *testing.T) {
		he := echo.NewHTTPError(http.StatusBadRequest, "request body has an error")
		he.Internal = &openapi3filter.RequestError{Err: assert.AnError}

		rec, body := handle(t, http.MethodPost, he)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, ErrBadParameter, body.Error.Code)
		assert.Equal(t, "request body has an error", body.Error.Message)
	})

	t.Run("unknown route keeps 404", func(t *testing.T) {
		rec, body := handle(t, http.MethodGet, echo.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, ErrEntityNotFound, body.Error.Code)
	})

	t.Run("wrong method keeps 405", func(t *testing.T) {
		rec, body := handle(t, http.MethodDelete, echo.ErrMethodNotAllowed)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, ErrBadParameter, body.Error.Code)
	})
}

func TestHTTPErrorHandler_Handler_Head(t *testing.T) {
	rec, _ := handle(t, http.MethodHead, NewEntityNotFoundError("missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestRegisterErrorHandler(t *testing.T) {
	e := echo.New()
	RegisterErrorHandler(e, log.NewNopLogger())
	require.NotNil(t, e.HTTPErrorHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.HTTPErrorHandler(NewNoManagerError(0), e.NewContext(req, rec))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
