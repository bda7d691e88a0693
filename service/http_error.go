package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs the myfleet error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	return map[string]int{
		ErrBadParameter:        http.StatusBadRequest,
		ErrEntityNotFound:      http.StatusNotFound,
		ErrInternalServerError: http.StatusInternalServerError,
		ErrMultipleManagers:    http.StatusConflict,
		ErrNoManager:           http.StatusServiceUnavailable,
		ErrExecution:           http.StatusUnprocessableEntity,
		ErrNoRoute:             http.StatusInternalServerError,
		ErrValidation:          http.StatusInternalServerError,
	}
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       log.With(logger, "component", "http_error_handler"),
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler handles errors returned by echo handlers and middleware. MyError codes are mapped to
// a status; echo.HTTPError keeps its own status, and request validation failures are reported
// as bad_parameter.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var statusCode int
	myErr := ToMyError(err)
	he, isHTTPError := err.(*echo.HTTPError)
	switch {
	case isHTTPError:
		code := ErrInternalServerError
		if he.Code < http.StatusInternalServerError {
			code = ErrBadParameter
		}
		if he.Code == http.StatusNotFound {
			code = ErrEntityNotFound
		}
		var requestError *openapi3filter.RequestError
		if errors.As(he.Internal, &requestError) {
			code = ErrBadParameter
		}
		message, _ := he.Message.(string)
		myErr = NewMyError(code, message, err)
		statusCode = he.Code
	case myErr != nil:
		statusCode = h.getStatusCode(myErr.Code)
	default:
		myErr = NewMyError(ErrInternalServerError, "an internal server error has occurred", err)
		statusCode = http.StatusInternalServerError
	}

	logAt := level.Warn
	if statusCode >= http.StatusInternalServerError {
		logAt = level.Error
	}
	logAt(h.logger).Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", statusCode,
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: myErr})
}

// ErrResponse from server.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}
