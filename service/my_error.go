package service

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that record is absent in the store.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrNoRoute means there is no outbound route or no local adapter carries the route's address.
	ErrNoRoute = "no_route"
	// ErrValidation means the local network setup is unusable (e.g. a public source address).
	ErrValidation = "validation_error"
	// ErrNoManager means a subnet scan found no node answering as manager.
	ErrNoManager = "no_manager"
	// ErrMultipleManagers means a subnet scan found more than one node answering as manager.
	ErrMultipleManagers = "multiple_managers"
	// ErrExecution means a worker could not start the requested instruction.
	ErrExecution = "execution_error"
)

// MyError represents an error within the context of myfleet services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// newCoded keeps an already classified inner error instead of re-wrapping it.
func newCoded(code string, message string, inner error) *MyError {
	if myInner := ToMyError(inner); myInner != nil {
		return myInner
	}
	return NewMyError(code, message, inner)
}

func NewInternalServerError(message string, inner error) *MyError {
	return newCoded(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	return newCoded(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	return newCoded(ErrBadParameter, message, inner)
}

func NewNoRouteError(message string, inner error) *MyError {
	return newCoded(ErrNoRoute, message, inner)
}

func NewValidationError(message string, inner error) *MyError {
	return newCoded(ErrValidation, message, inner)
}

func NewExecutionError(message string, inner error) *MyError {
	return newCoded(ErrExecution, message, inner)
}

func NewNoManagerError(scanned int) *MyError {
	return NewMyError(ErrNoManager, fmt.Sprintf("no manager answered among %d scanned hosts", scanned), nil)
}

// ConflictingManagers lists every address that answered as manager in one scan.
type ConflictingManagers struct {
	Addresses []netip.Addr
}

func (c *ConflictingManagers) Error() string {
	parts := make([]string, 0, len(c.Addresses))
	for _, a := range c.Addresses {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}

// NewMultipleManagersError wraps the conflicting addresses so Error() names all of them and
// errors.As on *ConflictingManagers recovers the list.
func NewMultipleManagersError(addresses []netip.Addr) *MyError {
	return NewMyError(ErrMultipleManagers, fmt.Sprintf("%d hosts answered as manager", len(addresses)), &ConflictingManagers{Addresses: addresses})
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a myfleet error, or nil if it is not a myfleet error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsNoRouteError(err error) bool {
	return IsMyError(err, ErrNoRoute)
}

func IsValidationError(err error) bool {
	return IsMyError(err, ErrValidation)
}

func IsNoManagerError(err error) bool {
	return IsMyError(err, ErrNoManager)
}

func IsMultipleManagersError(err error) bool {
	return IsMyError(err, ErrMultipleManagers)
}

func IsExecutionError(err error) bool {
	return IsMyError(err, ErrExecution)
}
