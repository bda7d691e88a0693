package service

import (
	"errors"
	"fmt"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMyError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewMyError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
	assert.Equal(t, "bad_parameter invalid input: underlying", e.Error())
}

func TestConstructors_KeepClassifiedInner(t *testing.T) {
	original := NewExecutionError("spawn failed", nil)
	wrapped := fmt.Errorf("handler: %w", original)

	got := NewInternalServerError("should not reclassify", wrapped)
	assert.Same(t, original, got)
	assert.True(t, IsExecutionError(got))
}

func TestConstructors_Codes(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "internal", err: NewInternalServerError("x", nil), check: IsInternalServerError},
		{name: "not_found", err: NewEntityNotFoundError("x", nil), check: IsEntityNotFoundError},
		{name: "bad_parameter", err: NewBadParameterError("x", nil), check: IsBadParameterError},
		{name: "no_route", err: NewNoRouteError("x", nil), check: IsNoRouteError},
		{name: "validation", err: NewValidationError("x", nil), check: IsValidationError},
		{name: "no_manager", err: NewNoManagerError(6), check: IsNoManagerError},
		{name: "execution", err: NewExecutionError("x", nil), check: IsExecutionError},
		{name: "multiple_managers", err: NewMultipleManagersError(nil), check: IsMultipleManagersError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestNewMultipleManagersError(t *testing.T) {
	addrs := []netip.Addr{netip.MustParseAddr("10.0.0.2"), netip.MustParseAddr("10.0.0.5")}
	err := NewMultipleManagersError(addrs)

	assert.Contains(t, err.Error(), "10.0.0.2")
	assert.Contains(t, err.Error(), "10.0.0.5")

	var conflict *ConflictingManagers
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, addrs, conflict.Addresses)
}

func TestToMyError_WithOrdinaryError(t *testing.T) {
	assert.Nil(t, ToMyError(errors.New("plain")))
	assert.Equal(t, "", ToMyErrorCode(errors.New("plain")))
	assert.Equal(t, ErrNoRoute, ToMyErrorCode(NewNoRouteError("x", nil)))
}
