package service

import (
	"time"

	"myfleet/helpers"
	"myfleet/interfaces"
)

// timeProvider implements interfaces.TimeProvider by calling the injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider backed by now. Panics on nil now.
//
// Built in cmd/myfleet with time.Now().UTC; tests pass a fixed or stepping clock.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

func (t *timeProvider) Now() time.Time {
	return t.now()
}
