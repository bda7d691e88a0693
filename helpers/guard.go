// Package helpers holds fail-fast guards used by constructors to reject missing dependencies.
package helpers

import (
	"reflect"
	"time"
)

// StrPanic returns s, or panics with msg when s is empty.
//
// Used by adapters for required configuration strings such as a URL scheme or redis key prefix.
func StrPanic(s string, msg string) string {
	if s == "" {
		panic(msg)
	}
	return s
}

// NilPanic returns v, or panics with msg when v is nil. Typed nils (pointer, slice, map,
// chan, func, interface) count as nil.
//
// Called from every service and adapter constructor that takes a collaborator.
func NilPanic[T any](v T, msg string) T {
	if isNil(v) {
		panic(msg)
	}
	return v
}

// DurationPanic returns d, or panics with msg when d is not positive.
//
// Used for per-probe and per-dispatch timeouts where a zero budget would make every call fail.
func DurationPanic(d time.Duration, msg string) time.Duration {
	if d <= 0 {
		panic(msg)
	}
	return d
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
