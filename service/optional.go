package service

// Ptr returns a pointer to a copy of v. Optional values (a probe's role, an outcome's
// exit code) are represented as pointers with nil meaning absent.
func Ptr[T any](v T) *T {
	return &v
}

// ValueOr returns *p, or fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
