package pointer

// ValueOr returns *p, or fallback when p is nil.
func ValueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}

	return *p
}

// Value returns *p, or the zero value of T when p is nil.
func Value[T any](p *T) T {
	var zero T
	return ValueOr(p, zero)
}
