package ptr

// ToString returns a pointer to the given string.
func ToString(s string) *string {
	return &s
}

// Deref returns the value behind the pointer or the zero value when nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
