package observable

// Set assigns value to *field if it differs, announcing name on the changing channel
// before the assignment and on the changed channel after it. It reports whether the
// field changed. Equal values announce nothing.
func Set[T comparable](b *Base, field *T, value T, name string) bool {
	return SetFunc(b, field, value, name, func(x, y T) bool { return x == y })
}

// SetFunc is like Set but compares values with equal.
func SetFunc[T any](b *Base, field *T, value T, name string, equal func(x, y T) bool) bool {
	if equal(*field, value) {
		return false
	}

	b.RaisePropertyChanging(name)
	*field = value
	b.RaisePropertyChanged(name)

	return true
}

// SetSilently assigns value to *field if it differs and reports whether it did.
// It never announces anything.
func SetSilently[T comparable](field *T, value T) bool {
	if *field == value {
		return false
	}
	*field = value
	return true
}
