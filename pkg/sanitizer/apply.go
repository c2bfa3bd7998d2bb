package sanitizer

// Transform rewrites a value of type T.
type Transform[T any] func(T) T

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, fn := range transforms {
		value = fn(value)
	}
	return value
}

// Compose joins transforms into a single reusable Transform.
func Compose[T any](transforms ...func(T) T) Transform[T] {
	return func(value T) T { return Apply(value, transforms...) }
}
