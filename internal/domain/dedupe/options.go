package dedupe

// Option applies a configuration option to the List.
type Option func(*List)

// WithLimit caps the number of recorded strings. Zero or negative means
// unbounded.
func WithLimit(limit int) Option {
	return func(l *List) {
		l.limit = limit
	}
}
