package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity sizes the internal maps ahead of bulk loads.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
