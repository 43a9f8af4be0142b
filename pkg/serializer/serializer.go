// Package serializer provides FIFO mutual exclusion scoped by an arbitrary
// string key. It is the only ordering primitive in the SDK: operations
// submitted under the same key run one at a time in submission order, while
// operations under different keys run fully concurrently.
package serializer

import "sync"

// Keyed runs operations serially per key. The zero value is not usable;
// construct with New.
type Keyed struct {
	mu   sync.Mutex
	keys map[string]*queue
}

type queue struct {
	// tail is closed when the most recently enqueued operation finishes.
	tail    chan struct{}
	pending int
}

func New() *Keyed {
	return &Keyed{keys: make(map[string]*queue)}
}

// Do runs op once every operation previously submitted under key has
// finished. Submission order is the order in which Do calls are admitted,
// so concurrent callers race only for their queue position, never for the
// operation itself. op's error (or panic) is propagated to this caller
// only; queued successors still run.
//
// The per-key bookkeeping entry is removed as soon as the key's queue
// drains, so memory stays bounded by the number of keys with in-flight or
// queued operations.
func (k *Keyed) Do(key string, op func() error) error {
	k.mu.Lock()
	q, ok := k.keys[key]
	if !ok {
		q = &queue{}
		k.keys[key] = q
	}
	prev := q.tail
	done := make(chan struct{})
	q.tail = done
	q.pending++
	k.mu.Unlock()

	defer func() {
		close(done)
		k.mu.Lock()
		q.pending--
		if q.pending == 0 {
			delete(k.keys, key)
		}
		k.mu.Unlock()
	}()

	if prev != nil {
		<-prev
	}
	return op()
}
