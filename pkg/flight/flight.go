package flight

import "sync"

// Cache memoizes an expensive construction per key and coalesces concurrent
// callers so the work runs at most once. Successful values are kept for the
// lifetime of the cache; failures are not cached, so a later call may try
// again.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	finished map[K]V
	pending  map[K]*job[V]
	work     func(K) (V, error)
}

type job[V any] struct {
	val  V
	err  error
	done chan struct{}
}

func NewCache[K comparable, V any](work func(K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{
		finished: make(map[K]V),
		pending:  make(map[K]*job[V]),
		work:     work,
	}
}

// Get returns the cached value for k, joining an in-flight construction if
// one exists, or running the work itself otherwise.
func (c *Cache[K, V]) Get(k K) (V, error) {
	c.mu.Lock()
	if v, ok := c.finished[k]; ok {
		c.mu.Unlock()
		return v, nil
	}
	if p, ok := c.pending[k]; ok {
		c.mu.Unlock()
		<-p.done
		return p.val, p.err
	}

	j := &job[V]{done: make(chan struct{})}
	c.pending[k] = j
	c.mu.Unlock()

	j.val, j.err = c.work(k)

	c.mu.Lock()
	if j.err == nil {
		c.finished[k] = j.val
	}
	delete(c.pending, k)
	c.mu.Unlock()
	close(j.done)

	return j.val, j.err
}
