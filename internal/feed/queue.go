package feed

import "sync"

// refreshQueue is the deduplicating set of locations pending a rebuild.
// Many invalidations within one drain window collapse into a single rebuild
// per location. The queue has its own lock, independent of the snapshot
// store's; neither is ever acquired while holding the other.
type refreshQueue struct {
	mu      sync.Mutex
	pending map[string]struct{}
	order   []string
}

func newRefreshQueue() *refreshQueue {
	return &refreshQueue{pending: make(map[string]struct{})}
}

// add queues location for the next drain. Returns false when the location
// was already queued.
func (q *refreshQueue) add(location string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[location]; ok {
		return false
	}
	q.pending[location] = struct{}{}
	q.order = append(q.order, location)
	return true
}

// drain empties the queue and returns the queued locations in enqueue order.
func (q *refreshQueue) drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.order
	q.order = nil
	q.pending = make(map[string]struct{})
	return out
}
