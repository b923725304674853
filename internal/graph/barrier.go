package graph

import "sync"

// Barrier is a countdown synchronization primitive. The driver creates it
// sized to a dispatch wave, each worker calls Signal as its task finishes,
// and the driver blocks in Wait until the count reaches zero.
type Barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int
}

// NewBarrier creates a Barrier that releases waiters after count signals.
func NewBarrier(count int) *Barrier {
	b := &Barrier{count: count}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Signal records one completion. When the count reaches zero every
// goroutine blocked in Wait is released. Signaling an already-drained
// barrier is a double-count and panics: it means a task completed twice.
func (b *Barrier) Signal() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		panic("graph: barrier signaled below zero")
	}
	b.count--
	if b.count == 0 {
		b.cond.Broadcast()
	}
}

// Wait blocks until the count reaches zero. It returns immediately if the
// barrier is already drained.
func (b *Barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for b.count > 0 {
		b.cond.Wait()
	}
}
