package table

import "sync"

// FairMutex is a FIFO ticket lock: a mutex with capacity one whose waiters
// are granted the lock in the order they arrived. The stdlib sync.Mutex only
// documents starvation mitigation as an implementation detail; the dealer and
// every participant goroutine contend on the same table lock, and none of
// them may starve the others, so fairness has to be a guarantee, not a side
// effect.
type FairMutex struct {
	mu      sync.Mutex
	cond    *sync.Cond
	ticket  uint64
	serving uint64
}

// NewFairMutex returns an unlocked FairMutex ready for use.
func NewFairMutex() *FairMutex {
	m := &FairMutex{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Lock blocks until every goroutine that called Lock earlier has called
// Unlock.
func (m *FairMutex) Lock() {
	m.mu.Lock()
	my := m.ticket
	m.ticket++
	for my != m.serving {
		m.cond.Wait()
	}
	m.mu.Unlock()
}

// Unlock releases the lock and admits the next waiter in arrival order.
func (m *FairMutex) Unlock() {
	m.mu.Lock()
	m.serving++
	m.cond.Broadcast()
	m.mu.Unlock()
}
