package checklist

import (
	"sync"

	"github.com/google/uuid"
)

// tenantLocks hands out one RWMutex per tenant. Status writes for a tenant
// take the write lock; snapshot reads (progress, score, revenue) take the
// read lock so they never observe a half-applied write from this process.
// Entries are reference counted and dropped when the last holder releases,
// so the map only holds tenants with a request in flight.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*tenantLock
}

type tenantLock struct {
	sync.RWMutex
	refs int
}

func newTenantLocks() *tenantLocks {
	return &tenantLocks{locks: make(map[uuid.UUID]*tenantLock)}
}

func (l *tenantLocks) acquire(tenantID uuid.UUID) *tenantLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[tenantID]
	if !ok {
		m = &tenantLock{}
		l.locks[tenantID] = m
	}
	m.refs++
	return m
}

func (l *tenantLocks) release(tenantID uuid.UUID, m *tenantLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m.refs--
	if m.refs == 0 {
		delete(l.locks, tenantID)
	}
}

// Lock acquires the tenant's write lock and returns its release func
func (l *tenantLocks) Lock(tenantID uuid.UUID) func() {
	m := l.acquire(tenantID)
	m.Lock()
	return func() {
		m.Unlock()
		l.release(tenantID, m)
	}
}

// RLock acquires the tenant's read lock and returns its release func
func (l *tenantLocks) RLock(tenantID uuid.UUID) func() {
	m := l.acquire(tenantID)
	m.RLock()
	return func() {
		m.RUnlock()
		l.release(tenantID, m)
	}
}

// size reports how many tenants currently hold an entry
func (l *tenantLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
