package services

import "sync"

// accountLocks serializes work per account identifier. Uploads for the
// same account must not interleave between the quota check and the commit;
// cross-account work proceeds in parallel.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the account's mutex and returns its release func.
func (l *accountLocks) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
