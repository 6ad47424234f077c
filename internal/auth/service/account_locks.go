package service

import "sync"

// accountLocks hands out one mutex per email so that the read-modify-write
// cycle of a login or reset serializes per account instead of globally.
// Entries are never evicted; the map is bounded by the number of distinct
// emails seen, which matches the account collection itself.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given email and returns its unlock func.
func (l *accountLocks) Lock(email string) func() {
	l.mu.Lock()
	m, ok := l.locks[email]
	if !ok {
		m = &sync.Mutex{}
		l.locks[email] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
