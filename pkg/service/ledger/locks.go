package ledger

import "sync"

// accountLocks hands out one mutex per client identifier so that all
// balance-affecting operations against a client's account run in an exclusive
// critical section. Operations on different clients never contend. The row
// lock taken inside the store transaction remains the authoritative guard;
// this table keeps concurrent callers from piling up on the database lock.
//
// Entries are never evicted: the table is bounded by the number of distinct
// clients served by this process.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (l *accountLocks) Lock(key string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
