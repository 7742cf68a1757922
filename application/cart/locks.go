package cart

import "sync"

// sessionLocks serializes cart mutations per session id. Every use case is
// a load-mutate-save round trip over the whole aggregate, which is not safe
// under concurrent writers to the same session: without this, the second
// writer's save silently overwrites the first (lost update). Locks are
// keyed by session id so unrelated sessions never contend.
type sessionLocks struct {
	locks sync.Map // session id -> *sync.Mutex
}

// lock acquires the mutex for a session and returns its unlock function.
func (s *sessionLocks) lock(sessionID string) func() {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// lockPair acquires two session locks in a stable order so concurrent
// merges in opposite directions cannot deadlock.
func (s *sessionLocks) lockPair(a, b string) func() {
	if a == b {
		return s.lock(a)
	}
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	unlockFirst := s.lock(first)
	unlockSecond := s.lock(second)
	return func() {
		unlockSecond()
		unlockFirst()
	}
}
