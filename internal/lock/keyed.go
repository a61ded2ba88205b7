// Package lock serializes critical sections per string key within one
// process. The scheduler uses it so a check-then-commit for a given doctor
// or room cannot interleave with another booking for the same doctor or room.
package lock

import "sync"

type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// mutexFor returns the mutex guarding key, creating it on first use. Mutexes
// are never discarded; the population is bounded by the number of distinct
// doctors and rooms.
func (l *Keyed) mutexFor(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// WithKey runs fn while holding the mutex for key.
func (l *Keyed) WithKey(key string, fn func() error) error {
	m := l.mutexFor(key)
	m.Lock()
	defer m.Unlock()
	return fn()
}

// WithKeys runs fn while holding the mutexes for both keys. Keys are locked
// in lexical order so two callers naming the same pair in opposite order
// cannot deadlock.
func (l *Keyed) WithKeys(a, b string, fn func() error) error {
	if a == b {
		return l.WithKey(a, fn)
	}
	if b < a {
		a, b = b, a
	}
	ma := l.mutexFor(a)
	mb := l.mutexFor(b)
	ma.Lock()
	defer ma.Unlock()
	mb.Lock()
	defer mb.Unlock()
	return fn()
}
