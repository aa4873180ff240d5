package session

import (
	"sync"
	"time"
)

// Listener is notified with the new state after every change.
type Listener func(s Session, ok bool)

// Store is the shared session cell.
type Store struct {
	mu        sync.RWMutex
	current   *Session
	listeners map[uint64]Listener
	nextID    uint64
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		listeners: make(map[uint64]Listener),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns a snapshot of the session. ok is false when no session is
// held or the held session has expired. The first read that finds the
// session expired drops it and notifies listeners as Clear would.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	cur := s.current
	expired := cur != nil && cur.Expired(s.now())
	s.mu.RUnlock()

	if cur == nil {
		return Session{}, false
	}
	if !expired {
		return *cur, true
	}

	s.mu.Lock()
	if s.current != cur {
		// replaced or cleared concurrently; that writer notified
		s.mu.Unlock()
		return s.Current()
	}
	s.current = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Session{}, false)
	return Session{}, false
}

// Set replaces the held session and notifies listeners.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	cp := sess
	s.current = &cp
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, sess, true)
}

// Clear removes the held session and notifies listeners.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, Session{}, false)
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Listeners run synchronously on the writer's goroutine,
// outside the store lock.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// snapshotListeners must be called with s.mu held.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, sess Session, ok bool) {
	for _, l := range listeners {
		l(sess, ok)
	}
}
