// Package signal provides observable cells with synchronous change notification.
package signal

import "sync"

// Signal is a reactive value that notifies subscribers when it changes.
// Subscribers run on the goroutine that called Set, in registration order.
type Signal[T comparable] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T comparable] struct {
	id int
	fn func(old, new T)
}

// New creates a Signal with an initial value.
func New[T comparable](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers.
// Setting the value it already holds is a no-op.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	old := s.value
	if old == v {
		s.mu.Unlock()
		return
	}
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(old, v)
	}
}

// Subscribe registers fn to be called after every change.
// The returned func removes the subscription; calling it twice is harmless.
func (s *Signal[T]) Subscribe(fn func(old, new T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (s *Signal[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
