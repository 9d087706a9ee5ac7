// Package observable provides a value cell which notifies subscribers
// about changes.
package observable

import (
	"context"
	"errors"
	"sync"
)

// ErrSubscriberLimit is returned when Subscribe exceeds the configured limit.
var ErrSubscriberLimit = errors.New("subscriber limit reached")

// Observable holds a value with a version incremented on every Set.
// Subscribers observe the latest value only; intermediate values may be
// skipped.
type Observable[T comparable] struct {
	lock           sync.Mutex
	value          T
	version        uint64
	subscribers    int
	maxSubscribers int
	changed        chan struct{}
}

// New creates an Observable. maxSubscribers <= 0 means unlimited.
func New[T comparable](initial T, maxSubscribers int) *Observable[T] {
	return &Observable[T]{
		value:          initial,
		version:        1,
		maxSubscribers: maxSubscribers,
		changed:        make(chan struct{}),
	}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.value
}

// Set stores v and wakes up all subscribers.
func (o *Observable[T]) Set(v T) {
	o.lock.Lock()
	o.setLocked(v)
	o.lock.Unlock()
}

// SetIfDifferent stores v only when it differs from the current value.
// It returns true if the value was stored.
func (o *Observable[T]) SetIfDifferent(v T) bool {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.value == v {
		return false
	}
	o.setLocked(v)
	return true
}

func (o *Observable[T]) setLocked(v T) {
	o.value = v
	o.version++
	close(o.changed)
	o.changed = make(chan struct{})
}

// Subscribe creates a Subscriber which sees the current value first.
func (o *Observable[T]) Subscribe() (*Subscriber[T], error) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if o.maxSubscribers > 0 && o.subscribers >= o.maxSubscribers {
		return nil, ErrSubscriberLimit
	}
	o.subscribers++
	return &Subscriber[T]{o: o}, nil
}

// Subscribers returns the number of open subscribers.
func (o *Observable[T]) Subscribers() int {
	o.lock.Lock()
	defer o.lock.Unlock()
	return o.subscribers
}

// Subscriber tracks the last version it has seen.
type Subscriber[T comparable] struct {
	o           *Observable[T]
	lastVersion uint64
	closed      bool
}

// TryNext returns the value if it changed since the last observation.
func (s *Subscriber[T]) TryNext() (T, bool) {
	s.o.lock.Lock()
	defer s.o.lock.Unlock()
	if s.o.version == s.lastVersion {
		var zero T
		return zero, false
	}
	s.lastVersion = s.o.version
	return s.o.value, true
}

// Next waits until the value changed since the last observation.
func (s *Subscriber[T]) Next(ctx context.Context) (T, error) {
	for {
		s.o.lock.Lock()
		if s.o.version != s.lastVersion {
			s.lastVersion = s.o.version
			v := s.o.value
			s.o.lock.Unlock()
			return v, nil
		}
		changed := s.o.changed
		s.o.lock.Unlock()
		select {
		case <-changed:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Close releases the subscription slot.
func (s *Subscriber[T]) Close() {
	s.o.lock.Lock()
	defer s.o.lock.Unlock()
	if !s.closed {
		s.closed = true
		s.o.subscribers--
	}
}
