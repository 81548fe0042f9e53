package session

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// MemoryStore is an in-process Store with LRU eviction and per-entry TTL.
type MemoryStore struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// NewMemoryStore creates a store holding at most maxEntries sessions, each
// expiring ttl after its last write.
func NewMemoryStore(maxEntries int, ttl time.Duration, clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

func (s *MemoryStore) Put(_ context.Context, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := append([]byte(nil), value...)
	expiresAt := s.clock.Now().Add(s.ttl)

	if e, ok := s.entries[id]; ok {
		e.value = v
		e.expiresAt = expiresAt
		s.moveToFront(e)
		return nil
	}

	e := &entry{key: id, value: v, expiresAt: expiresAt}
	s.entries[id] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false, nil
	}
	if !s.clock.Now().Before(e.expiresAt) {
		s.delete(e)
		return nil, false, nil
	}
	s.moveToFront(e)
	return append([]byte(nil), e.value...), true, nil
}

// Ping always succeeds for the in-process store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len reports the number of stored sessions, including expired entries not yet reclaimed.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *MemoryStore) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *MemoryStore) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *MemoryStore) delete(e *entry) {
	delete(s.entries, e.key)
	s.remove(e)
}

func (s *MemoryStore) evictTail() {
	if s.tail == nil {
		return
	}
	s.delete(s.tail)
}
