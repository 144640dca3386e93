package intake

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the session's case entries in insertion order.
// It is never persisted; a new Store starts empty. Methods are safe for
// concurrent use; Entries and Get return copies.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add appends record to the end of the store and returns the new entry.
func (s *Store) Add(record CaseRecord) Entry {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	e := Entry{
		ID:      uuid.New().String(),
		Record:  record,
		AddedAt: now(),
	}

	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return e
}

// Remove deletes the first entry whose rendered form equals rendered.
// An empty value means nothing is selected and is a no-op.
func (s *Store) Remove(rendered string) bool {
	_, ok := s.removeFirst(func(e Entry) bool { return e.Rendered() == rendered }, rendered == "")
	return ok
}

// RemoveByID deletes the entry with the given ID and returns it.
func (s *Store) RemoveByID(id string) (Entry, bool) {
	return s.removeFirst(func(e Entry) bool { return e.ID == id }, id == "")
}

func (s *Store) removeFirst(match func(Entry) bool, skip bool) (Entry, bool) {
	if skip {
		return Entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if match(e) {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return e, true
		}
	}
	return Entry{}, false
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a copy of the entries in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Rendered returns the rendered form of every entry in insertion order.
func (s *Store) Rendered() []string {
	entries := s.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Rendered()
	}
	return out
}
