// Package journal keeps the bounded, append-only record of past narration
// and choice events. The formatter reads it back for the "recent story
// timeline" section; collaborators append on successful completions.
package journal

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// EntryType классифицирует запись журнала.
type EntryType string

const (
	EntryTypeEvent     EntryType = "Event"
	EntryTypeChoice    EntryType = "Choice"
	EntryTypeMilestone EntryType = "Milestone"
)

// DefaultCapacity is the number of entries kept before the oldest are pruned.
const DefaultCapacity = 200

// Entry is one immutable historical record. Tick is the ordering key.
type Entry struct {
	ID         string
	Tick       int64
	DateString string
	Text       string
	Type       EntryType
	// ChoiceMade holds the label of the option the player picked, for
	// Choice entries only.
	ChoiceMade string
}

// Store is an ordered in-memory collection with FIFO eviction at capacity.
// Appends may arrive from transport callbacks on other goroutines, so the
// store guards itself with a mutex.
type Store struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewStore создает журнал с заданной вместимостью (<=0 — DefaultCapacity).
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Append adds e to the end of the journal, assigning an id when empty, and
// prunes the oldest entries once the capacity is exceeded.
func (s *Store) Append(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
	return e
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Entries returns a copy of all entries in append order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// RecentTimeline returns up to limit Event and Choice entries sorted by tick
// descending (newest first). Milestones are excluded: they are presentation
// records, not story beats.
func (s *Store) RecentTimeline(limit int) []Entry {
	s.mu.Lock()
	filtered := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Type == EntryTypeEvent || e.Type == EntryTypeChoice {
			filtered = append(filtered, e)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Tick > filtered[j].Tick
	})
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
