package core

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrResultNotFound is returned for unknown or expired result ids.
var ErrResultNotFound = errors.New("result not found or expired")

// Defaults for the result store.
const (
	DefaultResultTTL        = 30 * time.Minute
	DefaultResultMaxEntries = 100
)

// Result is a finished workbook waiting to be downloaded.
type Result struct {
	ID        string
	FileName  string
	Data      []byte
	CreatedAt time.Time
}

// ResultStore keeps finished workbooks in memory for a limited time so the
// browser can download them after the result page is rendered. Nothing is
// written to disk; entries are gone when the process exits.
type ResultStore struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*Result
}

// NewResultStore creates a store keeping entries for ttl, holding at most
// maxEntries. When full, the oldest entry is evicted.
func NewResultStore(ttl time.Duration, maxEntries int) *ResultStore {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultResultMaxEntries
	}
	return &ResultStore{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]*Result),
	}
}

// TTL returns how long entries are kept.
func (s *ResultStore) TTL() time.Duration {
	return s.ttl
}

// Put stores data under a new id and returns the id.
func (s *ResultStore) Put(fileName string, data []byte) string {
	r := &Result{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Data:      data,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeLocked()
	for len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.entries[r.ID] = r
	return r.ID
}

// Get returns the entry stored under id.
func (s *ResultStore) Get(id string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.entries[id]
	if !ok || s.expired(r) {
		delete(s.entries, id)
		return nil, ErrResultNotFound
	}
	return r, nil
}

// Len returns the number of stored entries, expired ones included.
func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Purge removes expired entries and returns how many were removed.
func (s *ResultStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked()
}

func (s *ResultStore) expired(r *Result) bool {
	return s.now().Sub(r.CreatedAt) > s.ttl
}

func (s *ResultStore) purgeLocked() int {
	n := 0
	for id, r := range s.entries {
		if s.expired(r) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

func (s *ResultStore) evictOldestLocked() {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.entries[ids[i]].CreatedAt.Before(s.entries[ids[j]].CreatedAt)
	})
	if len(ids) > 0 {
		delete(s.entries, ids[0])
	}
}
