package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, max int) (*ResultStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)}
	s := NewResultStore(ttl, max)
	s.now = clock.now
	return s, clock
}

func TestResultStore_PutGet(t *testing.T) {
	s, _ := newTestStore(time.Minute, 10)

	id := s.Put("out.xlsx", []byte("data"))
	if id == "" {
		t.Fatal("Put returned empty id")
	}

	r, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.FileName != "out.xlsx" || string(r.Data) != "data" {
		t.Errorf("Get = %+v", r)
	}

	if _, err := s.Get("nope"); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("unknown id: got %v, want ErrResultNotFound", err)
	}
}

func TestResultStore_Expiry(t *testing.T) {
	s, clock := newTestStore(time.Minute, 10)

	id := s.Put("a.xlsx", nil)
	clock.advance(59 * time.Second)
	if _, err := s.Get(id); err != nil {
		t.Fatalf("entry expired early: %v", err)
	}

	clock.advance(2 * time.Second)
	if _, err := s.Get(id); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("expired entry: got %v, want ErrResultNotFound", err)
	}
	if s.Len() != 0 {
		t.Errorf("expired entry not removed on Get, Len = %d", s.Len())
	}
}

func TestResultStore_Purge(t *testing.T) {
	s, clock := newTestStore(time.Minute, 10)

	s.Put("old.xlsx", nil)
	clock.advance(2 * time.Minute)
	fresh := s.Put("new.xlsx", nil)

	// old.xlsx was dropped by Put; fresh is the only entry left
	clock.advance(30 * time.Second)
	if n := s.Purge(); n != 0 {
		t.Errorf("Purge removed %d fresh entries", n)
	}
	clock.advance(31 * time.Second)
	if n := s.Purge(); n != 1 {
		t.Errorf("Purge removed %d, want 1", n)
	}
	if _, err := s.Get(fresh); !errors.Is(err, ErrResultNotFound) {
		t.Errorf("purged entry still readable")
	}
}

func TestResultStore_EvictsOldestWhenFull(t *testing.T) {
	s, clock := newTestStore(time.Hour, 2)

	first := s.Put("1.xlsx", nil)
	clock.advance(time.Second)
	second := s.Put("2.xlsx", nil)
	clock.advance(time.Second)
	third := s.Put("3.xlsx", nil)

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, err := s.Get(first); err == nil {
		t.Error("oldest entry should have been evicted")
	}
	for _, id := range []string{second, third} {
		if _, err := s.Get(id); err != nil {
			t.Errorf("Get(%s) failed: %v", id, err)
		}
	}
}

func TestStartResultJanitor_StopsOnCancel(t *testing.T) {
	s := NewResultStore(time.Minute, 10)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		StartResultJanitor(ctx, s, JanitorConfig{Interval: 10 * time.Millisecond})
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}
