package session

import (
	"testing"
	"time"

	"epilag/domain/core"
	"epilag/ports"
)

func newSession() *ports.AnalysisSession {
	return &ports.AnalysisSession{
		ID:        core.SessionID(core.NewID()),
		CreatedAt: time.Now(),
	}
}

func TestStore_PutGet(t *testing.T) {
	store := NewStore(time.Minute)
	s := newSession()
	store.Put(s)

	got, ok := store.Get(s.ID)
	if !ok {
		t.Fatal("stored session not found")
	}
	if got.ID != s.ID {
		t.Errorf("got session %s, want %s", got.ID, s.ID)
	}
}

func TestStore_GetUnknown(t *testing.T) {
	store := NewStore(time.Minute)
	if _, ok := store.Get(core.SessionID(core.NewID())); ok {
		t.Error("unknown session reported as present")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Minute)
	s := newSession()
	store.Put(s)
	store.Delete(s.ID)

	if _, ok := store.Get(s.ID); ok {
		t.Error("deleted session still retrievable")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d after delete, want 0", store.Len())
	}
}

func TestStore_ExpiryOnAccess(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	s := newSession()
	store.Put(s)

	time.Sleep(25 * time.Millisecond)
	if _, ok := store.Get(s.ID); ok {
		t.Error("expired session still retrievable")
	}
}

func TestStore_AccessRefreshesTTL(t *testing.T) {
	store := NewStore(40 * time.Millisecond)
	s := newSession()
	store.Put(s)

	// Keep touching the session past its original lifetime.
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		if _, ok := store.Get(s.ID); !ok {
			t.Fatalf("session expired despite access on iteration %d", i)
		}
	}
}

func TestStore_Sweep(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	store.Put(newSession())
	store.Put(newSession())

	time.Sleep(25 * time.Millisecond)
	fresh := newSession()
	store.Put(fresh)

	if removed := store.sweep(); removed != 2 {
		t.Errorf("sweep removed %d sessions, want 2", removed)
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("sweep removed a live session")
	}
}
