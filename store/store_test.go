package store

import (
	"testing"
	"time"

	apperrors "concept-graph/errors"
	"concept-graph/editor"

	"go.uber.org/zap"
)

func newTestStore(t *testing.T, maxSessions int) *SessionStore {
	t.Helper()
	ss, err := NewSessionStore(maxSessions, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionStore() error = %v", err)
	}
	return ss
}

func TestCreateGetDelete(t *testing.T) {
	ss := newTestStore(t, 10)

	session := ss.Create(true)
	if session.Editor == nil {
		t.Fatal("session created without editor")
	}
	if !session.Editor.Admin() {
		t.Error("admin flag not carried into editor")
	}

	got, err := ss.Get(session.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != session {
		t.Error("Get() returned a different session")
	}

	ss.Delete(session.ID)
	if _, err := ss.Get(session.ID); !apperrors.IsNotFound(err) {
		t.Errorf("Get() after delete error = %v, want not found", err)
	}

	// Deleting again is a no-op
	ss.Delete(session.ID)
	if ss.Len() != 0 {
		t.Errorf("Len = %d, want 0", ss.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	ss := newTestStore(t, 2)

	first := ss.Create(false)
	second := ss.Create(false)
	// Touch first so second becomes the LRU entry
	if _, err := ss.Get(first.ID); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	third := ss.Create(false)

	if ss.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ss.Len())
	}
	if _, err := ss.Get(second.ID); !apperrors.IsNotFound(err) {
		t.Errorf("LRU session should have been evicted, got err = %v", err)
	}
	if _, err := ss.Get(first.ID); err != nil {
		t.Errorf("recently used session evicted: %v", err)
	}
	if _, err := ss.Get(third.ID); err != nil {
		t.Errorf("newest session missing: %v", err)
	}
}

func TestStaleUsesLastActivity(t *testing.T) {
	ss := newTestStore(t, 10)

	idle := ss.Create(false)
	active := ss.Create(false)
	idle.lastActive = time.Now().Add(-2 * time.Hour)

	if err := active.Do(func(*editor.Editor) error { return nil }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	stale := ss.Stale(time.Now().Add(-time.Hour))
	if len(stale) != 1 || stale[0] != idle.ID {
		t.Errorf("Stale() = %v, want only %s", stale, idle.ID)
	}
}

func TestDoTouchesLastActive(t *testing.T) {
	ss := newTestStore(t, 10)
	session := ss.Create(false)
	before := session.LastActive()

	time.Sleep(time.Millisecond)
	if err := session.Do(func(*editor.Editor) error { return nil }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	if !session.LastActive().After(before) {
		t.Error("Do() did not advance last activity timestamp")
	}
}
