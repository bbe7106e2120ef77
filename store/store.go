// Package store keeps editor sessions in memory. Persistence of graphs is
// out of scope; export/import of the flat record set is the only durable
// surface, so sessions live in an LRU-bounded demo-memory store.
package store

import (
	"sync"
	"time"

	"concept-graph/editor"
	apperrors "concept-graph/errors"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// Session binds one editor instance to a session id. LastActive drives the
// retention sweep; the mutex serializes graph mutations (one writer at a
// time, matching the single-threaded semantics of the editing surface).
type Session struct {
	ID         uuid.UUID
	Editor     *editor.Editor
	CreatedAt  time.Time
	lastActive time.Time

	mu sync.Mutex
}

// Do runs fn with exclusive access to the session's editor and touches the
// activity timestamp.
func (s *Session) Do(fn func(*editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return fn(s.Editor)
}

// LastActive returns the time of the most recent operation on the session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SessionStore is an LRU-bounded in-memory session registry. When full, the
// least recently used session is evicted.
type SessionStore struct {
	cache  *lru.Cache
	logger *zap.Logger
}

// NewSessionStore creates a store holding at most maxSessions sessions.
func NewSessionStore(maxSessions int, logger *zap.Logger) (*SessionStore, error) {
	cache, err := lru.NewWithEvict(maxSessions, func(key, _ interface{}) {
		logger.Info("Evicted least recently used session", zap.Any("session_id", key))
	})
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to create session cache")
	}
	return &SessionStore{cache: cache, logger: logger}, nil
}

// Create registers a new editor session. The admin flag is fixed for the
// session's lifetime.
func (ss *SessionStore) Create(admin bool) *Session {
	now := time.Now()
	session := &Session{
		ID:         uuid.New(),
		Editor:     editor.New(ss.logger, admin),
		CreatedAt:  now,
		lastActive: now,
	}
	ss.cache.Add(session.ID, session)
	ss.logger.Info("Created editor session",
		zap.String("session_id", session.ID.String()),
		zap.Bool("admin", admin))
	return session
}

// Get returns the session with the given id.
func (ss *SessionStore) Get(id uuid.UUID) (*Session, error) {
	value, ok := ss.cache.Get(id)
	if !ok {
		return nil, apperrors.WrapErrorf(apperrors.ErrNotFound, "session %s", id)
	}
	return value.(*Session), nil
}

// Delete removes the session with the given id. Unknown ids are a no-op.
func (ss *SessionStore) Delete(id uuid.UUID) {
	ss.cache.Remove(id)
}

// Stale returns ids of sessions whose last activity is before the cutoff.
// Peek is used so the sweep itself does not refresh recency.
func (ss *SessionStore) Stale(cutoff time.Time) []uuid.UUID {
	var stale []uuid.UUID
	for _, key := range ss.cache.Keys() {
		value, ok := ss.cache.Peek(key)
		if !ok {
			continue
		}
		session := value.(*Session)
		if session.LastActive().Before(cutoff) {
			stale = append(stale, session.ID)
		}
	}
	return stale
}

// Len returns the number of live sessions.
func (ss *SessionStore) Len() int {
	return ss.cache.Len()
}
