// Package session provides the in-memory session registry. Sessions are
// volatile: they live for the lifetime of the process and are removed only
// by an explicit delete.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/yangwenmai/minutes/internal/model"
)

// NotFoundError reports a lookup for a session id that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// Registry is a concurrent map from session id to Session. The registry's
// own lock guards only structural changes to the mapping; per-session state
// is guarded by each session's own mutex, so different sessions can be
// mutated fully in parallel.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewRegistry constructs an empty registry. Tests instantiate a fresh
// registry per case; there is no package-level singleton.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*model.Session)}
}

// Create constructs a new session for the given source filename and returns
// its id. Ids are random UUIDv4, so two concurrent creates never collide.
func (r *Registry) Create(sourceFilename string) string {
	id := uuid.New().String()
	sess := model.NewSession(id, sourceFilename)

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	slog.Info("session created", "session_id", id, "source_filename", sourceFilename)
	return id
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return sess, nil
}

// Delete removes the session for id. The session object becomes
// unreachable, not reusable.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(r.sessions, id)
	slog.Info("session deleted", "session_id", id)
	return nil
}

// Exists reports whether a session with the given id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// Update applies a partial update to the session atomically with respect to
// other operations on the same id: the individual field writes cannot
// interleave with another update or a snapshot of that session.
func (r *Registry) Update(id string, u model.SessionUpdate) error {
	sess, err := r.Get(id)
	if err != nil {
		return err
	}
	sess.Apply(u)
	return nil
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// All returns all live sessions in unspecified order.
func (r *Registry) All() []*model.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

// Clear removes all sessions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.sessions)
	slog.Info("all sessions cleared")
}
