// Package worker runs background maintenance for the session registry.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/yangwenmai/minutes/internal/model"
)

// SessionStore lists live sessions and removes them by id.
type SessionStore interface {
	All() []*model.Session
	Delete(id string) error
}

// Reaper periodically evicts sessions that have been idle for longer than
// the configured TTL. A session's idle time is measured from its last
// mutation, so an active conversation keeps its session alive.
type Reaper struct {
	store    SessionStore
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
}

// New creates a new Reaper.
func New(store SessionStore, ttl, interval time.Duration) *Reaper {
	return &Reaper{store: store, ttl: ttl, interval: interval, now: time.Now}
}

// Start begins the polling loop. It blocks until ctx is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	slog.Info("session reaper started", "ttl", r.ttl.String(), "interval", r.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("session reaper stopped")
			return
		case <-time.After(r.interval):
		}
		r.sweep()
	}
}

// sweep deletes every session whose last activity is older than the TTL.
func (r *Reaper) sweep() {
	cutoff := r.now().Add(-r.ttl)
	for _, sess := range r.store.All() {
		view := sess.Snapshot()
		if view.UpdatedAt.After(cutoff) {
			continue
		}
		if err := r.store.Delete(view.ID); err != nil {
			// Already removed by a concurrent delete.
			continue
		}
		slog.Info("evicted idle session",
			"session_id", view.ID,
			"idle", r.now().Sub(view.UpdatedAt).String())
	}
}
