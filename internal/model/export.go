package model

import "time"

// Export records one download of a session's summary. The archive is an
// append-only log of what left the system; sessions themselves are never
// persisted.
type Export struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Filename   string    `json:"filename"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
}
