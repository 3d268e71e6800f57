package models

import "time"

// ActionEntry is one user_logs row. Entries are append-only: they are written as a
// side effect of other operations and never updated or deleted.
type ActionEntry struct {
	ID         int       `json:"id"`
	UserID     *int      `json:"user_id"` // nil when the action has no associated user
	ActionType string    `json:"action_type"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
