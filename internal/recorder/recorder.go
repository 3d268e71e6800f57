// Package recorder wraps the append-only log repos with fire-and-forget
// semantics: a failed log write is logged and swallowed, so it can never mask
// or replace the outcome of the operation that triggered it.
package recorder

import (
	"context"
	"log/slog"
	"time"

	"github.com/advcompro/songvault/internal/repo"
)

// writeTimeout bounds each log write independently of the request context, so
// a cancelled request still gets its action recorded.
const writeTimeout = 3 * time.Second

type Recorder struct {
	actions *repo.ActionLogRepo
	bugs    *repo.BugLogRepo
}

func New(actions *repo.ActionLogRepo, bugs *repo.BugLogRepo) *Recorder {
	return &Recorder{actions: actions, bugs: bugs}
}

// Action records a successful user action. userID may be nil.
func (r *Recorder) Action(userID *int, actionType, details string) {
	if r == nil || r.actions == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := r.actions.Insert(ctx, userID, actionType, details); err != nil {
		slog.Warn("action log write failed", "action_type", actionType, "error", err)
	}
}

// Bug records a failure. userID may be nil when no user was resolved.
func (r *Recorder) Bug(userID *int, bugType, details string) {
	if r == nil || r.bugs == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := r.bugs.Insert(ctx, userID, bugType, details); err != nil {
		slog.Warn("bug log write failed", "bug_type", bugType, "error", err)
	}
}
