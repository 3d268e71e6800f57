package repo

import (
	"context"
	"database/sql"
)

// BugLogRepo persists bug_reports entries. Like user_logs, the table is
// append-only and written only as a side effect of failed operations.
type BugLogRepo struct {
	db *sql.DB
}

func NewBugLogRepo(db *sql.DB) *BugLogRepo {
	return &BugLogRepo{db: db}
}

// Insert records a bug report. userID may be nil when the failing operation
// had no resolved user.
func (r *BugLogRepo) Insert(ctx context.Context, userID *int, bugType, details string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bug_reports (user_id, bug_type, details) VALUES ($1, $2, $3)`,
		userID, bugType, details,
	)
	return err
}
