package repo

import (
	"context"
	"database/sql"

	"github.com/advcompro/songvault/internal/models"
)

// ActionLogRepo persists user_logs entries. Entries are append-only.
type ActionLogRepo struct {
	db *sql.DB
}

func NewActionLogRepo(db *sql.DB) *ActionLogRepo {
	return &ActionLogRepo{db: db}
}

// Insert records an action. userID may be nil for actions with no associated user.
func (r *ActionLogRepo) Insert(ctx context.Context, userID *int, actionType, details string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_logs (user_id, action_type, details) VALUES ($1, $2, $3)`,
		userID, actionType, details,
	)
	return err
}

// List returns recent action entries, newest first.
func (r *ActionLogRepo) List(ctx context.Context, limit, offset int) ([]models.ActionEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action_type, COALESCE(details,''), timestamp FROM user_logs ORDER BY timestamp DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActionEntry
	for rows.Next() {
		var e models.ActionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.Details, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
