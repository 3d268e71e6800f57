package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/advcompro/songvault/internal/models"
)

// ==========================
// SongRepo
// ==========================
type SongRepo struct {
	DB *sql.DB
}

func NewSongRepo(db *sql.DB) *SongRepo {
	return &SongRepo{DB: db}
}

// ==========================
// Create Song
// ==========================
func (r *SongRepo) Create(ctx context.Context, userID int, songname, songtype, language, keyword string, addedAt time.Time) (*models.Song, error) {
	query := `
		INSERT INTO songs (user_id, songname, songtype, language, keyword, added_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, songname, songtype, language, keyword, added_at
	`

	song := &models.Song{}

	err := r.DB.QueryRowContext(ctx, query, userID, songname, songtype, language, keyword, addedAt).
		Scan(&song.ID, &song.UserID, &song.Songname, &song.Songtype, &song.Language, &song.Keyword, &song.AddedAt)

	if err != nil {
		return nil, err
	}

	return song, nil
}

// ==========================
// List By User
// ==========================
func (r *SongRepo) ListByUser(ctx context.Context, userID int) ([]models.Song, error) {
	query := `
		SELECT id, user_id, songname, songtype, language, keyword, added_at
		FROM songs
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var s models.Song
		if err := rows.Scan(&s.ID, &s.UserID, &s.Songname, &s.Songtype, &s.Language, &s.Keyword, &s.AddedAt); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}

	return songs, rows.Err()
}

// ==========================
// Delete By Name
// ==========================
// DeleteByName removes the caller's song in a single statement; the predicate
// itself encodes the ownership check, so another user's song of the same name
// is simply not matched and the result is ErrNotFound.
func (r *SongRepo) DeleteByName(ctx context.Context, songname string, userID int) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM songs WHERE songname = $1 AND user_id = $2`,
		songname, userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
