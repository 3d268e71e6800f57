package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/advcompro/songvault/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
// Create inserts a new user. A unique-constraint violation is mapped to
// ErrDuplicateUsername or ErrDuplicateEmail by constraint name.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash, email string) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email)
		VALUES ($1, $2, $3)
		RETURNING user_id, username, password_hash, email, created_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, passwordHash, email).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "email") {
				return nil, ErrDuplicateEmail
			}
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, email, created_at
		FROM users
		WHERE username = $1
	`

	return r.scanOne(ctx, query, username)
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, email, created_at
		FROM users
		WHERE email = $1
	`

	return r.scanOne(ctx, query, email)
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT user_id, username, password_hash, email, created_at
		FROM users
		WHERE user_id = $1
	`

	return r.scanOne(ctx, query, id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return user, nil
}
