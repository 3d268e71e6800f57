package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestActionLogRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	userID := 1
	mock.ExpectExec(`INSERT INTO user_logs \(user_id, action_type, details\)`).
		WithArgs(1, "register", "User registered: alice").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewActionLogRepo(db)
	if err := repo.Insert(context.Background(), &userID, "register", "User registered: alice"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestActionLogRepo_Insert_NoUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO user_logs \(user_id, action_type, details\)`).
		WithArgs(nil, "user_creation", "Username already exists").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewActionLogRepo(db)
	if err := repo.Insert(context.Background(), nil, "user_creation", "Username already exists"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestActionLogRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	userID := 1
	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, action_type, COALESCE\(details,''\), timestamp FROM user_logs`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "action_type", "details", "timestamp"}).
			AddRow(2, userID, "login", "User logged in: alice", now).
			AddRow(1, userID, "register", "User registered: alice", now))

	repo := NewActionLogRepo(db)
	entries, err := repo.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].ActionType != "login" {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
