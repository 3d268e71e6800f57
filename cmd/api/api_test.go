package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/advcompro/songvault/internal/auth"
	"github.com/advcompro/songvault/internal/config"
)

// TestAPI_RegisterLoginCreateRemove walks the whole flow through the real
// router with a sqlmock-backed DB: register, login, create a song with the
// bearer token, remove it, and see the second removal 404.
func TestAPI_RegisterLoginCreateRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now()
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"user_id", "username", "password_hash", "email", "created_at"}).
			AddRow(1, "alice", hash, "a@x.com", now)
	}

	// Register: username free, email free, insert, action log.
	mock.ExpectQuery(`SELECT user_id, username`).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash", "email", "created_at"}))
	mock.ExpectQuery(`SELECT user_id, username`).WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash", "email", "created_at"}))
	mock.ExpectQuery(`INSERT INTO users`).WithArgs("alice", sqlmock.AnyArg(), "a@x.com").
		WillReturnRows(userRows())
	mock.ExpectExec(`INSERT INTO user_logs`).WithArgs(1, "register", "User registered: alice").
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Login: lookup by email, action log.
	mock.ExpectQuery(`SELECT user_id, username`).WithArgs("a@x.com").
		WillReturnRows(userRows())
	mock.ExpectExec(`INSERT INTO user_logs`).WithArgs(1, "login", "User logged in: alice").
		WillReturnResult(sqlmock.NewResult(2, 1))

	// Create song, action log.
	mock.ExpectQuery(`INSERT INTO songs`).WithArgs(1, "X", "pop", "en", "k", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "songname", "songtype", "language", "keyword", "added_at"}).
			AddRow(1, 1, "X", "pop", "en", "k", now))
	mock.ExpectExec(`INSERT INTO user_logs`).WithArgs(1, "create_song", "Created song: X").
		WillReturnResult(sqlmock.NewResult(3, 1))

	// Remove song, action log; the repeated remove matches nothing.
	mock.ExpectExec(`DELETE FROM songs`).WithArgs("X", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO user_logs`).WithArgs(1, "remove_song", "Removed song: X").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec(`DELETE FROM songs`).WithArgs("X", 1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	cfg := config.Config{
		JWTSecret:      "test-secret-for-integration",
		JWTExpireHours: 1,
	}
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	// 1) Register
	regBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret1", "email": "a@x.com"})
	regResp, err := http.Post(srv.URL+"/users/create", "application/json", bytes.NewReader(regBody))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer regResp.Body.Close()
	if regResp.StatusCode != http.StatusOK {
		t.Fatalf("register status: got %d, want 200", regResp.StatusCode)
	}

	// 2) Login
	loginBody, _ := json.Marshal(map[string]string{"email": "a@x.com", "password": "secret1"})
	loginResp, err := http.Post(srv.URL+"/users/login", "application/json", bytes.NewReader(loginBody))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", loginResp.StatusCode)
	}
	var loginOut struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&loginOut); err != nil || loginOut.AccessToken == "" {
		t.Fatalf("login response: %v", err)
	}
	if loginOut.TokenType != "bearer" {
		t.Errorf("token_type: got %q, want bearer", loginOut.TokenType)
	}

	doAuthed := func(method, path string, body []byte) *http.Response {
		t.Helper()
		var req *http.Request
		if body != nil {
			req, _ = http.NewRequest(method, srv.URL+path, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req, _ = http.NewRequest(method, srv.URL+path, nil)
		}
		req.Header.Set("Authorization", "Bearer "+loginOut.AccessToken)
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
		return resp
	}

	// 3) Create a song with the token
	songBody, _ := json.Marshal(map[string]string{"songname": "X", "songtype": "pop", "language": "en", "keyword": "k"})
	createResp := doAuthed("POST", "/songs/create", songBody)
	defer createResp.Body.Close()
	if createResp.StatusCode != http.StatusOK {
		t.Fatalf("create song status: got %d, want 200", createResp.StatusCode)
	}
	var song struct {
		ID     int `json:"id"`
		UserID int `json:"user_id"`
	}
	if err := json.NewDecoder(createResp.Body).Decode(&song); err != nil {
		t.Fatalf("decode song: %v", err)
	}
	if song.ID != 1 || song.UserID != 1 {
		t.Errorf("unexpected song: %+v", song)
	}

	// 4) Remove it
	removeResp := doAuthed("DELETE", "/songs/remove?songname=X", nil)
	defer removeResp.Body.Close()
	if removeResp.StatusCode != http.StatusOK {
		t.Fatalf("remove status: got %d, want 200", removeResp.StatusCode)
	}
	var removeOut map[string]string
	json.NewDecoder(removeResp.Body).Decode(&removeOut)
	if removeOut["detail"] != "Song 'X' removed successfully" {
		t.Errorf("unexpected detail: %q", removeOut["detail"])
	}

	// 5) Removing again matches nothing
	againResp := doAuthed("DELETE", "/songs/remove?songname=X", nil)
	defer againResp.Body.Close()
	if againResp.StatusCode != http.StatusNotFound {
		t.Fatalf("second remove status: got %d, want 404", againResp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := config.Config{JWTSecret: "test-secret", JWTExpireHours: 1}
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	for _, tc := range []struct{ method, path string }{
		{"POST", "/songs/create"},
		{"DELETE", "/songs/remove?songname=X"},
		{"GET", "/audit"},
	} {
		req, _ := http.NewRequest(tc.method, srv.URL+tc.path, nil)
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", tc.method, tc.path, resp.StatusCode)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// The listing endpoint stays public: no token, owner id from the query string.
func TestAPI_ListSongsPublic(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, user_id, songname`).WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "songname", "songtype", "language", "keyword", "added_at"}))

	cfg := config.Config{JWTSecret: "test-secret", JWTExpireHours: 1}
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/songs?user_id=7")
	if err != nil {
		t.Fatalf("list request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty list status: got %d, want 404", resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
