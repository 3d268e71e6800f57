package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/advcompro/songvault/internal/auth"
)

var mwSecret = []byte("mw-test-secret")

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		json.NewEncoder(w).Encode(map[string]int{"user_id": id})
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := auth.IssueToken(42, mwSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	h := RequireAuth(mwSecret)(protectedEcho(t))
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var out map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["user_id"] != 42 {
		t.Errorf("user_id: got %d, want 42", out["user_id"])
	}
}

func TestRequireAuth_UniformUnauthorized(t *testing.T) {
	valid, _ := auth.IssueToken(1, mwSecret, time.Hour)
	otherKey, _ := auth.IssueToken(1, []byte("someone-else"), time.Hour)
	expired, _ := auth.IssueToken(1, mwSecret, -time.Minute)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong key", "Bearer " + otherKey},
		{"expired", "Bearer " + expired},
		{"tampered", "Bearer " + valid[:len(valid)-2] + "xx"},
	}

	h := RequireAuth(mwSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rr.Code)
			}
			if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("WWW-Authenticate: got %q, want Bearer", got)
			}
			var out map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			// All failure categories produce the same body.
			if out["detail"] != "Could not validate credentials" {
				t.Errorf("detail: got %q", out["detail"])
			}
		})
	}
}
