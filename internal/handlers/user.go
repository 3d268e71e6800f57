package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/advcompro/songvault/internal/auth"
	"github.com/advcompro/songvault/internal/metrics"
	"github.com/advcompro/songvault/internal/recorder"
	"github.com/advcompro/songvault/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users    *repo.UserRepo
	Recorder *recorder.Recorder
	Secret   []byte
	TokenTTL time.Duration
}

// ==========================
// Register
// ==========================
// Register creates a user. Uniqueness of username and email is pre-checked
// with two lookups, but the store's unique constraints are the final
// authority: an insert race still comes back as the matching duplicate error.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Username == "" {
		fields["username"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if input.Email == "" {
		fields["email"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	passwordHash, err := auth.HashPassword(input.Password)
	if err != nil {
		slog.Error("register: hash password", "error", err)
		h.Recorder.Bug(nil, "user_creation", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if _, err := h.Users.GetByUsername(ctx, input.Username); err == nil {
		h.Recorder.Bug(nil, "user_creation", "Username already exists")
		JSONError(w, "Username already exists", http.StatusBadRequest)
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		slog.Error("register: username lookup", "error", err)
		h.Recorder.Bug(nil, "user_creation", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if _, err := h.Users.GetByEmail(ctx, input.Email); err == nil {
		h.Recorder.Bug(nil, "user_creation", "Email already exists")
		JSONError(w, "Email already exists", http.StatusBadRequest)
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		slog.Error("register: email lookup", "error", err)
		h.Recorder.Bug(nil, "user_creation", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.Users.Create(ctx, input.Username, passwordHash, input.Email)
	if err != nil {
		// A concurrent registration can slip past the pre-checks and hit the
		// unique constraint here; it gets the same duplicate response.
		switch {
		case errors.Is(err, repo.ErrDuplicateUsername):
			h.Recorder.Bug(nil, "user_creation", "Username already exists")
			JSONError(w, "Username already exists", http.StatusBadRequest)
		case errors.Is(err, repo.ErrDuplicateEmail):
			h.Recorder.Bug(nil, "user_creation", "Email already exists")
			JSONError(w, "Email already exists", http.StatusBadRequest)
		default:
			slog.Error("register: insert user", "error", err)
			h.Recorder.Bug(nil, "user_creation", err.Error())
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		}
		return
	}

	h.Recorder.Action(&user.ID, "register", "User registered: "+user.Username)
	metrics.UserRegistrationsTotal.Inc()

	// The password hash never leaves the server; the model tags it json:"-".
	JSONResponse(w, user, http.StatusOK)
}

// ==========================
// Login
// ==========================
// Login verifies email and password and issues a bearer token. An unknown
// email and a wrong password return the same 401 so the two cases cannot be
// told apart.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Email == "" {
		fields["email"] = "required"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		slog.Error("login: email lookup", "error", err)
		h.Recorder.Bug(nil, "user_login", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.IssueToken(user.ID, h.Secret, h.TokenTTL)
	if err != nil {
		slog.Error("login: issue token", "error", err)
		h.Recorder.Bug(&user.ID, "user_login", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.Recorder.Action(&user.ID, "login", "User logged in: "+user.Username)

	JSONResponse(w, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"created_at":   user.CreatedAt,
	}, http.StatusOK)
}
