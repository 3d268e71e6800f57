package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/advcompro/songvault/internal/metrics"
	"github.com/advcompro/songvault/internal/middleware"
	"github.com/advcompro/songvault/internal/recorder"
	"github.com/advcompro/songvault/internal/repo"
)

// ==========================
// SongHandler
// ==========================
type SongHandler struct {
	Songs    *repo.SongRepo
	Recorder *recorder.Recorder
}

// ==========================
// Create Song
// ==========================
// CreateSong inserts a song owned by the authenticated principal.
func (h *SongHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		JSONError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	var input struct {
		Songname string `json:"songname"`
		Songtype string `json:"songtype"`
		Language string `json:"language"`
		Keyword  string `json:"keyword"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Songname == "" {
		fields["songname"] = "required"
	}
	if input.Songtype == "" {
		fields["songtype"] = "required"
	}
	if input.Language == "" {
		fields["language"] = "required"
	}
	if input.Keyword == "" {
		fields["keyword"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	song, err := h.Songs.Create(ctx, userID, input.Songname, input.Songtype, input.Language, input.Keyword, time.Now().UTC())
	if err != nil {
		slog.Error("create song", "user_id", userID, "error", err)
		h.Recorder.Bug(&userID, "song_creation", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.Recorder.Action(&userID, "create_song", "Created song: "+song.Songname)
	metrics.SongsCreatedTotal.Inc()

	JSONResponse(w, song, http.StatusOK)
}

// ==========================
// Remove Song
// ==========================
// RemoveSong deletes the caller's song by name. The delete statement itself
// carries the ownership predicate, so a song owned by another user results in
// 404, never a cross-user delete.
func (h *SongHandler) RemoveSong(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		JSONError(w, "Could not validate credentials", http.StatusUnauthorized)
		return
	}

	songname := r.URL.Query().Get("songname")
	if songname == "" {
		JSONValidationError(w, "validation failed", map[string]string{"songname": "required"}, http.StatusBadRequest)
		return
	}

	if err := h.Songs.DeleteByName(ctx, songname, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "Song not found", http.StatusNotFound)
			return
		}
		slog.Error("remove song", "user_id", userID, "error", err)
		h.Recorder.Bug(&userID, "song_deletion", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	h.Recorder.Action(&userID, "remove_song", "Removed song: "+songname)

	JSONResponse(w, map[string]string{
		"detail": fmt.Sprintf("Song '%s' removed successfully", songname),
	}, http.StatusOK)
}

// ==========================
// List Songs
// ==========================
// ListSongs returns all songs for the requested owner. The endpoint is
// deliberately public and takes the owner id as a query parameter; an empty
// result is a 404, matching the historical behaviour callers depend on.
func (h *SongHandler) ListSongs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userIDStr := r.URL.Query().Get("user_id")
	userID, err := strconv.Atoi(userIDStr)
	if err != nil || userID <= 0 {
		JSONValidationError(w, "validation failed", map[string]string{"user_id": "must be a positive integer"}, http.StatusBadRequest)
		return
	}

	songs, err := h.Songs.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("list songs", "user_id", userID, "error", err)
		h.Recorder.Bug(nil, "song_listing", err.Error())
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if len(songs) == 0 {
		JSONError(w, "No songs found for this user", http.StatusNotFound)
		return
	}

	JSONResponse(w, songs, http.StatusOK)
}
