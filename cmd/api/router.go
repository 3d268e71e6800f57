package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/advcompro/songvault/internal/config"
	"github.com/advcompro/songvault/internal/handlers"
	"github.com/advcompro/songvault/internal/middleware"
	"github.com/advcompro/songvault/internal/recorder"
	"github.com/advcompro/songvault/internal/repo"
)

func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	songRepo := repo.NewSongRepo(db)
	actionRepo := repo.NewActionLogRepo(db)
	bugRepo := repo.NewBugLogRepo(db)
	rec := recorder.New(actionRepo, bugRepo)

	secret := []byte(cfg.JWTSecret)

	userHandler := &handlers.UserHandler{
		Users:    userRepo,
		Recorder: rec,
		Secret:   secret,
		TokenTTL: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	songHandler := &handlers.SongHandler{Songs: songRepo, Recorder: rec}
	auditHandler := &handlers.AuditHandler{Repo: actionRepo}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(0))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public routes. The song listing takes the owner id as a query
	// parameter and requires no token; clients rely on that.
	r.Post("/users/create", userHandler.Register)
	r.Post("/users/login", userHandler.Login)
	r.Get("/songs", songHandler.ListSongs)

	// Protected routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(secret))
		r.Post("/songs/create", songHandler.CreateSong)
		r.Delete("/songs/remove", songHandler.RemoveSong)
		r.Get("/audit", auditHandler.ListActions)
	})

	return r
}
