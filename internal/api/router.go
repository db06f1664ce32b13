package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/chatlogin/internal/api/apierr"
	"github.com/mcoot/chatlogin/internal/api/handler"
	"github.com/mcoot/chatlogin/internal/api/middleware"
	"github.com/mcoot/chatlogin/internal/services/usernames"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Usernames   *usernames.Service
	StorageType string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	loginHandler := handler.NewLoginHandler(cfg.Usernames, cfg.Logger)

	r.HandleFunc("/login", loginHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", loginHandler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/health", handler.Health(cfg.StorageType)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})

	return r
}
