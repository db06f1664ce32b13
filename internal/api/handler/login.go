package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/chatlogin/internal/api/apierr"
	"github.com/mcoot/chatlogin/internal/api/request"
	"github.com/mcoot/chatlogin/internal/api/response"
	"github.com/mcoot/chatlogin/internal/services/usernames"
)

// maxBodyBytes caps login and logout request bodies
const maxBodyBytes = 4 << 10

// LoginHandler handles the join and leave endpoints
type LoginHandler struct {
	usernames *usernames.Service
	logger    *slog.Logger
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(usernames *usernames.Service, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		usernames: usernames,
		logger:    logger,
	}
}

// Login handles POST /login
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decode(w, r, &req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	user, err := h.usernames.Join(r.Context(), req.Username)
	if err != nil {
		if apierr.Status(err) >= http.StatusInternalServerError {
			h.logger.Error("join failed", slog.String("username", req.Username), slog.Any("error", err))
		}
		apierr.WriteError(w, err)
		return
	}

	h.logger.Info("user joined", slog.String("id", string(user.ID)), slog.String("username", user.Username))
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Logout handles POST /logout
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req request.LogoutRequest
	if err := decode(w, r, &req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.usernames.Leave(r.Context(), req.Username); err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.logger.Info("user left", slog.String("username", req.Username))
	response.NoContent(w)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
