package handler

import (
	"net/http"

	"github.com/mcoot/chatlogin/internal/api/response"
)

// Health returns a handler for GET /health reporting the storage backend
func Health(storageType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Storage: storageType})
	}
}
