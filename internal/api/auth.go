package api

import (
	"encoding/json"
	"net/http"

	"github.com/grupo-nexus/planner/internal/api/respond"
	"github.com/grupo-nexus/planner/internal/auth"
)

// AuthHandler exposes login/logout over HTTP.
type AuthHandler struct {
	authorizer auth.Authorizer
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(a auth.Authorizer) *AuthHandler {
	return &AuthHandler{authorizer: a}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	sess, err := h.authorizer.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.WriteAuthError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(token) > len(prefix) && token[:len(prefix)] == prefix {
		token = token[len(prefix):]
	}
	if err := h.authorizer.Logout(r.Context(), token); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
