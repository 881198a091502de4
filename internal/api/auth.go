package api

import (
	"log/slog"
	"net/http"

	"github.com/adhyoctora11-coder/HMTH/internal/auth"
	"github.com/adhyoctora11-coder/HMTH/internal/model"
	"github.com/adhyoctora11-coder/HMTH/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	Store     *store.Store
	JWTSecret string
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Login == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "login and password required")
		return
	}

	user := auth.Authenticate(req.Login, req.Password)
	if user == nil {
		slog.Warn("login failed", "login", req.Login, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.Store.SetSession(r.Context(), *user); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, *user)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "user", user.Name, "role", user.Role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: *user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ClearSession(r.Context()); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, claims.User())
}
