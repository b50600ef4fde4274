package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kiwari-pos/kds/internal/auth"
	"github.com/kiwari-pos/kds/internal/enum"
)

// AuthHandler handles station authentication. User management lives in the
// POS backend; this service only knows two shared role credentials held as
// bcrypt hashes in config.
type AuthHandler struct {
	passwordHashes map[string]string // role -> bcrypt hash
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(passwordHashes map[string]string, jwtSecret string) *AuthHandler {
	return &AuthHandler{passwordHashes: passwordHashes, jwtSecret: jwtSecret}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// --- Request / Response types ---

type loginRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// --- Handlers ---

// Login handles role + password authentication for station displays.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Role == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "role and password are required"})
		return
	}

	if req.Role != enum.RoleKitchen && req.Role != enum.RoleAdmin {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown role"})
		return
	}

	hash, ok := h.passwordHashes[req.Role]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, req.Role)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, Role: req.Role})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
