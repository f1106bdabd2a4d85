package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/meridianadvisory/site-backend/internal/http/response"
	"github.com/meridianadvisory/site-backend/internal/platform/cms"
	"github.com/meridianadvisory/site-backend/pkg/auth"
	"github.com/meridianadvisory/site-backend/pkg/logger"
)

type loginReq struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type cmsUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Login handles POST /api/auth/login. Credentials go straight to the CMS; on
// success a local session token is minted alongside the CMS JWT.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" || req.Password == "" {
		response.BadRequest(w, "identifier and password are required")
		return
	}

	result, err := h.cmsAuth.Login(r.Context(), identifier, req.Password)
	if err != nil {
		var authErr *cms.AuthError
		if errors.As(err, &authErr) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		response.UpstreamError(w, "Authentication service unavailable")
		return
	}

	var user cmsUser
	if err := json.Unmarshal(result.User, &user); err != nil {
		logger.WarnContext(r.Context(), "Failed to parse CMS user payload", "error", err)
	}

	token, err := auth.NewSessionToken(user.Email, user.Username, "admin",
		h.config.Auth.JWTSecret, h.config.Auth.SessionTokenTTL)
	if err != nil {
		response.InternalError(w, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jwt":   result.JWT,
		"token": token,
		"user":  result.User,
	})
}

// Verify handles GET /api/auth/verify. Local session tokens are checked
// without a CMS round trip; anything else is proxied to the CMS who-am-I
// endpoint.
func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		response.Unauthorized(w, "Missing bearer token")
		return
	}
	token := strings.TrimPrefix(header, "Bearer ")

	if claims, err := auth.Parse(token, h.config.Auth.JWTSecret); err == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"user": map[string]string{
				"email":    claims.Email,
				"username": claims.Username,
				"role":     claims.Role,
			},
		})
		return
	}

	user, err := h.cmsAuth.Me(r.Context(), token)
	if err != nil {
		var authErr *cms.AuthError
		if errors.As(err, &authErr) {
			response.Unauthorized(w, "Invalid token")
			return
		}
		response.UpstreamError(w, "Authentication service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": json.RawMessage(user),
	})
}
