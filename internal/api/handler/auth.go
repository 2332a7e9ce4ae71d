package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/api/middleware"
	"github.com/shadowhunt/shadowhunt-go/internal/api/request"
	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
)

// AuthHandler handles login, logout and identity endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	setSessionCookie(w, session)
	response.JSON(w, http.StatusOK, response.LoginResponse{
		OK:    true,
		User:  response.UserFromModel(session.User),
		Token: session.Token,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	clearSessionCookie(w)
	response.NoContent(w)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if user == nil {
		response.JSON(w, http.StatusOK, response.MeResponse{LoggedIn: false})
		return
	}

	u := response.UserFromModel(user)
	response.JSON(w, http.StatusOK, response.MeResponse{
		LoggedIn: true,
		User:     &u,
	})
}

// setSessionCookie stores the session token in an http-only cookie so the
// browser clients don't need to manage the token themselves
func setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie overwrites the session cookie with an immediately
// expiring value
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
