package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/torosvacas/internal/api/response"
	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/auth"
	"github.com/mcoot/torosvacas/internal/web/middleware"
	"github.com/mcoot/torosvacas/internal/web/templates/layout"
	"github.com/mcoot/torosvacas/internal/web/templates/pages"
)

// AuthHandler handles the sign-in form and sign-out action
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already signed in
		http.Redirect(w, r, "/leaderboard", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, "", "")
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "", "Invalid form data")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	session, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderLogin(w, r, http.StatusUnprocessableEntity, email, "Email and password are required")
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.renderLogin(w, r, http.StatusUnauthorized, email, "Invalid email or password")
		default:
			h.logger.Error("login failed", slog.String("error", err.Error()))
			h.renderLogin(w, r, http.StatusInternalServerError, email, "Sign in is unavailable right now")
		}
		return
	}

	response.SetSession(w, session.Token, session.ExpiresAt)
	http.Redirect(w, r, "/leaderboard", http.StatusSeeOther)
}

// Logout ends the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(response.SessionCookieName); err == nil {
		_ = h.authService.Logout(r.Context(), cookie.Value)
	}

	response.ClearSession(w)
	http.Redirect(w, r, "/leaderboard", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, email, errorMsg string) {
	render(w, r, h.logger, status, pages.Login(pages.LoginData{
		PageData: layout.PageData{Title: "Sign in"},
		Email:    email,
		Error:    errorMsg,
	}))
}
