package http

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/YelzhanWeb/goodplatters/internal/adapter/logger"
	"github.com/YelzhanWeb/goodplatters/internal/domain"
	"github.com/YelzhanWeb/goodplatters/internal/interfaces"
)

const (
	sessionCookieName = "goodplatters_session"
	loginPath         = "/login"
)

type AuthHandler struct {
	service interfaces.AuthService
	logger  logger.Logger
	ttl     time.Duration
}

func NewAuthHandler(service interfaces.AuthService, ttl time.Duration, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
		ttl:     ttl,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	session, err := h.service.Login(r.Context(), req.Password, clientKey(r))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"expiresAt":     session.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), sessionID(r)); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
}

// RequireAdmin rejects API calls without a live session with 401 JSON.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.service.Authorize(r.Context(), sessionID(r)); err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage sends anonymous visitors of admin pages to the login page.
func (h *AuthHandler) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.service.Authorize(r.Context(), sessionID(r)); err != nil {
			if !isUnauthorized(err) {
				respondError(w, r, h.logger, err)
				return
			}
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticated reports whether the request carries a live session.
func (h *AuthHandler) Authenticated(r *http.Request) bool {
	_, err := h.service.Authorize(r.Context(), sessionID(r))
	return err == nil
}

func sessionID(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// clientKey identifies the caller for login throttling.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func isUnauthorized(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}
