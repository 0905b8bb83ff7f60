package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/custodia-labs/chatdigest/internal/core/domain"
	"github.com/custodia-labs/chatdigest/internal/logger"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, domain.ErrRateLimited.Error())
		return
	}

	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Password required")
		return
	}

	token, err := s.ports.Auth.Login(r.Context(), req.Password)
	switch {
	case errors.Is(err, domain.ErrPasswordRequired):
		writeError(w, http.StatusBadRequest, "Password required")
		return
	case errors.Is(err, domain.ErrInvalidPassword):
		logger.Warn("rejected viewer login from %s", r.RemoteAddr)
		s.delay(r)
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	case err != nil:
		logger.Error("login: %v", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ports.Auth.TTL() / time.Second),
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": s.authenticated(r)})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// authenticated reports whether the request carries a valid session. With
// the gate disabled every request is authenticated.
func (s *Server) authenticated(r *http.Request) bool {
	if !s.ports.Auth.Enabled() {
		return true
	}
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return false
	}
	if err := s.ports.Auth.Verify(c.Value); err != nil {
		logger.Debug("session rejected: %v", err)
		return false
	}
	return true
}

// gated wraps a handler so it only runs for authenticated requests.
func (s *Server) gated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticated(r) {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	})
}

// delay slows down rejected logins unless the client goes away first.
func (s *Server) delay(r *http.Request) {
	if s.opts.FailDelay <= 0 {
		return
	}
	t := time.NewTimer(s.opts.FailDelay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-r.Context().Done():
	}
}
