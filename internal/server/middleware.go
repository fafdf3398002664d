package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"adra/pkg/types"

	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeySessionToken contextKey = "session_token"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAdmin validates the admin session before any protected handler
// runs. The token arrives either in the encrypted session cookie or as a
// bearer token. A missing token and an invalid one produce distinguishable
// 401 responses.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := s.sessionToken(r)
		if err != nil {
			s.respondError(w, err)
			return
		}

		if _, err := s.guard.Check(r.Context(), token); err != nil {
			s.respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeySessionToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionToken extracts the session token from the request. The cookie is
// authoritative; the Authorization header serves non-browser clients.
func (s *Service) sessionToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.config.CookieName)
	if err == nil {
		var token string
		if err := s.cookie.Decode(s.config.CookieName, cookie.Value, &token); err != nil {
			s.logger.WithError(err).Debug("failed to decode session cookie")
			return "", types.ErrInvalidSession
		}
		return token, nil
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return "", types.ErrNoSession
}

func (s *Service) tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(contextKeySessionToken).(string)
	return token
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
