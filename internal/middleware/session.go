package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/flightboard/flightboard/internal/auth"
	"github.com/flightboard/flightboard/internal/cache"
)

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger *slog.Logger
	Cache  *cache.Cache
}

// RequireSession returns a middleware that authenticates requests via
// session token. It extracts the token from the Authorization header,
// resolves the session in Redis, and injects the session context into
// the request. Requests without a live session get 401.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractSessionToken(r)
			if token == "" {
				cfg.Logger.Warn("session check failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			if !auth.ValidateTokenFormat(token) {
				cfg.Logger.Warn("session check failed",
					slog.String("reason", "invalid_format"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			session, err := cfg.Cache.GetSession(r.Context(), auth.CacheKey(token))
			if err != nil {
				// Expired, revoked, or never existed. One message for
				// all cases so tokens can't be probed.
				cfg.Logger.Warn("session check failed",
					slog.String("reason", "no_session"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeSessionError(w)
				return
			}

			cfg.Logger.Debug("session resolved",
				slog.String("user_id", session.UserID),
				slog.String("token_prefix", session.TokenPrefix),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAnonymous returns a middleware that rejects requests carrying
// a live session. Register and login are anonymous-only: a logged-in
// client must log out first.
func RequireAnonymous(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractSessionToken(r)
			if token == "" || !auth.ValidateTokenFormat(token) {
				next.ServeHTTP(w, r)
				return
			}

			if _, err := cfg.Cache.GetSession(r.Context(), auth.CacheKey(token)); err == nil {
				cfg.Logger.Warn("anonymous-only endpoint called with live session",
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(`{"error":{"code":"ALREADY_AUTHENTICATED","message":"Log out before calling this endpoint"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ExtractSessionToken extracts the session token from the request.
// Expects "Authorization: Bearer <token>".
func ExtractSessionToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeSessionError writes a 401 Unauthorized response.
// Uses the same message for all session failures to prevent enumeration.
func writeSessionError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Invalid or missing session token"}}`))
}
