package middleware

import (
	"context"
	"net/http"
	"strings"

	"slay-store/internal/auth"
	"slay-store/internal/model"

	"github.com/rs/zerolog"
)

// Authenticator resolves a bearer token to a live identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate rejects requests without a valid bearer token for an
// existing account and attaches the caller's identity to the context.
func Authenticate(authn Authenticator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				logger.Debug().Str("path", r.URL.Path).Msg("missing bearer token")
				writeError(w, http.StatusUnauthorized, model.ErrUnauthenticated.Message, model.ErrCodeUnauthorised)
				return
			}

			id, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if model.KindOf(err) == model.KindUnauthenticated {
					logger.Debug().Err(err).Str("path", r.URL.Path).Msg("bearer token rejected")
					writeError(w, http.StatusUnauthorized, err.Error(), model.ErrCodeUnauthorised)
					return
				}
				logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to authenticate request")
				writeError(w, http.StatusInternalServerError, "Internal server error", model.ErrCodeInternalError)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin admits only identities with the admin role. It must run
// after Authenticate.
func RequireAdmin(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.FromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, model.ErrUnauthenticated.Message, model.ErrCodeUnauthorised)
				return
			}
			if !id.IsAdmin() {
				logger.Warn().
					Str("user_id", id.UserID).
					Str("path", r.URL.Path).
					Msg("admin access denied")
				writeError(w, http.StatusForbidden, model.ErrForbidden.Message, model.ErrCodeForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth attaches an identity when a valid token is present and
// otherwise lets the request through untouched.
func OptionalAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if id, err := authn.Authenticate(r.Context(), token); err == nil {
					r = r.WithContext(auth.WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
