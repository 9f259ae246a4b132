package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/workflow"
	"github.com/rs/zerolog/log"
)

type contextKey string

const UserKey contextKey = "user"

// Authenticator verifies bearer tokens and attaches the staff identity to the
// request context. The token is the only authorization boundary; whatever a
// client decodes locally is display convenience, never trusted here.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator with the given HMAC secret
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Authenticate middleware parses and validates the Authorization header
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &models.AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid bearer token")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAction gates a route on the role capability table
func RequireAction(action workflow.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			if !workflow.Allowed(user.Role, action) {
				log.Warn().
					Str("username", user.Username).
					Str("role", string(user.Role)).
					Str("action", string(action)).
					Msg("Action forbidden for role")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUser extracts the authenticated staff claims from context
func GetUser(ctx context.Context) (*models.AuthClaims, bool) {
	user, ok := ctx.Value(UserKey).(*models.AuthClaims)
	return user, ok
}
