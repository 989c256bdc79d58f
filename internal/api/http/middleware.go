package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/logger"
	"juntaai-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "user_claims"

// AuthMiddleware validates externally-issued bearer tokens and attaches the
// claims to the request context. Ownership checks happen in the services;
// this layer only establishes who the actor is.
func AuthMiddleware(validator security.TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token", Code: "unauthenticated"})
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "unauthenticated"})
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated actor's claims.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*security.UserClaims)
	if !ok || claims == nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// ProfileFromClaims builds the actor's profile record from token identity.
func ProfileFromClaims(claims *security.UserClaims) *domain.Profile {
	return &domain.Profile{
		ID:       claims.UserID,
		FullName: claims.FullName,
		Email:    claims.Email,
	}
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
