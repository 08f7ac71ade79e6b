package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
)

// Authenticator resolves the caller from an Authorization header.
type Authenticator interface {
	Authenticate(ctx context.Context, q sqlx.ExtContext, header string) (domain.Identity, error)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// RequireAuth rejects requests without a valid bearer token. Every rejection
// looks the same to the client.
func RequireAuth(gate Authenticator, q sqlx.ExtContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := gate.Authenticate(r.Context(), q, r.Header.Get("Authorization"))
			if errors.Is(err, domain.ErrUnauthorized) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
				return
			}
			if err != nil {
				slog.Error("authentication failed", slog.String("op", "middleware.RequireAuth"), slog.Any("error", err))
				writeDetail(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"detail": detail}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
