package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
)

// Gate resolves the caller of a protected operation from the Authorization
// header. It does not refresh tokens.
type Gate struct {
	tokens domain.TokenManager
	users  domain.UserRepository
}

// NewGate creates the gate.
func NewGate(tokens domain.TokenManager, users domain.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authenticate returns the identity behind a "Bearer <token>" header. Every
// credential problem is domain.ErrUnauthorized; only storage failures are
// reported as something else.
func (g *Gate) Authenticate(ctx context.Context, q sqlx.ExtContext, header string) (domain.Identity, error) {
	op := "Gate.Authenticate"

	token, ok := bearerToken(header)
	if !ok {
		slog.Debug("missing or malformed authorization header", slog.String("op", op))
		return domain.Identity{}, domain.ErrUnauthorized
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		slog.Warn("token rejected",
			slog.String("op", op),
			slog.String("token_prefix", tokenPrefix(token)),
			slog.String("error", err.Error()),
		)
		return domain.Identity{}, domain.ErrUnauthorized
	}

	user, err := g.users.GetByEmail(ctx, q, claims.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		slog.Warn("token subject has no user",
			slog.String("op", op),
			slog.String("token_prefix", tokenPrefix(token)),
		)
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.Identity{ID: user.ID, Email: user.Email}, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

func tokenPrefix(token string) string {
	if len(token) > 10 {
		return token[:10]
	}
	return token
}
