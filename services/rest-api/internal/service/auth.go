package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
	"translation-practice/services/rest-api/internal/validator"
)

// AuthService registers and logs in users.
type AuthService struct {
	users  domain.UserRepository
	hasher domain.PasswordHasher
	tokens domain.TokenManager
}

// NewAuthService creates the auth service.
func NewAuthService(users domain.UserRepository, hasher domain.PasswordHasher, tokens domain.TokenManager) *AuthService {
	slog.Info("creating auth service")
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register creates a user and returns an access token for it.
func (s *AuthService) Register(ctx context.Context, q sqlx.ExtContext, email, password string) (string, error) {
	op := "AuthService.Register"

	slog.Info("register attempt", slog.String("op", op), slog.String("email", email))

	if err := validator.ValidateEmail(email); err != nil {
		slog.Warn("invalid email", slog.String("op", op), slog.String("error", err.Error()))
		return "", domain.Invalid(err)
	}
	if err := validator.ValidatePassword(password); err != nil {
		slog.Warn("invalid password", slog.String("op", op), slog.String("error", err.Error()))
		return "", domain.Invalid(err)
	}

	_, err := s.users.GetByEmail(ctx, q, email)
	if err == nil {
		slog.Warn("user already exists", slog.String("op", op), slog.String("email", email))
		return "", domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%s: hash password: %w", op, err)
	}

	// The unique constraint still decides when two registrations race.
	user, err := s.users.Create(ctx, q, email, passwordHash)
	if errors.Is(err, domain.ErrUserExists) {
		slog.Warn("user already exists", slog.String("op", op), slog.String("email", email))
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.tokens.Sign(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: sign token: %w", op, err)
	}

	slog.Info("user registered", slog.String("op", op), slog.Int64("user_id", user.ID))

	return token, nil
}

// Login exchanges credentials for an access token. An unknown email and a
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, q sqlx.ExtContext, email, password string) (string, error) {
	op := "AuthService.Login"

	slog.Info("login attempt", slog.String("op", op), slog.String("email", email))

	if email == "" {
		return "", domain.Invalid(validator.ErrEmailRequired)
	}
	if password == "" {
		return "", domain.Invalid(validator.ErrPasswordRequired)
	}

	user, err := s.users.GetByEmail(ctx, q, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		slog.Warn("user not found", slog.String("op", op), slog.String("email", email))
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		slog.Warn("invalid password", slog.String("op", op), slog.Int64("user_id", user.ID))
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: sign token: %w", op, err)
	}

	slog.Info("user logged in", slog.String("op", op), slog.Int64("user_id", user.ID))

	return token, nil
}

// DeleteAccount removes the caller and everything they own.
func (s *AuthService) DeleteAccount(ctx context.Context, q sqlx.ExtContext, id domain.Identity) error {
	op := "AuthService.DeleteAccount"

	if err := s.users.Delete(ctx, q, id.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("account deleted", slog.String("op", op), slog.Int64("user_id", id.ID))
	return nil
}
