package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	registered := env.register(t, "learner@example.com")

	token, err := env.auth.Login(ctx, env.store.DB(), "learner@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := env.tokens.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.Subject != "learner@example.com" {
		t.Errorf("subject = %q", claims.Subject)
	}

	id, err := env.gate.Authenticate(ctx, env.store.DB(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if id != registered {
		t.Errorf("login identity = %+v, want %+v", id, registered)
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "taken@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "duplicate", email: "taken@example.com", password: "password123", wantErr: domain.ErrUserExists},
		{name: "bad email", email: "not-an-email", password: "password123", wantErr: domain.ErrValidation},
		{name: "short password", email: "new@example.com", password: "short", wantErr: domain.ErrValidation},
		{name: "empty password", email: "new@example.com", password: "", wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, env.store.DB(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := countRows(t, env.store.DB(), "SELECT COUNT(*) FROM users WHERE email = ?", "taken@example.com"); n != 1 {
		t.Errorf("users with duplicate email = %d, want 1", n)
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "user@example.com")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "wrong password", email: "user@example.com", password: "wrong-password", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown user", email: "ghost@example.com", password: "password123", wantErr: domain.ErrInvalidCredentials},
		{name: "other case", email: "USER@example.com", password: "password123", wantErr: domain.ErrInvalidCredentials},
		{name: "missing email", email: "", password: "password123", wantErr: domain.ErrValidation},
		{name: "missing password", email: "user@example.com", password: "", wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := env.auth.Login(ctx, env.store.DB(), tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if token != "" {
				t.Error("Login() returned a token on failure")
			}
		})
	}
}

func TestAuthService_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	id := env.register(t, "leaving@example.com")
	q := env.question(t, "さようなら")
	if err := env.inTx(t, func(tx sqlx.ExtContext) error {
		_, err := env.favorites.Toggle(ctx, tx, id, q.ID)
		return err
	}); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	if err := env.auth.DeleteAccount(ctx, env.store.DB(), id); err != nil {
		t.Fatalf("DeleteAccount() error = %v", err)
	}

	if n := countRows(t, env.store.DB(), "SELECT COUNT(*) FROM favorite_questions WHERE user_id = ?", id.ID); n != 0 {
		t.Errorf("favorites left after account deletion: %d", n)
	}
	if err := env.auth.DeleteAccount(ctx, env.store.DB(), id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second DeleteAccount() error = %v, want not found", err)
	}
}
