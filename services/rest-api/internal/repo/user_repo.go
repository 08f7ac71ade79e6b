package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
)

// UserRepo stores accounts.
type UserRepo struct{}

// NewUserRepo creates the user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

// Create inserts a user. A taken email returns domain.ErrUserExists.
func (r *UserRepo) Create(ctx context.Context, q sqlx.ExtContext, email, passwordHash string) (*domain.User, error) {
	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query := q.Rebind(`
		INSERT INTO users (email, password_hash, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)

	err := q.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if isUniqueViolation(err) {
		return nil, domain.ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// GetByEmail looks up a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, q sqlx.ExtContext, email string) (*domain.User, error) {
	var user domain.User

	query := q.Rebind(`
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`)

	err := sqlx.GetContext(ctx, q, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// GetByID returns domain.ErrUserNotFound when no row matches.
func (r *UserRepo) GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.User, error) {
	var user domain.User

	query := q.Rebind(`
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`)

	err := sqlx.GetContext(ctx, q, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// Delete removes the user. Favorites, answers and mistake words go with it.
func (r *UserRepo) Delete(ctx context.Context, q sqlx.ExtContext, id int64) error {
	res, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
