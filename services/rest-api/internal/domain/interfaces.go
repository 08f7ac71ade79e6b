package domain

import (
	"context"

	"github.com/jmoiron/sqlx"

	"translation-practice/pkg/auth/jwt"
)

// Every storage method takes the unit of work it runs in: either the pooled
// *sqlx.DB or the *sqlx.Tx of the current request.

// UserRepository persists identities.
type UserRepository interface {
	Create(ctx context.Context, q sqlx.ExtContext, email, passwordHash string) (*User, error)
	GetByEmail(ctx context.Context, q sqlx.ExtContext, email string) (*User, error)
	GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*User, error)
	Delete(ctx context.Context, q sqlx.ExtContext, id int64) error
}

// QuestionRepository persists shared practice questions.
type QuestionRepository interface {
	Create(ctx context.Context, q sqlx.ExtContext, japanese, english string, difficulty int) (*Question, error)
	GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*Question, error)
	GetByIDForUpdate(ctx context.Context, q sqlx.ExtContext, id int64) (*Question, error)
	UpdateText(ctx context.Context, q sqlx.ExtContext, id int64, japanese, english string) error
}

// MistakeRepository persists per-user mistake counters.
type MistakeRepository interface {
	Record(ctx context.Context, q sqlx.ExtContext, userID int64, word, usage string) (*MistakeWord, error)
	Top(ctx context.Context, q sqlx.ExtContext, userID int64, limit int) ([]MistakeWord, error)
}

// FavoriteRepository persists bookmarks. All lookups are scoped by user.
type FavoriteRepository interface {
	Create(ctx context.Context, q sqlx.ExtContext, fav *FavoriteQuestion) error
	GetForUser(ctx context.Context, q sqlx.ExtContext, userID, id int64) (*FavoriteQuestion, error)
	CountForQuestion(ctx context.Context, q sqlx.ExtContext, userID, questionID int64) (int, error)
	DeleteForQuestion(ctx context.Context, q sqlx.ExtContext, userID, questionID int64) (int64, error)
	ListByUser(ctx context.Context, q sqlx.ExtContext, userID int64) ([]FavoriteQuestion, error)
}

// AnswerRepository appends submitted answers.
type AnswerRepository interface {
	Create(ctx context.Context, q sqlx.ExtContext, answer *UserAnswer) error
}

// PasswordHasher hashes and verifies passwords. Verify never fails loudly:
// any internal problem reads as a mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenManager issues and validates access tokens.
type TokenManager interface {
	Sign(subject string) (string, error)
	Validate(token string) (*jwt.Claims, error)
}

// Completer is the external text-completion capability.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a system instruction plus one user prompt.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}
