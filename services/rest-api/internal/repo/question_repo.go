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

// QuestionRepo stores the shared question catalog.
type QuestionRepo struct{}

// NewQuestionRepo creates the question repository.
func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{}
}

// Create inserts a question and returns it with its id.
func (r *QuestionRepo) Create(ctx context.Context, q sqlx.ExtContext, japanese, english string, difficulty int) (*domain.Question, error) {
	question := &domain.Question{
		JapaneseText:    japanese,
		EnglishText:     english,
		DifficultyLevel: difficulty,
		CreatedAt:       time.Now().UTC(),
	}

	query := q.Rebind(`
		INSERT INTO questions (japanese_text, english_text, difficulty_level, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	err := q.QueryRowxContext(ctx, query,
		question.JapaneseText,
		question.EnglishText,
		question.DifficultyLevel,
		question.CreatedAt,
	).Scan(&question.ID)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}

	return question, nil
}

// GetByID returns ErrQuestionNotFound when no row matches.
func (r *QuestionRepo) GetByID(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.Question, error) {
	return r.get(ctx, q, id, "")
}

// GetByIDForUpdate is GetByID that also locks the row until the transaction
// ends. SQLite has no row locks; its single connection already serializes
// writers.
func (r *QuestionRepo) GetByIDForUpdate(ctx context.Context, q sqlx.ExtContext, id int64) (*domain.Question, error) {
	return r.get(ctx, q, id, lockClause(q.DriverName()))
}

func (r *QuestionRepo) get(ctx context.Context, q sqlx.ExtContext, id int64, lock string) (*domain.Question, error) {
	var question domain.Question

	query := q.Rebind(`
		SELECT id, japanese_text, english_text, difficulty_level, created_at
		FROM questions
		WHERE id = ?
	` + lock)

	err := sqlx.GetContext(ctx, q, &question, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &question, nil
}

// UpdateText overwrites both texts of an existing question.
func (r *QuestionRepo) UpdateText(ctx context.Context, q sqlx.ExtContext, id int64, japanese, english string) error {
	query := q.Rebind(`
		UPDATE questions
		SET japanese_text = ?, english_text = ?
		WHERE id = ?
	`)

	res, err := q.ExecContext(ctx, query, japanese, english, id)
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update question: %w", err)
	}
	if n == 0 {
		return domain.ErrQuestionNotFound
	}

	return nil
}
