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

// FavoriteRepo stores bookmarks. Every lookup is scoped by user.
type FavoriteRepo struct{}

// NewFavoriteRepo creates the favorite repository.
func NewFavoriteRepo() *FavoriteRepo {
	return &FavoriteRepo{}
}

// Create inserts fav and sets its id and timestamps.
func (r *FavoriteRepo) Create(ctx context.Context, q sqlx.ExtContext, fav *domain.FavoriteQuestion) error {
	now := time.Now().UTC()
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = now
	}
	fav.UpdatedAt = now

	query := q.Rebind(`
		INSERT INTO favorite_questions (user_id, question_id, japanese_text, english_answer, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := q.QueryRowxContext(ctx, query,
		fav.UserID,
		fav.QuestionID,
		fav.JapaneseText,
		fav.EnglishAnswer,
		fav.CreatedAt,
		fav.UpdatedAt,
	).Scan(&fav.ID)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	return nil
}

// GetForUser only finds favorites owned by userID.
func (r *FavoriteRepo) GetForUser(ctx context.Context, q sqlx.ExtContext, userID, id int64) (*domain.FavoriteQuestion, error) {
	var fav domain.FavoriteQuestion

	query := q.Rebind(`
		SELECT id, user_id, question_id, japanese_text, english_answer, created_at, updated_at
		FROM favorite_questions
		WHERE id = ? AND user_id = ?
	`)

	err := sqlx.GetContext(ctx, q, &fav, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get favorite: %w", err)
	}

	return &fav, nil
}

// CountForQuestion counts the user's favorites of one question.
func (r *FavoriteRepo) CountForQuestion(ctx context.Context, q sqlx.ExtContext, userID, questionID int64) (int, error) {
	var n int

	query := q.Rebind(`
		SELECT COUNT(*)
		FROM favorite_questions
		WHERE user_id = ? AND question_id = ?
	`)

	if err := sqlx.GetContext(ctx, q, &n, query, userID, questionID); err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}

	return n, nil
}

// DeleteForQuestion removes every favorite row the user has for the question.
func (r *FavoriteRepo) DeleteForQuestion(ctx context.Context, q sqlx.ExtContext, userID, questionID int64) (int64, error) {
	query := q.Rebind(`DELETE FROM favorite_questions WHERE user_id = ? AND question_id = ?`)

	res, err := q.ExecContext(ctx, query, userID, questionID)
	if err != nil {
		return 0, fmt.Errorf("delete favorites: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete favorites: %w", err)
	}

	return n, nil
}

// ListByUser returns the user's favorites, newest first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, q sqlx.ExtContext, userID int64) ([]domain.FavoriteQuestion, error) {
	query := q.Rebind(`
		SELECT id, user_id, question_id, japanese_text, english_answer, created_at, updated_at
		FROM favorite_questions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`)

	favs := []domain.FavoriteQuestion{}
	if err := sqlx.SelectContext(ctx, q, &favs, query, userID); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return favs, nil
}
