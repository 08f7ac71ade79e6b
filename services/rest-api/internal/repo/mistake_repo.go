package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
)

// MistakeRepo stores per-user mistake counters.
type MistakeRepo struct{}

// NewMistakeRepo creates the mistake repository.
func NewMistakeRepo() *MistakeRepo {
	return &MistakeRepo{}
}

// Record bumps the counter for (user, word), creating it at 1. The latest
// usage context wins.
func (r *MistakeRepo) Record(ctx context.Context, q sqlx.ExtContext, userID int64, word, usage string) (*domain.MistakeWord, error) {
	m := &domain.MistakeWord{
		UserID:        userID,
		Word:          word,
		Context:       usage,
		LastMistakeAt: time.Now().UTC(),
	}

	query := q.Rebind(`
		INSERT INTO mistake_words (user_id, word, context, count, last_mistake_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT (user_id, word) DO UPDATE SET
			count = mistake_words.count + 1,
			context = excluded.context,
			last_mistake_at = excluded.last_mistake_at
		RETURNING id, count
	`)

	err := q.QueryRowxContext(ctx, query, m.UserID, m.Word, m.Context, m.LastMistakeAt).Scan(&m.ID, &m.Count)
	if err != nil {
		return nil, fmt.Errorf("record mistake: %w", err)
	}

	return m, nil
}

// Top returns the user's most frequent mistakes, most recent first on ties.
func (r *MistakeRepo) Top(ctx context.Context, q sqlx.ExtContext, userID int64, limit int) ([]domain.MistakeWord, error) {
	query := q.Rebind(`
		SELECT id, user_id, word, context, count, last_mistake_at
		FROM mistake_words
		WHERE user_id = ?
		ORDER BY count DESC, last_mistake_at DESC, id DESC
		LIMIT ?
	`)

	words := []domain.MistakeWord{}
	if err := sqlx.SelectContext(ctx, q, &words, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list mistakes: %w", err)
	}

	return words, nil
}
