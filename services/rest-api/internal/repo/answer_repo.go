package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
)

// AnswerRepo appends submitted answers.
type AnswerRepo struct{}

// NewAnswerRepo creates the answer repository.
func NewAnswerRepo() *AnswerRepo {
	return &AnswerRepo{}
}

// Create inserts the answer and sets its id.
func (r *AnswerRepo) Create(ctx context.Context, q sqlx.ExtContext, answer *domain.UserAnswer) error {
	if answer.AnsweredAt.IsZero() {
		answer.AnsweredAt = time.Now().UTC()
	}

	query := q.Rebind(`
		INSERT INTO user_answers (user_id, question_id, favorite_question_id, user_answer, is_correct, feedback, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := q.QueryRowxContext(ctx, query,
		answer.UserID,
		answer.QuestionID,
		answer.FavoriteQuestionID,
		answer.UserAnswer,
		answer.IsCorrect,
		answer.Feedback,
		answer.AnsweredAt,
	).Scan(&answer.ID)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}

	return nil
}
