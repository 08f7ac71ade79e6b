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

// Favorites reconciles a user's bookmarks with the shared question catalog.
// Writes expect to run inside the caller's transaction.
type Favorites struct {
	questions domain.QuestionRepository
	favorites domain.FavoriteRepository
}

// NewFavorites creates the reconciler.
func NewFavorites(questions domain.QuestionRepository, favorites domain.FavoriteRepository) *Favorites {
	return &Favorites{questions: questions, favorites: favorites}
}

// SaveInput is a favorite to save. A nil QuestionID creates a new question.
type SaveInput struct {
	QuestionID    *int64
	JapaneseText  string
	EnglishAnswer string
}

// SaveResult identifies the question and the favorite written by Save.
type SaveResult struct {
	QuestionID int64
	FavoriteID int64
}

// Save writes the text back to the question when QuestionID resolves and
// creates a new question otherwise. Either way a new favorite is added that
// keeps its own copy of the text.
func (f *Favorites) Save(ctx context.Context, q sqlx.ExtContext, id domain.Identity, in SaveInput) (SaveResult, error) {
	op := "Favorites.Save"

	if err := validator.RequireText("japanese_text", in.JapaneseText); err != nil {
		return SaveResult{}, domain.Invalid(err)
	}

	questionID, err := f.upsertQuestion(ctx, q, in)
	if err != nil {
		return SaveResult{}, fmt.Errorf("%s: %w", op, err)
	}

	fav := &domain.FavoriteQuestion{
		UserID:        id.ID,
		QuestionID:    questionID,
		JapaneseText:  in.JapaneseText,
		EnglishAnswer: in.EnglishAnswer,
	}
	if err := f.favorites.Create(ctx, q, fav); err != nil {
		return SaveResult{}, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("favorite saved",
		slog.String("op", op),
		slog.Int64("user_id", id.ID),
		slog.Int64("question_id", questionID),
		slog.Int64("favorite_id", fav.ID),
	)

	return SaveResult{QuestionID: questionID, FavoriteID: fav.ID}, nil
}

func (f *Favorites) upsertQuestion(ctx context.Context, q sqlx.ExtContext, in SaveInput) (int64, error) {
	if in.QuestionID != nil {
		err := f.questions.UpdateText(ctx, q, *in.QuestionID, in.JapaneseText, in.EnglishAnswer)
		if err == nil {
			return *in.QuestionID, nil
		}
		if !errors.Is(err, domain.ErrQuestionNotFound) {
			return 0, err
		}
	}

	question, err := f.questions.Create(ctx, q, in.JapaneseText, in.EnglishAnswer, 1)
	if err != nil {
		return 0, err
	}
	return question.ID, nil
}

// Toggle flips the favorite state of a question for the user and returns the
// new state. Turning it off removes every favorite row for that question.
// The question row stays locked until the transaction ends, so concurrent
// toggles for it run one after another.
func (f *Favorites) Toggle(ctx context.Context, q sqlx.ExtContext, id domain.Identity, questionID int64) (bool, error) {
	op := "Favorites.Toggle"

	question, err := f.questions.GetByIDForUpdate(ctx, q, questionID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	n, err := f.favorites.CountForQuestion(ctx, q, id.ID, questionID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if n > 0 {
		if _, err := f.favorites.DeleteForQuestion(ctx, q, id.ID, questionID); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		slog.Info("favorite removed", slog.String("op", op), slog.Int64("user_id", id.ID), slog.Int64("question_id", questionID))
		return false, nil
	}

	fav := &domain.FavoriteQuestion{
		UserID:        id.ID,
		QuestionID:    question.ID,
		JapaneseText:  question.JapaneseText,
		EnglishAnswer: question.EnglishText,
	}
	if err := f.favorites.Create(ctx, q, fav); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("favorite added", slog.String("op", op), slog.Int64("user_id", id.ID), slog.Int64("question_id", questionID))
	return true, nil
}

// List returns the user's favorites, newest first.
func (f *Favorites) List(ctx context.Context, q sqlx.ExtContext, id domain.Identity) ([]domain.FavoriteQuestion, error) {
	favs, err := f.favorites.ListByUser(ctx, q, id.ID)
	if err != nil {
		return nil, fmt.Errorf("Favorites.List: %w", err)
	}
	return favs, nil
}

// Get returns one of the user's favorites.
func (f *Favorites) Get(ctx context.Context, q sqlx.ExtContext, id domain.Identity, favoriteID int64) (*domain.FavoriteQuestion, error) {
	fav, err := f.favorites.GetForUser(ctx, q, id.ID, favoriteID)
	if err != nil {
		return nil, fmt.Errorf("Favorites.Get: %w", err)
	}
	return fav, nil
}
