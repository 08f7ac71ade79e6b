package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
	"translation-practice/services/rest-api/internal/validator"
)

var (
	ErrUnknownVariation = errors.New("variation_type must be formal, casual or context:<situation>")
	ErrEmptyCompletion  = errors.New("completion returned no text")
)

// UnitOfWork is the storage handle the practice flows open their own
// transactions on. *repo.Store satisfies it.
type UnitOfWork interface {
	DB() *sqlx.DB
	InTx(ctx context.Context, fn func(tx sqlx.ExtContext) error) error
}

// Practice runs the AI-assisted flows. The completer is always called before
// a transaction is opened, never inside one.
type Practice struct {
	store     UnitOfWork
	catalog   *Catalog
	questions domain.QuestionRepository
	favorites domain.FavoriteRepository
	answers   domain.AnswerRepository
	completer domain.Completer
}

// NewPractice wires the practice flows.
func NewPractice(
	store UnitOfWork,
	catalog *Catalog,
	questions domain.QuestionRepository,
	favorites domain.FavoriteRepository,
	answers domain.AnswerRepository,
	completer domain.Completer,
) *Practice {
	return &Practice{
		store:     store,
		catalog:   catalog,
		questions: questions,
		favorites: favorites,
		answers:   answers,
		completer: completer,
	}
}

// Translation is a completer answer split into the English text and the
// explanation that follows the first blank line.
type Translation struct {
	Translation string `json:"translation"`
	Explanation string `json:"explanation"`
}

// VariationKind is a translation register.
type VariationKind string

const (
	VariationFormal  VariationKind = "formal"
	VariationCasual  VariationKind = "casual"
	VariationContext VariationKind = "context"
)

// ParseVariation accepts "formal", "casual" or "context:<situation>".
func ParseVariation(s string) (VariationKind, string, error) {
	switch VariationKind(s) {
	case VariationFormal, VariationCasual:
		return VariationKind(s), "", nil
	}

	if situation, ok := strings.CutPrefix(s, string(VariationContext)+":"); ok {
		if situation = strings.TrimSpace(situation); situation != "" {
			return VariationContext, situation, nil
		}
	}

	return "", "", ErrUnknownVariation
}

// Generate asks for a new Japanese sentence, seeded with one of the user's
// frequent mistake words when there are any, and stores it as a question.
func (p *Practice) Generate(ctx context.Context, id domain.Identity) (*domain.Question, error) {
	op := "Practice.Generate"

	seed, ok, err := p.catalog.PickGenerationSeed(ctx, p.store.DB(), id.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req := domain.CompletionRequest{System: generateSystem, Prompt: generatePrompt, Temperature: 0.8}
	if ok {
		req.Prompt = fmt.Sprintf(generateSeedPrompt, seed)
	}

	japanese, err := p.complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var question *domain.Question
	err = p.store.InTx(ctx, func(tx sqlx.ExtContext) error {
		var err error
		question, err = p.catalog.RecordGenerated(ctx, tx, japanese, 1)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slog.Info("question generated",
		slog.String("op", op),
		slog.Int64("user_id", id.ID),
		slog.Int64("question_id", question.ID),
		slog.Bool("seeded", ok),
	)

	return question, nil
}

// Check grades an answer to a question and records it.
func (p *Practice) Check(ctx context.Context, id domain.Identity, questionID int64, answer string) (string, error) {
	op := "Practice.Check"

	if err := validator.RequireText("answer_text", answer); err != nil {
		return "", domain.Invalid(err)
	}

	question, err := p.questions.GetByID(ctx, p.store.DB(), questionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	feedback, err := p.complete(ctx, domain.CompletionRequest{
		System: checkSystem,
		Prompt: fmt.Sprintf(checkPrompt, question.JapaneseText, answer),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	err = p.store.InTx(ctx, func(tx sqlx.ExtContext) error {
		return p.answers.Create(ctx, tx, &domain.UserAnswer{
			UserID:     id.ID,
			QuestionID: question.ID,
			UserAnswer: answer,
			Feedback:   feedback,
		})
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return feedback, nil
}

// ReviewCheck grades an answer to one of the user's favorites, with feedback
// in Japanese.
func (p *Practice) ReviewCheck(ctx context.Context, id domain.Identity, favoriteID int64, answer string) (string, error) {
	op := "Practice.ReviewCheck"

	if err := validator.RequireText("answer_text", answer); err != nil {
		return "", domain.Invalid(err)
	}

	fav, err := p.favorites.GetForUser(ctx, p.store.DB(), id.ID, favoriteID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	feedback, err := p.complete(ctx, domain.CompletionRequest{
		System: reviewSystem,
		Prompt: fmt.Sprintf(reviewPrompt, fav.JapaneseText, answer),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	err = p.store.InTx(ctx, func(tx sqlx.ExtContext) error {
		return p.answers.Create(ctx, tx, &domain.UserAnswer{
			UserID:             id.ID,
			QuestionID:         fav.QuestionID,
			FavoriteQuestionID: sql.NullInt64{Int64: fav.ID, Valid: true},
			UserAnswer:         answer,
			Feedback:           feedback,
		})
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return feedback, nil
}

// Translate produces a model translation with an explanation.
func (p *Practice) Translate(ctx context.Context, japanese string) (Translation, error) {
	if err := validator.RequireText("japanese_text", japanese); err != nil {
		return Translation{}, domain.Invalid(err)
	}

	out, err := p.complete(ctx, domain.CompletionRequest{
		System:      translateSystem,
		Prompt:      fmt.Sprintf(translatePrompt, japanese),
		Temperature: 0.3,
	})
	if err != nil {
		return Translation{}, fmt.Errorf("Practice.Translate: %w", err)
	}

	return splitTranslation(out), nil
}

// StyleVariation rewrites an existing translation in another register.
func (p *Practice) StyleVariation(ctx context.Context, japanese, current, variation string) (Translation, error) {
	if err := validator.RequireText("japanese_text", japanese); err != nil {
		return Translation{}, domain.Invalid(err)
	}
	if err := validator.RequireText("current_translation", current); err != nil {
		return Translation{}, domain.Invalid(err)
	}

	kind, situation, err := ParseVariation(variation)
	if err != nil {
		return Translation{}, domain.Invalid(err)
	}

	out, err := p.complete(ctx, domain.CompletionRequest{
		System: translateSystem,
		Prompt: fmt.Sprintf(variationPrompt, japanese, current, variationInstruction(kind, situation)),
	})
	if err != nil {
		return Translation{}, fmt.Errorf("Practice.StyleVariation: %w", err)
	}

	return splitTranslation(out), nil
}

func (p *Practice) complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	out, err := p.completer.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

// splitTranslation treats everything before the first blank line as the
// translation. Blank lines are dropped from the explanation.
func splitTranslation(s string) Translation {
	var translation, explanation []string
	inExplanation := false

	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			inExplanation = true
			continue
		}
		if inExplanation {
			explanation = append(explanation, line)
		} else {
			translation = append(translation, line)
		}
	}

	return Translation{
		Translation: strings.TrimSpace(strings.Join(translation, "\n")),
		Explanation: strings.TrimSpace(strings.Join(explanation, "\n")),
	}
}
