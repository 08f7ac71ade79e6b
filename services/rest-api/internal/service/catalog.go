package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
	"translation-practice/services/rest-api/internal/validator"
)

// MaxTopMistakes caps how many mistake words are considered or returned.
const MaxTopMistakes = 5

// Catalog manages shared questions and per-user mistake words.
type Catalog struct {
	questions domain.QuestionRepository
	mistakes  domain.MistakeRepository
	intn      func(n int) int
}

// NewCatalog creates the catalog.
func NewCatalog(questions domain.QuestionRepository, mistakes domain.MistakeRepository) *Catalog {
	return &Catalog{
		questions: questions,
		mistakes:  mistakes,
		intn:      rand.IntN,
	}
}

// RecordGenerated stores a freshly generated sentence with no English yet.
func (c *Catalog) RecordGenerated(ctx context.Context, q sqlx.ExtContext, japanese string, difficulty int) (*domain.Question, error) {
	if err := validator.RequireText("japanese_text", japanese); err != nil {
		return nil, domain.Invalid(err)
	}
	if difficulty < 1 {
		difficulty = 1
	}

	question, err := c.questions.Create(ctx, q, japanese, "", difficulty)
	if err != nil {
		return nil, fmt.Errorf("Catalog.RecordGenerated: %w", err)
	}
	return question, nil
}

// TopMistakeWords returns at most MaxTopMistakes words, highest count first.
func (c *Catalog) TopMistakeWords(ctx context.Context, q sqlx.ExtContext, userID int64, limit int) ([]domain.MistakeWord, error) {
	limit = min(max(limit, 1), MaxTopMistakes)

	words, err := c.mistakes.Top(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("Catalog.TopMistakeWords: %w", err)
	}
	return words, nil
}

// PickGenerationSeed chooses one of the user's top mistake words uniformly at
// random. ok is false when the user has none.
func (c *Catalog) PickGenerationSeed(ctx context.Context, q sqlx.ExtContext, userID int64) (string, bool, error) {
	words, err := c.TopMistakeWords(ctx, q, userID, MaxTopMistakes)
	if err != nil {
		return "", false, err
	}
	if len(words) == 0 {
		return "", false, nil
	}
	return words[c.intn(len(words))].Word, true, nil
}

// RecordMistake counts one more mistake on word for the user.
func (c *Catalog) RecordMistake(ctx context.Context, q sqlx.ExtContext, userID int64, word, usage string) (*domain.MistakeWord, error) {
	word = strings.TrimSpace(word)
	if err := validator.RequireText("word", word); err != nil {
		return nil, domain.Invalid(err)
	}

	m, err := c.mistakes.Record(ctx, q, userID, word, strings.TrimSpace(usage))
	if err != nil {
		return nil, fmt.Errorf("Catalog.RecordMistake: %w", err)
	}
	return m, nil
}
