package repo

import (
	"context"
	"fmt"
	"strings"
)

// schema is written once; the replacer fills in driver-specific types.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id {{pk}},
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id {{pk}},
		japanese_text TEXT NOT NULL,
		english_text TEXT NOT NULL DEFAULT '',
		difficulty_level INTEGER NOT NULL DEFAULT 1,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS favorite_questions (
		id {{pk}},
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		question_id BIGINT NOT NULL REFERENCES questions(id),
		japanese_text TEXT NOT NULL,
		english_answer TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_favorite_questions_user_question
		ON favorite_questions (user_id, question_id)`,
	`CREATE TABLE IF NOT EXISTS mistake_words (
		id {{pk}},
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		word TEXT NOT NULL,
		context TEXT NOT NULL DEFAULT '',
		count INTEGER NOT NULL DEFAULT 1 CHECK (count > 0),
		last_mistake_at {{ts}} NOT NULL,
		UNIQUE (user_id, word)
	)`,
	`CREATE TABLE IF NOT EXISTS user_answers (
		id {{pk}},
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		question_id BIGINT NOT NULL REFERENCES questions(id),
		favorite_question_id BIGINT REFERENCES favorite_questions(id) ON DELETE SET NULL,
		user_answer TEXT NOT NULL,
		is_correct BOOLEAN,
		feedback TEXT NOT NULL DEFAULT '',
		answered_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_answers_user ON user_answers (user_id)`,
}

func schemaReplacer(driver string) *strings.Replacer {
	if driver == DriverSQLite {
		return strings.NewReplacer("{{pk}}", "INTEGER PRIMARY KEY AUTOINCREMENT", "{{ts}}", "TIMESTAMP")
	}
	return strings.NewReplacer("{{pk}}", "BIGSERIAL PRIMARY KEY", "{{ts}}", "TIMESTAMPTZ")
}

// Migrate creates missing tables. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	r := schemaReplacer(s.db.DriverName())
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
