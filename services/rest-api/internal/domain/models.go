package domain

import (
	"database/sql"
	"time"
)

// User is a stored identity. The password hash never leaves the server.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Identity is the authenticated caller resolved by the auth gate. Every
// per-user read and write is scoped to Identity.ID.
type Identity struct {
	ID    int64
	Email string
}

// Question is a practice sentence shared by all users.
type Question struct {
	ID              int64     `db:"id" json:"id"`
	JapaneseText    string    `db:"japanese_text" json:"japanese_text"`
	EnglishText     string    `db:"english_text" json:"english_text"`
	DifficultyLevel int       `db:"difficulty_level" json:"difficulty_level"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// MistakeWord counts how often a user got a word wrong.
type MistakeWord struct {
	ID            int64     `db:"id" json:"-"`
	UserID        int64     `db:"user_id" json:"-"`
	Word          string    `db:"word" json:"word"`
	Context       string    `db:"context" json:"context"`
	Count         int       `db:"count" json:"count"`
	LastMistakeAt time.Time `db:"last_mistake_at" json:"last_mistake_at"`
}

// UserAnswer is an append-only record of a submitted translation.
// IsCorrect is reserved and stays NULL.
type UserAnswer struct {
	ID                 int64         `db:"id"`
	UserID             int64         `db:"user_id"`
	QuestionID         int64         `db:"question_id"`
	FavoriteQuestionID sql.NullInt64 `db:"favorite_question_id"`
	UserAnswer         string        `db:"user_answer"`
	IsCorrect          sql.NullBool  `db:"is_correct"`
	Feedback           string        `db:"feedback"`
	AnsweredAt         time.Time     `db:"answered_at"`
}

// FavoriteQuestion is a user's bookmark. It keeps its own copy of the text so
// later edits to the question do not change it.
type FavoriteQuestion struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"-"`
	QuestionID    int64     `db:"question_id" json:"question_id"`
	JapaneseText  string    `db:"japanese_text" json:"japanese_text"`
	EnglishAnswer string    `db:"english_answer" json:"english_answer"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"-"`
}
