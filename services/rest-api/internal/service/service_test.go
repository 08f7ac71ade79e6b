package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"translation-practice/pkg/auth/jwt"
	"translation-practice/services/rest-api/internal/domain"
	"translation-practice/services/rest-api/internal/hash"
	"translation-practice/services/rest-api/internal/repo"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []domain.CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func (f *fakeCompleter) lastRequest(t *testing.T) domain.CompletionRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("completer was not called")
	}
	return f.requests[len(f.requests)-1]
}

type testEnv struct {
	store     *repo.Store
	tokens    *jwt.Manager
	auth      *AuthService
	gate      *Gate
	catalog   *Catalog
	favorites *Favorites
	practice  *Practice
	completer *fakeCompleter
	answers   *repo.AnswerRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	store, err := repo.Open(ctx, repo.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("repo.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	tokens, err := jwt.NewManager(jwt.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("jwt.NewManager() error = %v", err)
	}
	hasher, err := hash.New(hash.Bcrypt, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash.New() error = %v", err)
	}

	users := repo.NewUserRepo()
	questions := repo.NewQuestionRepo()
	favorites := repo.NewFavoriteRepo()
	answers := repo.NewAnswerRepo()
	completer := &fakeCompleter{reply: "ok"}
	catalog := NewCatalog(questions, repo.NewMistakeRepo())

	return &testEnv{
		store:     store,
		tokens:    tokens,
		auth:      NewAuthService(users, hasher, tokens),
		gate:      NewGate(tokens, users),
		catalog:   catalog,
		favorites: NewFavorites(questions, favorites),
		practice:  NewPractice(store, catalog, questions, favorites, answers, completer),
		completer: completer,
		answers:   answers,
	}
}

// register creates a user and resolves it through the gate.
func (e *testEnv) register(t *testing.T, email string) domain.Identity {
	t.Helper()
	ctx := context.Background()

	token, err := e.auth.Register(ctx, e.store.DB(), email, "password123")
	if err != nil {
		t.Fatalf("Register(%q) error = %v", email, err)
	}
	id, err := e.gate.Authenticate(ctx, e.store.DB(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	return id
}

func (e *testEnv) question(t *testing.T, japanese string) *domain.Question {
	t.Helper()
	q, err := e.catalog.RecordGenerated(context.Background(), e.store.DB(), japanese, 1)
	if err != nil {
		t.Fatalf("RecordGenerated() error = %v", err)
	}
	return q
}

func (e *testEnv) inTx(t *testing.T, fn func(tx sqlx.ExtContext) error) error {
	t.Helper()
	return e.store.InTx(context.Background(), fn)
}

func countRows(t *testing.T, db *sqlx.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.Get(&n, query, args...); err != nil {
		t.Fatalf("%s: %v", strings.TrimSpace(query), err)
	}
	return n
}
