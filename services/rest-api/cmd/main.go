package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"translation-practice/pkg/auth/jwt"
	"translation-practice/pkg/config"
	"translation-practice/pkg/logger"
	"translation-practice/services/rest-api/internal/handlers"
	"translation-practice/services/rest-api/internal/hash"
	"translation-practice/services/rest-api/internal/llm"
	"translation-practice/services/rest-api/internal/repo"
	"translation-practice/services/rest-api/internal/service"
)

func main() {
	cfg := config.Load()

	logger.InitLogger(cfg.LogLevel)
	slog.Info("REST API starting", "addr", cfg.HTTPAddr, "db_driver", cfg.DBDriver)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := repo.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err == nil {
		err = store.Migrate(ctx)
	}
	cancel()
	if err != nil {
		return err
	}
	defer store.Close()

	tokens, err := jwt.NewManager(jwt.Config{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		Issuer:    cfg.JWTIssuer,
		TTL:       cfg.AccessTokenTTL,
	})
	if err != nil {
		return err
	}

	hasher, err := hash.New(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		return err
	}

	completer, err := llm.New(llm.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return err
	}

	users := repo.NewUserRepo()
	questions := repo.NewQuestionRepo()
	favorites := repo.NewFavoriteRepo()
	catalog := service.NewCatalog(questions, repo.NewMistakeRepo())

	router := handlers.NewRouter(handlers.RouterDeps{
		Store:          store,
		Gate:           service.NewGate(tokens, users),
		Auth:           service.NewAuthService(users, hasher, tokens),
		Catalog:        catalog,
		Favorites:      service.NewFavorites(questions, favorites),
		Practice:       service.NewPractice(store, catalog, questions, favorites, repo.NewAnswerRepo(), completer),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: handlers.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	slog.Info("REST API started", "addr", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
