package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"translation-practice/services/rest-api/internal/middleware"
	"translation-practice/services/rest-api/internal/service"
)

// RequestTimeout bounds a whole request, completer call included.
const RequestTimeout = 60 * time.Second

// RouterDeps are the services the router dispatches to.
type RouterDeps struct {
	Store     service.UnitOfWork
	Gate      middleware.Authenticator
	Auth      *service.AuthService
	Catalog   *service.Catalog
	Favorites *service.Favorites
	Practice  *service.Practice

	AllowedOrigins []string
}

// NewRouter builds the HTTP API with its middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("failed to write health response", "error", err)
		}
	})

	authHandler := NewAuthHandler(d.Store, d.Auth)
	questionHandler := NewQuestionHandler(d.Store, d.Favorites, d.Practice)
	mistakeHandler := NewMistakeHandler(d.Store, d.Catalog)
	reviewHandler := NewReviewHandler(d.Practice)
	translationHandler := NewTranslationHandler(d.Practice)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(d.Gate, d.Store.DB()))

			r.Get("/me", authHandler.Me)
			r.Delete("/me", authHandler.DeleteMe)

			r.Route("/questions", func(r chi.Router) {
				r.Post("/generate", questionHandler.Generate)
				r.Post("/check", questionHandler.Check)
				r.Post("/{id}/favorite", questionHandler.ToggleFavorite)
				r.Post("/save-favorite", questionHandler.SaveFavorite)
				r.Get("/favorites", questionHandler.ListFavorites)
				r.Get("/favorites/export", questionHandler.ExportFavorites)
			})

			r.Get("/mistakes", mistakeHandler.List)
			r.Post("/mistakes", mistakeHandler.Record)

			r.Post("/review/check", reviewHandler.Check)

			r.Route("/translation", func(r chi.Router) {
				r.Post("/generate", translationHandler.Generate)
				r.Post("/style-variation", translationHandler.StyleVariation)
			})
		})
	})

	return r
}
