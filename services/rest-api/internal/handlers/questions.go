package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/export"
	"translation-practice/services/rest-api/internal/service"
)

// QuestionHandler serves practice questions and favorites.
type QuestionHandler struct {
	store     service.UnitOfWork
	favorites *service.Favorites
	practice  *service.Practice
}

// NewQuestionHandler creates the question handler.
func NewQuestionHandler(store service.UnitOfWork, favorites *service.Favorites, practice *service.Practice) *QuestionHandler {
	return &QuestionHandler{store: store, favorites: favorites, practice: practice}
}

// GenerateResponse is a freshly generated question.
type GenerateResponse struct {
	ID           int64  `json:"id"`
	JapaneseText string `json:"japanese_text"`
}

// CheckRequest is the body of POST /api/v1/questions/check.
type CheckRequest struct {
	QuestionID int64  `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

// FeedbackResponse carries the grader's feedback.
type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

// ToggleResponse reports the favorite state after a toggle.
type ToggleResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

// SaveFavoriteRequest is the body of POST /api/v1/questions/save-favorite.
// QuestionID is optional.
type SaveFavoriteRequest struct {
	QuestionID    *int64 `json:"question_id"`
	JapaneseText  string `json:"japanese_text"`
	EnglishAnswer string `json:"english_answer"`
}

// SaveFavoriteResponse is the answer to a save-favorite request.
type SaveFavoriteResponse struct {
	Success    bool   `json:"success"`
	QuestionID int64  `json:"question_id"`
	FavoriteID int64  `json:"favorite_id"`
	Message    string `json:"message"`
}

// Generate handles POST /api/v1/questions/generate
func (h *QuestionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	q, err := h.practice.Generate(r.Context(), identity(r))
	if err != nil {
		handleError(w, r, "QuestionHandler.Generate", err)
		return
	}

	respondJSON(w, http.StatusOK, GenerateResponse{ID: q.ID, JapaneseText: q.JapaneseText})
}

// Check handles POST /api/v1/questions/check
func (h *QuestionHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "QuestionHandler.Check", err)
		return
	}

	feedback, err := h.practice.Check(r.Context(), identity(r), req.QuestionID, req.AnswerText)
	if err != nil {
		handleError(w, r, "QuestionHandler.Check", err)
		return
	}

	respondJSON(w, http.StatusOK, FeedbackResponse{Feedback: feedback})
}

// ToggleFavorite handles POST /api/v1/questions/{id}/favorite
func (h *QuestionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	questionID, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, "QuestionHandler.ToggleFavorite", err)
		return
	}
	id := identity(r)

	var isFavorite bool
	err = h.store.InTx(r.Context(), func(tx sqlx.ExtContext) error {
		var err error
		isFavorite, err = h.favorites.Toggle(r.Context(), tx, id, questionID)
		return err
	})
	if err != nil {
		handleError(w, r, "QuestionHandler.ToggleFavorite", err)
		return
	}

	respondJSON(w, http.StatusOK, ToggleResponse{IsFavorite: isFavorite})
}

// SaveFavorite handles POST /api/v1/questions/save-favorite
func (h *QuestionHandler) SaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req SaveFavoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "QuestionHandler.SaveFavorite", err)
		return
	}
	id := identity(r)

	var res service.SaveResult
	err := h.store.InTx(r.Context(), func(tx sqlx.ExtContext) error {
		var err error
		res, err = h.favorites.Save(r.Context(), tx, id, service.SaveInput{
			QuestionID:    req.QuestionID,
			JapaneseText:  req.JapaneseText,
			EnglishAnswer: req.EnglishAnswer,
		})
		return err
	})
	if err != nil {
		handleError(w, r, "QuestionHandler.SaveFavorite", err)
		return
	}

	respondJSON(w, http.StatusOK, SaveFavoriteResponse{
		Success:    true,
		QuestionID: res.QuestionID,
		FavoriteID: res.FavoriteID,
		Message:    "Question saved to favorites",
	})
}

// ListFavorites handles GET /api/v1/questions/favorites
func (h *QuestionHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.favorites.List(r.Context(), h.store.DB(), identity(r))
	if err != nil {
		handleError(w, r, "QuestionHandler.ListFavorites", err)
		return
	}

	respondJSON(w, http.StatusOK, favs)
}

// ExportFavorites handles GET /api/v1/questions/favorites/export
func (h *QuestionHandler) ExportFavorites(w http.ResponseWriter, r *http.Request) {
	id := identity(r)

	favs, err := h.favorites.List(r.Context(), h.store.DB(), id)
	if err != nil {
		handleError(w, r, "QuestionHandler.ExportFavorites", err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteFavorites(&buf, favs); err != nil {
		handleError(w, r, "QuestionHandler.ExportFavorites", err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(id.ID)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", slog.Int64("user_id", id.ID), slog.Any("error", err))
	}
}
