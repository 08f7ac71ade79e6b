package handlers

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"translation-practice/services/rest-api/internal/domain"
	"translation-practice/services/rest-api/internal/service"
)

// MistakeHandler serves the user's mistake words.
type MistakeHandler struct {
	store   service.UnitOfWork
	catalog *service.Catalog
}

// NewMistakeHandler creates the mistake handler.
func NewMistakeHandler(store service.UnitOfWork, catalog *service.Catalog) *MistakeHandler {
	return &MistakeHandler{store: store, catalog: catalog}
}

// MistakeRequest is the body of POST /api/v1/mistakes.
type MistakeRequest struct {
	Word    string `json:"word"`
	Context string `json:"context"`
}

// MistakeResponse is a word with its current count.
type MistakeResponse struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// List handles GET /api/v1/mistakes
func (h *MistakeHandler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.catalog.TopMistakeWords(r.Context(), h.store.DB(), identity(r).ID, service.MaxTopMistakes)
	if err != nil {
		handleError(w, r, "MistakeHandler.List", err)
		return
	}

	respondJSON(w, http.StatusOK, words)
}

// Record handles POST /api/v1/mistakes
func (h *MistakeHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req MistakeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "MistakeHandler.Record", err)
		return
	}
	id := identity(r)

	var m *domain.MistakeWord
	err := h.store.InTx(r.Context(), func(tx sqlx.ExtContext) error {
		var err error
		m, err = h.catalog.RecordMistake(r.Context(), tx, id.ID, req.Word, req.Context)
		return err
	})
	if err != nil {
		handleError(w, r, "MistakeHandler.Record", err)
		return
	}

	respondJSON(w, http.StatusOK, MistakeResponse{Word: m.Word, Count: m.Count})
}
