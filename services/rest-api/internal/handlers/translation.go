package handlers

import (
	"net/http"

	"translation-practice/services/rest-api/internal/service"
)

// TranslationHandler serves model translations.
type TranslationHandler struct {
	practice *service.Practice
}

// NewTranslationHandler creates the translation handler.
func NewTranslationHandler(practice *service.Practice) *TranslationHandler {
	return &TranslationHandler{practice: practice}
}

// TranslationRequest is the body of POST /api/v1/translation/generate.
type TranslationRequest struct {
	JapaneseText string `json:"japanese_text"`
}

// StyleVariationRequest is the body of POST /api/v1/translation/style-variation.
type StyleVariationRequest struct {
	JapaneseText       string `json:"japanese_text"`
	CurrentTranslation string `json:"current_translation"`
	VariationType      string `json:"variation_type"`
}

// Generate handles POST /api/v1/translation/generate
func (h *TranslationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req TranslationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "TranslationHandler.Generate", err)
		return
	}

	out, err := h.practice.Translate(r.Context(), req.JapaneseText)
	if err != nil {
		handleError(w, r, "TranslationHandler.Generate", err)
		return
	}

	respondJSON(w, http.StatusOK, out)
}

// StyleVariation handles POST /api/v1/translation/style-variation
func (h *TranslationHandler) StyleVariation(w http.ResponseWriter, r *http.Request) {
	var req StyleVariationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "TranslationHandler.StyleVariation", err)
		return
	}

	out, err := h.practice.StyleVariation(r.Context(), req.JapaneseText, req.CurrentTranslation, req.VariationType)
	if err != nil {
		handleError(w, r, "TranslationHandler.StyleVariation", err)
		return
	}

	respondJSON(w, http.StatusOK, out)
}
