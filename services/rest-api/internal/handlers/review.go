package handlers

import (
	"net/http"

	"translation-practice/services/rest-api/internal/service"
)

// ReviewHandler serves answers to saved favorites.
type ReviewHandler struct {
	practice *service.Practice
}

// NewReviewHandler creates the review handler.
func NewReviewHandler(practice *service.Practice) *ReviewHandler {
	return &ReviewHandler{practice: practice}
}

// ReviewCheckRequest is the body of POST /api/v1/review/check.
type ReviewCheckRequest struct {
	FavoriteQuestionID int64  `json:"favorite_question_id"`
	AnswerText         string `json:"answer_text"`
}

// Check handles POST /api/v1/review/check
func (h *ReviewHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req ReviewCheckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, "ReviewHandler.Check", err)
		return
	}

	feedback, err := h.practice.ReviewCheck(r.Context(), identity(r), req.FavoriteQuestionID, req.AnswerText)
	if err != nil {
		handleError(w, r, "ReviewHandler.Check", err)
		return
	}

	respondJSON(w, http.StatusOK, FeedbackResponse{Feedback: feedback})
}
