package handler

import (
	"encoding/json"
	"net/http"

	"github.com/evida/coach-api/internal/api/validation"
	"github.com/evida/coach-api/internal/langfuse"
	"github.com/evida/coach-api/pkg/problem"
)

// FeedbackRequest is one user rating of a chat exchange.
// @Description User feedback on a coaching answer.
type FeedbackRequest struct {
	TraceID string  `json:"trace_id" validate:"required"`
	Rating  float64 `json:"rating" validate:"min=0,max=5"`
	Comment string  `json:"comment,omitempty"`
}

// FeedbackHandler forwards chat feedback to Langfuse as scores.
type FeedbackHandler struct {
	langfuseClient langfuse.Client
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(langfuseClient langfuse.Client) *FeedbackHandler {
	return &FeedbackHandler{langfuseClient: langfuseClient}
}

// Feedback handles POST /chat/feedback
// @Summary Rate a coaching answer
// @Tags chat
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Feedback"
// @Success 202 {object} map[string]string "Feedback recorded"
// @Failure 400 {object} problem.Problem "Malformed payload"
// @Failure 422 {object} problem.Problem "Validation error"
// @Router /chat/feedback [post]
func (h *FeedbackHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request validation failed", fieldErrors).Write(w)
		return
	}

	if h.langfuseClient != nil {
		h.langfuseClient.CreateScore(r.Context(), langfuse.ScoreInput{
			TraceID: req.TraceID,
			Name:    "user_rating",
			Value:   req.Rating,
			Comment: req.Comment,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "recorded"})
}
