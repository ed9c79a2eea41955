package feedback

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

// SubmitFeedbackRequest is the POST /feedback body.
type SubmitFeedbackRequest struct {
	ItineraryID  *uuid.UUID             `json:"itineraryId,omitempty"`
	Rating       int                    `json:"rating"`
	Comment      *string                `json:"comment,omitempty"`
	Category     types.FeedbackCategory `json:"category"`
	AIQuality    *int                   `json:"aiQuality,omitempty"`
	Usability    *int                   `json:"usability,omitempty"`
	Accuracy     *int                   `json:"accuracy,omitempty"`
	Improvements []string               `json:"improvements,omitempty"`
}

// Handler handles HTTP requests for feedback.
type Handler struct {
	feedbackService Service
	logger          *slog.Logger
}

func NewHandler(feedbackService Service, logger *slog.Logger) *Handler {
	return &Handler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// Submit godoc
// @Summary      Submit feedback
// @Description  Stores a rating with optional sub-ratings, comment and itinerary reference
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubmitFeedbackRequest true "Feedback entry"
// @Success      201 {object} types.Feedback "Stored feedback"
// @Failure      400 {object} api.Response "Invalid feedback"
// @Failure      401 {object} api.Response "Authentication required"
// @Failure      404 {object} api.Response "Referenced itinerary not found"
// @Router       /feedback [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "SubmitFeedback")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SubmitFeedbackRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	fb, err := h.feedbackService.Submit(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, types.ErrBadRequest):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to store feedback")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, fb)
}
