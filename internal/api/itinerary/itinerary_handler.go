package itinerary

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

// Handler handles HTTP requests for itineraries and activities.
type Handler struct {
	itineraryService Service
	baseURL          string
	logger           *slog.Logger
}

func NewHandler(itineraryService Service, baseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		itineraryService: itineraryService,
		baseURL:          baseURL,
		logger:           logger,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, types.ErrBadRequest):
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, types.ErrForbidden):
		api.ErrorResponse(w, r, http.StatusForbidden, "You do not have access to this itinerary")
	case errors.Is(err, types.ErrQuotaExceeded):
		api.ErrorResponse(w, r, http.StatusTooManyRequests, "Monthly itinerary limit reached")
	default:
		api.ErrorResponse(w, r, http.StatusInternalServerError, fallback)
	}
}

// Create godoc
// @Summary      Generate an itinerary
// @Description  Accepts trip parameters, stores a GENERATING record and runs generation in the background
// @Tags         itineraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateItineraryRequest true "Trip parameters"
// @Success      202 {object} types.Itinerary "Generation accepted"
// @Failure      400 {object} api.Response "Invalid trip parameters"
// @Failure      429 {object} api.Response "Monthly quota exceeded"
// @Failure      500 {object} api.Response "Internal server error"
// @Router       /itineraries [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "CreateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries"),
	))
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.itineraryService.Create(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "itinerary creation failed")
		h.writeServiceError(w, r, err, "Failed to create itinerary")
		return
	}

	span.SetAttributes(attribute.String("itinerary.id", it.ID.String()))
	span.SetStatus(codes.Ok, "generation accepted")
	api.WriteJSONResponse(w, r, http.StatusAccepted, it)
}

// List godoc
// @Summary      List itineraries
// @Description  Returns one page of the caller's itineraries, newest first
// @Tags         itineraries
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number (default 1)"
// @Param        limit query int false "Page size (default 10, max 50)"
// @Param        status query string false "Filter by status"
// @Success      200 {object} ListItinerariesResponse "Paginated itineraries"
// @Failure      400 {object} api.Response "Invalid status filter"
// @Router       /itineraries [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "ListItineraries")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	page := api.QueryInt(r, "page", 1)
	limit := api.QueryInt(r, "limit", 10)
	status := types.ItineraryStatus(r.URL.Query().Get("status"))

	itineraries, pagination, err := h.itineraryService.List(ctx, userID, status, page, limit)
	if err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to list itineraries")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ListItinerariesResponse{
		Itineraries: itineraries,
		Pagination:  pagination,
	})
}

// Get godoc
// @Summary      Get an itinerary
// @Description  Returns one itinerary with its full day and activity tree
// @Tags         itineraries
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Itinerary ID"
// @Success      200 {object} types.Itinerary "The itinerary"
// @Failure      403 {object} api.Response "Not the owner and not public"
// @Failure      404 {object} api.Response "Itinerary not found"
// @Router       /itineraries/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "GetItinerary")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID")
		return
	}

	it, err := h.itineraryService.Get(ctx, userID, itineraryID)
	if err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to load itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// GetShared godoc
// @Summary      Get a shared itinerary
// @Description  Returns a public itinerary by its share token; no authentication required
// @Tags         itineraries
// @Produce      json
// @Param        token path string true "Share token"
// @Success      200 {object} types.Itinerary "The shared itinerary"
// @Failure      404 {object} api.Response "Unknown or revoked share token"
// @Router       /shared/{token} [get]
func (h *Handler) GetShared(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "GetSharedItinerary")
	defer span.End()

	token := chi.URLParam(r, "token")
	if token == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Share token is required")
		return
	}

	it, err := h.itineraryService.GetShared(ctx, token)
	if err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to load shared itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// Update godoc
// @Summary      Update an itinerary
// @Description  Updates the title or status of an itinerary the caller owns
// @Tags         itineraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Itinerary ID"
// @Param        request body UpdateItineraryRequest true "Fields to update"
// @Success      200 {object} types.Itinerary "The updated itinerary"
// @Failure      400 {object} api.Response "Invalid request"
// @Failure      404 {object} api.Response "Itinerary not found"
// @Router       /itineraries/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "UpdateItinerary")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID")
		return
	}

	var req UpdateItineraryRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.itineraryService.Update(ctx, userID, itineraryID, req)
	if err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to update itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}

// Delete godoc
// @Summary      Delete an itinerary
// @Description  Deletes an itinerary the caller owns, including its days and activities
// @Tags         itineraries
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Itinerary ID"
// @Success      204 "Deleted"
// @Failure      404 {object} api.Response "Itinerary not found"
// @Router       /itineraries/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "DeleteItinerary")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID")
		return
	}

	if err := h.itineraryService.Delete(ctx, userID, itineraryID); err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to delete itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// Share godoc
// @Summary      Share an itinerary
// @Description  Publishes the itinerary and returns its share URL; re-sharing keeps the existing token
// @Tags         itineraries
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Itinerary ID"
// @Success      200 {object} ShareResponse "Share link"
// @Failure      404 {object} api.Response "Itinerary not found"
// @Router       /itineraries/{id}/share [post]
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "ShareItinerary")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID")
		return
	}

	token, err := h.itineraryService.Share(ctx, userID, itineraryID)
	if err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to share itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ShareResponse{
		ShareToken: token,
		ShareURL:   fmt.Sprintf("%s/shared/%s", h.baseURL, token),
	})
}

// Unshare godoc
// @Summary      Unshare an itinerary
// @Description  Revokes the share token and makes the itinerary private again
// @Tags         itineraries
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Itinerary ID"
// @Success      204 "Unshared"
// @Failure      404 {object} api.Response "Itinerary not found"
// @Router       /itineraries/{id}/share [delete]
func (h *Handler) Unshare(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "UnshareItinerary")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	itineraryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid itinerary ID")
		return
	}

	if err := h.itineraryService.Unshare(ctx, userID, itineraryID); err != nil {
		span.RecordError(err)
		h.writeServiceError(w, r, err, "Failed to unshare itinerary")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// UpdateActivity godoc
// @Summary      Update an activity
// @Description  Partially updates an activity of an itinerary the caller owns (title, description, times, cost, notes, completion)
// @Tags         itineraries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Activity ID"
// @Param        request body UpdateActivityRequest true "Fields to update"
// @Success      200 {object} types.Activity "The updated activity"
// @Failure      404 {object} api.Response "Activity not found"
// @Router       /activities/{id} [put]
func (h *Handler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "UpdateActivity")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	var req UpdateActivityRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	activity, err := h.itineraryService.UpdateActivity(ctx, userID, activityID, req)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Activity not found")
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update activity")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, activity)
}
