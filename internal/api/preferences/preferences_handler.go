package preferences

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

// SavePreferencesRequest is the POST /user/preferences body.
type SavePreferencesRequest struct {
	PreferredBudget      types.BudgetRange `json:"preferredBudget"`
	TravelStyle          types.TravelStyle `json:"travelStyle"`
	Interests            []string          `json:"interests"`
	DietaryRequirements  []string          `json:"dietaryRequirements"`
	MobilityRequirements []string          `json:"mobilityRequirements"`
	PreferredLanguage    string            `json:"preferredLanguage"`
	Currency             string            `json:"currency"`
	EmailNotifications   bool              `json:"emailNotifications"`
	PushNotifications    bool              `json:"pushNotifications"`
}

// Handler handles HTTP requests for user preferences.
type Handler struct {
	preferencesService Service
	logger             *slog.Logger
}

func NewHandler(preferencesService Service, logger *slog.Logger) *Handler {
	return &Handler{
		preferencesService: preferencesService,
		logger:             logger,
	}
}

// Get godoc
// @Summary      Get preferences
// @Description  Returns the caller's planning preferences, or defaults if none were saved
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} types.UserPreferences "Stored or default preferences"
// @Failure      401 {object} api.Response "Authentication required"
// @Router       /user/preferences [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "GetPreferences")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	prefs, err := h.preferencesService.Get(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load preferences")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load preferences")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, prefs)
}

// Save godoc
// @Summary      Save preferences
// @Description  Stores the caller's planning preferences, replacing any previous set
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SavePreferencesRequest true "Preference set"
// @Success      200 {object} types.UserPreferences "Saved preferences"
// @Failure      400 {object} api.Response "Invalid preference values"
// @Failure      401 {object} api.Response "Authentication required"
// @Router       /user/preferences [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "SavePreferences")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SavePreferencesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	prefs, err := h.preferencesService.Save(ctx, userID, req)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, types.ErrBadRequest) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to save preferences")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, prefs)
}
