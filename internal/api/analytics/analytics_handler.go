package analytics

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
)

// Handler handles HTTP requests for the analytics dashboard.
type Handler struct {
	analyticsService Service
	logger           *slog.Logger
}

func NewHandler(analyticsService Service, logger *slog.Logger) *Handler {
	return &Handler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Get godoc
// @Summary      Analytics dashboard
// @Description  Returns itinerary totals, destination counts, average feedback rating and recent trips
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Dashboard "Dashboard numbers"
// @Failure      401 {object} api.Response "Authentication required"
// @Router       /analytics [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "GetAnalytics")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	dashboard, err := h.analyticsService.GetDashboard(ctx, userID)
	if err != nil {
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load analytics")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, dashboard)
}
