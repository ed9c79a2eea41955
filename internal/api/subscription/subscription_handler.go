package subscription

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
)

// Handler handles HTTP requests for subscription status.
type Handler struct {
	subscriptionService Service
	logger              *slog.Logger
}

func NewHandler(subscriptionService Service, logger *slog.Logger) *Handler {
	return &Handler{
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// Get godoc
// @Summary      Subscription status
// @Description  Returns the caller's plan and this month's generation usage
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SubscriptionStatus "Plan and usage"
// @Failure      401 {object} api.Response "Authentication required"
// @Router       /subscription [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "GetSubscription")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	status, err := h.subscriptionService.GetStatus(ctx, userID)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to load subscription status", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load subscription")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, status)
}
