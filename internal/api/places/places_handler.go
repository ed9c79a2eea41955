package places

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
)

// Handler proxies place lookups so the frontend never sees the API key.
type Handler struct {
	searcher Searcher
	logger   *slog.Logger
}

func NewHandler(searcher Searcher, logger *slog.Logger) *Handler {
	return &Handler{
		searcher: searcher,
		logger:   logger,
	}
}

// Search godoc
// @Summary      Search places
// @Description  Proxies a place text search for the given query
// @Tags         places
// @Produce      json
// @Security     BearerAuth
// @Param        query query string true "Free-text search query"
// @Param        location query string false "Optional location bias"
// @Success      200 {array} types.Place "Matching places"
// @Failure      400 {object} api.Response "Missing query"
// @Failure      502 {object} api.Response "Upstream place search failed"
// @Router       /places/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "SearchPlaces")
	defer span.End()

	query := r.URL.Query().Get("query")
	if query == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter is required")
		return
	}
	locationBias := r.URL.Query().Get("location")

	results, err := h.searcher.SearchPlaces(ctx, query, locationBias)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "place search failed")
		h.logger.Error("Place search failed", slog.String("query", query), slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "Place search failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, results)
}
