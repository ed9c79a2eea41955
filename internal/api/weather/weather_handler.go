package weather

import (
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/api"
)

// Handler proxies weather lookups so the frontend never sees the API key.
type Handler struct {
	provider ForecastProvider
	logger   *slog.Logger
}

func NewHandler(provider ForecastProvider, logger *slog.Logger) *Handler {
	return &Handler{
		provider: provider,
		logger:   logger,
	}
}

// Forecast godoc
// @Summary      Weather forecast
// @Description  Returns a daily forecast for the given coordinates
// @Tags         weather
// @Produce      json
// @Security     BearerAuth
// @Param        lat query number true "Latitude"
// @Param        lng query number true "Longitude"
// @Param        days query int false "Number of days (default 5)"
// @Success      200 {array} types.WeatherData "Daily forecast"
// @Failure      400 {object} api.Response "Invalid coordinates"
// @Failure      502 {object} api.Response "Upstream weather lookup failed"
// @Router       /weather [get]
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("Handler").Start(r.Context(), "WeatherForecast")
	defer span.End()

	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "lat must be a valid number")
		return
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "lng must be a valid number")
		return
	}

	days := 5
	if rawDays := r.URL.Query().Get("days"); rawDays != "" {
		days, err = strconv.Atoi(rawDays)
		if err != nil || days < 1 || days > 5 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "days must be between 1 and 5")
			return
		}
	}

	forecast, err := h.provider.GetForecast(ctx, lat, lng, days)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast lookup failed")
		h.logger.Error("Forecast lookup failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadGateway, "Weather lookup failed")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, forecast)
}
