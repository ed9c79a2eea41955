package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-ai-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

// PlaceSearcher looks up attractions for the destination.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, locationBias string) ([]types.Place, error)
}

// ForecastProvider returns a daily forecast for coordinates.
type ForecastProvider interface {
	GetForecast(ctx context.Context, lat, lng float64, days int) ([]types.WeatherData, error)
}

// TextGenerator produces a model completion for a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// jsonPattern grabs the widest brace-delimited block from the model reply,
// tolerating markdown fences or chatter around the JSON.
var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Generator assembles itineraries from place data, weather and a generative
// model, with a deterministic fallback when the model reply cannot be parsed.
type Generator struct {
	places  PlaceSearcher
	weather ForecastProvider
	ai      TextGenerator
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewGenerator(places PlaceSearcher, weather ForecastProvider, ai TextGenerator, logger *slog.Logger, appMetrics *metrics.AppMetrics) *Generator {
	return &Generator{
		places:  places,
		weather: weather,
		ai:      ai,
		logger:  logger,
		metrics: appMetrics,
	}
}

// Generate runs the full pipeline: places, forecast, prompt, model call,
// parse. Place search and model errors propagate; weather and parse failures
// degrade (empty forecast, template fallback) instead of failing the run.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (*types.GeneratedItinerary, error) {
	duration := req.Duration()
	start := time.Now()

	foundPlaces, err := g.places.SearchPlaces(ctx, "tourist attractions "+req.Destination, "")
	if err != nil {
		g.countCollaboratorError(ctx, "places")
		return nil, fmt.Errorf("place search failed: %w", err)
	}

	var weatherData []types.WeatherData
	if len(foundPlaces) > 0 && foundPlaces[0].Geometry != nil {
		location := foundPlaces[0].Geometry.Location
		forecast, ferr := g.weather.GetForecast(ctx, location.Lat, location.Lng, duration)
		if ferr != nil {
			// A missing forecast never fails the run.
			g.logger.Warn("Weather data unavailable", slog.Any("error", ferr))
			g.countCollaboratorError(ctx, "weather")
		} else {
			weatherData = forecast
		}
	}

	prompt := buildPrompt(req, duration, foundPlaces, weatherData)

	reply, err := g.ai.Complete(ctx, prompt)
	if err != nil {
		g.countCollaboratorError(ctx, "model")
		return nil, fmt.Errorf("model completion failed: %w", err)
	}

	result := g.parseReply(reply, req, weatherData)

	elapsed := time.Since(start)
	g.logger.Info("Itinerary generated",
		slog.String("destination", req.Destination),
		slog.Int("duration_days", duration),
		slog.String("source", string(result.Source)),
		slog.Duration("elapsed", elapsed),
	)
	if g.metrics != nil {
		sourceAttr := metric.WithAttributes(attribute.String("source", string(result.Source)))
		g.metrics.GenerationsTotal.Add(ctx, 1, sourceAttr)
		g.metrics.GenerationDurationSeconds.Record(ctx, elapsed.Seconds(), sourceAttr)
	}
	return result, nil
}

func (g *Generator) countCollaboratorError(ctx context.Context, collaborator string) {
	if g.metrics != nil {
		g.metrics.CollaboratorErrorsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("collaborator", collaborator)))
	}
}

func buildPrompt(req types.GenerationRequest, duration int, foundPlaces []types.Place, weatherData []types.WeatherData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary for %s.\n\n", duration, req.Destination)

	b.WriteString("TRAVELER PROFILE:\n")
	fmt.Fprintf(&b, "- Group size: %d people\n", req.GroupSize)
	fmt.Fprintf(&b, "- Budget: $%g (%s range)\n", req.Budget, req.BudgetRange)
	fmt.Fprintf(&b, "- Travel style: %s\n", req.TravelStyle)
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(req.Interests, ", "))
	if len(req.DietaryRequirements) > 0 {
		fmt.Fprintf(&b, "- Dietary requirements: %s\n", strings.Join(req.DietaryRequirements, ", "))
	}
	if len(req.MobilityRequirements) > 0 {
		fmt.Fprintf(&b, "- Mobility requirements: %s\n", strings.Join(req.MobilityRequirements, ", "))
	}

	fmt.Fprintf(&b, "\nTRAVEL DATES: %s to %s\n",
		req.StartDate.Format("Mon Jan 2 2006"),
		req.EndDate.Format("Mon Jan 2 2006"))

	b.WriteString("\nWEATHER FORECAST:\n")
	for _, w := range weatherData {
		fmt.Fprintf(&b, "%s: %s, %d°C\n", w.Date, w.Weather.Description, int(math.Round(w.Temperature.Day)))
	}

	b.WriteString("\nPOPULAR ATTRACTIONS:\n")
	topPlaces := foundPlaces
	if len(topPlaces) > 10 {
		topPlaces = topPlaces[:10]
	}
	for _, p := range topPlaces {
		rating := "N/A"
		if p.Rating != nil {
			rating = fmt.Sprintf("%g", *p.Rating)
		}
		fmt.Fprintf(&b, "- %s (Rating: %s)\n", p.Name, rating)
	}

	b.WriteString(`
Please create a JSON response with this exact structure:
{
  "summary": "Brief trip overview",
  "highlights": ["key attraction 1", "key attraction 2", "key attraction 3"],
  "estimatedCost": total_estimated_cost_number,
  "days": [
    {
      "dayNumber": 1,
      "title": "Day 1: Theme",
      "summary": "What to expect this day",
      "estimatedCost": day_cost_number,
      "activities": [
        {
          "title": "Activity name",
          "description": "Detailed description",
          "category": "SIGHTSEEING|RESTAURANT|ENTERTAINMENT|etc",
          "location": "Specific address or area",
          "startTime": "09:00",
          "endTime": "11:00",
          "duration": 120,
          "estimatedCost": cost_number,
          "tips": "Helpful tips for this activity",
          "order": 1
        }
      ]
    }
  ]
}

Make sure to:
1. Include realistic timing and costs
2. Consider weather in activity selection
3. Mix of must-see attractions and local experiences
4. Account for travel time between locations
5. Include meal recommendations
6. Provide practical tips
7. Stay within budget constraints`)

	return b.String()
}

// parseReply extracts the JSON block from the model reply and attaches dates
// and weather positionally. Any parse failure falls back to the template
// itinerary; this method never errors.
func (g *Generator) parseReply(reply string, req types.GenerationRequest, weatherData []types.WeatherData) *types.GeneratedItinerary {
	match := jsonPattern.FindString(reply)
	if match == "" {
		g.logger.Error("No JSON found in model reply")
		return fallbackItinerary(req, weatherData)
	}

	var parsed types.GeneratedItinerary
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		g.logger.Error("Failed to parse model reply", slog.Any("error", err))
		return fallbackItinerary(req, weatherData)
	}

	for i := range parsed.Days {
		parsed.Days[i].Date = req.StartDate.AddDate(0, 0, i)
		if i < len(weatherData) {
			w := weatherData[i]
			parsed.Days[i].Weather = &w
		}
		for j := range parsed.Days[i].Activities {
			activity := &parsed.Days[i].Activities[j]
			activity.Category = types.CoerceActivityCategory(string(activity.Category))
		}
	}

	parsed.Source = types.SourceModel
	return &parsed
}

// fallbackItinerary builds the deterministic template: three activities per
// day splitting the daily budget 40/30/30.
func fallbackItinerary(req types.GenerationRequest, weatherData []types.WeatherData) *types.GeneratedItinerary {
	duration := req.Duration()
	dailyBudget := req.Budget / float64(duration)

	days := make([]types.GeneratedDay, duration)
	for i := 0; i < duration; i++ {
		day := types.GeneratedDay{
			DayNumber:     i + 1,
			Date:          req.StartDate.AddDate(0, 0, i),
			Title:         fmt.Sprintf("Day %d: Exploring %s", i+1, req.Destination),
			Summary:       "A day of discovery and adventure",
			EstimatedCost: dailyBudget,
			Activities: []types.GeneratedActivity{
				{
					Title:         "Morning exploration",
					Description:   "Start your day with local sightseeing",
					Category:      types.CategorySightseeing,
					Location:      req.Destination,
					StartTime:     "09:00",
					EndTime:       "12:00",
					Duration:      180,
					EstimatedCost: dailyBudget * 0.4,
					Tips:          "Book tickets in advance if possible",
					Order:         1,
				},
				{
					Title:         "Local lunch",
					Description:   "Try authentic local cuisine",
					Category:      types.CategoryRestaurant,
					Location:      req.Destination,
					StartTime:     "12:00",
					EndTime:       "13:30",
					Duration:      90,
					EstimatedCost: dailyBudget * 0.3,
					Tips:          "Ask locals for recommendations",
					Order:         2,
				},
				{
					Title:         "Afternoon activity",
					Description:   "Continue exploring the area",
					Category:      types.CategoryActivity,
					Location:      req.Destination,
					StartTime:     "14:30",
					EndTime:       "17:00",
					Duration:      150,
					EstimatedCost: dailyBudget * 0.3,
					Tips:          "Take your time and enjoy the experience",
					Order:         3,
				},
			},
		}
		if i < len(weatherData) {
			w := weatherData[i]
			day.Weather = &w
		}
		days[i] = day
	}

	return &types.GeneratedItinerary{
		Summary:       fmt.Sprintf("A %d-day trip to %s", duration, req.Destination),
		Highlights:    []string{"Explore local attractions", "Try local cuisine", "Cultural experiences"},
		EstimatedCost: req.Budget,
		Source:        types.SourceFallback,
		Days:          days,
	}
}
