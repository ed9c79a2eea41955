package container

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-ai-trip-planner/app/db"
	"github.com/FACorreiaa/go-ai-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-ai-trip-planner/config"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/analytics"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/feedback"
	generativeAI "github.com/FACorreiaa/go-ai-trip-planner/internal/api/generative_ai"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/places"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/preferences"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/subscription"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/weather"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	Logger              *slog.Logger
	Pool                *pgxpool.Pool
	AuthHandler         *auth.Handler
	ItineraryHandler    *itinerary.Handler
	PreferencesHandler  *preferences.Handler
	FeedbackHandler     *feedback.Handler
	SubscriptionHandler *subscription.Handler
	AnalyticsHandler    *analytics.Handler
	PlacesHandler       *places.Handler
	WeatherHandler      *weather.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	// External collaborators
	placesClient := places.NewClient(os.Getenv("GOOGLE_PLACES_API_KEY"), logger)
	weatherClient := weather.NewClient(os.Getenv("OPENWEATHER_API_KEY"), logger)
	aiClient, err := generativeAI.NewAIClient(ctx, os.Getenv("GOOGLE_GEMINI_API_KEY"), *cfg)
	if err != nil {
		logger.Error("Failed to initialize generative AI client", slog.Any("error", err))
		return nil, err
	}

	generator := itinerary.NewGenerator(placesClient, weatherClient, aiClient, logger, metrics.Get())

	// Repositories
	authRepo := auth.NewPostgresAuthRepo(pool, cfg.JWT, logger)
	itineraryRepo := itinerary.NewPostgresItineraryRepo(pool, logger)
	preferencesRepo := preferences.NewPostgresPreferencesRepo(pool, logger)
	feedbackRepo := feedback.NewPostgresFeedbackRepo(pool, logger)
	subscriptionRepo := subscription.NewPostgresSubscriptionRepo(pool, logger)
	analyticsRepo := analytics.NewPostgresAnalyticsRepo(pool, logger)

	// Services
	authService := auth.NewService(authRepo, logger)
	itineraryService := itinerary.NewService(itineraryRepo, subscriptionRepo, generator,
		cfg.Generator.Model, cfg.Generator.MonthlyFreeLimit, logger)
	preferencesService := preferences.NewService(preferencesRepo, logger)
	feedbackService := feedback.NewService(feedbackRepo, logger)
	subscriptionService := subscription.NewService(subscriptionRepo, itineraryRepo,
		cfg.Generator.MonthlyFreeLimit, logger)
	analyticsService := analytics.NewService(analyticsRepo, logger)

	return &Container{
		Config:              cfg,
		Logger:              logger,
		Pool:                pool,
		AuthHandler:         auth.NewHandler(authService, logger),
		ItineraryHandler:    itinerary.NewHandler(itineraryService, cfg.Server.BaseURL, logger),
		PreferencesHandler:  preferences.NewHandler(preferencesService, logger),
		FeedbackHandler:     feedback.NewHandler(feedbackService, logger),
		SubscriptionHandler: subscription.NewHandler(subscriptionService, logger),
		AnalyticsHandler:    analytics.NewHandler(analyticsService, logger),
		PlacesHandler:       places.NewHandler(placesClient, logger),
		WeatherHandler:      weather.NewHandler(weatherClient, logger),
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
