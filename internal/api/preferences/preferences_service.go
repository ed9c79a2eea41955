package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for user preferences.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.UserPreferences, error)
	Save(ctx context.Context, userID uuid.UUID, req SavePreferencesRequest) (*types.UserPreferences, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// Get returns the stored preferences, falling back to defaults for users who
// never saved any.
func (s *ServiceImpl) Get(ctx context.Context, userID uuid.UUID) (*types.UserPreferences, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return defaultPreferences(userID), nil
		}
		return nil, err
	}
	return prefs, nil
}

// Save validates and persists the preference set.
func (s *ServiceImpl) Save(ctx context.Context, userID uuid.UUID, req SavePreferencesRequest) (*types.UserPreferences, error) {
	if !req.PreferredBudget.Valid() {
		return nil, fmt.Errorf("%w: invalid preferred budget", types.ErrBadRequest)
	}
	if !req.TravelStyle.Valid() {
		return nil, fmt.Errorf("%w: invalid travel style", types.ErrBadRequest)
	}

	prefs := types.UserPreferences{
		UserID:               userID,
		PreferredBudget:      req.PreferredBudget,
		TravelStyle:          req.TravelStyle,
		Interests:            emptyIfNil(req.Interests),
		DietaryRequirements:  emptyIfNil(req.DietaryRequirements),
		MobilityRequirements: emptyIfNil(req.MobilityRequirements),
		PreferredLanguage:    defaultString(req.PreferredLanguage, "en"),
		Currency:             defaultString(req.Currency, "USD"),
		EmailNotifications:   req.EmailNotifications,
		PushNotifications:    req.PushNotifications,
	}

	saved, err := s.repo.Upsert(ctx, prefs)
	if err != nil {
		s.logger.Error("Failed to save preferences",
			slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, err
	}
	return saved, nil
}

func defaultPreferences(userID uuid.UUID) *types.UserPreferences {
	return &types.UserPreferences{
		UserID:               userID,
		PreferredBudget:      types.BudgetMidRange,
		TravelStyle:          types.StyleBalanced,
		Interests:            []string{},
		DietaryRequirements:  []string{},
		MobilityRequirements: []string{},
		PreferredLanguage:    "en",
		Currency:             "USD",
		EmailNotifications:   true,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
