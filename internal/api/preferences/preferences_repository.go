package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Repository = (*PostgresPreferencesRepo)(nil)

// Repository defines the persistence contract for user preferences.
type Repository interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.UserPreferences, error)
	Upsert(ctx context.Context, prefs types.UserPreferences) (*types.UserPreferences, error)
}

type PostgresPreferencesRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresPreferencesRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresPreferencesRepo {
	return &PostgresPreferencesRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const preferencesColumns = `user_id, preferred_budget, travel_style, interests,
       dietary_requirements, mobility_requirements, preferred_language, currency,
       email_notifications, push_notifications, updated_at`

func (r *PostgresPreferencesRepo) Get(ctx context.Context, userID uuid.UUID) (*types.UserPreferences, error) {
	var prefs types.UserPreferences
	err := r.pgpool.QueryRow(ctx,
		`SELECT `+preferencesColumns+` FROM user_preferences WHERE user_id = $1`,
		userID).Scan(
		&prefs.UserID, &prefs.PreferredBudget, &prefs.TravelStyle, &prefs.Interests,
		&prefs.DietaryRequirements, &prefs.MobilityRequirements, &prefs.PreferredLanguage,
		&prefs.Currency, &prefs.EmailNotifications, &prefs.PushNotifications, &prefs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	return &prefs, nil
}

// Upsert writes the full preference row, inserting it when the user has none
// yet.
func (r *PostgresPreferencesRepo) Upsert(ctx context.Context, prefs types.UserPreferences) (*types.UserPreferences, error) {
	var saved types.UserPreferences
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO user_preferences
            (user_id, preferred_budget, travel_style, interests, dietary_requirements,
             mobility_requirements, preferred_language, currency,
             email_notifications, push_notifications, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
         ON CONFLICT (user_id) DO UPDATE SET
            preferred_budget = EXCLUDED.preferred_budget,
            travel_style = EXCLUDED.travel_style,
            interests = EXCLUDED.interests,
            dietary_requirements = EXCLUDED.dietary_requirements,
            mobility_requirements = EXCLUDED.mobility_requirements,
            preferred_language = EXCLUDED.preferred_language,
            currency = EXCLUDED.currency,
            email_notifications = EXCLUDED.email_notifications,
            push_notifications = EXCLUDED.push_notifications,
            updated_at = now()
         RETURNING `+preferencesColumns,
		prefs.UserID, prefs.PreferredBudget, prefs.TravelStyle, prefs.Interests,
		prefs.DietaryRequirements, prefs.MobilityRequirements, prefs.PreferredLanguage,
		prefs.Currency, prefs.EmailNotifications, prefs.PushNotifications).Scan(
		&saved.UserID, &saved.PreferredBudget, &saved.TravelStyle, &saved.Interests,
		&saved.DietaryRequirements, &saved.MobilityRequirements, &saved.PreferredLanguage,
		&saved.Currency, &saved.EmailNotifications, &saved.PushNotifications, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert preferences: %w", err)
	}
	return &saved, nil
}
