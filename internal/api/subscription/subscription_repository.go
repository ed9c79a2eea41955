package subscription

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

var _ Repository = (*PostgresSubscriptionRepo)(nil)

// Repository defines the persistence contract for subscriptions.
type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Subscription, error)
}

type PostgresSubscriptionRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresSubscriptionRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresSubscriptionRepo {
	return &PostgresSubscriptionRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// GetByUserID returns the user's most recent active subscription.
func (r *PostgresSubscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Subscription, error) {
	var sub types.Subscription
	err := r.pgpool.QueryRow(ctx,
		`SELECT id, user_id, plan, status, itineraries_limit, current_period_end, created_at
         FROM subscriptions
         WHERE user_id = $1 AND status = 'ACTIVE'
         ORDER BY created_at DESC
         LIMIT 1`, userID).Scan(
		&sub.ID, &sub.UserID, &sub.Plan, &sub.Status, &sub.ItinerariesLimit,
		&sub.CurrentPeriodEnd, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}
	return &sub, nil
}
