package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Repository = (*PostgresAnalyticsRepo)(nil)

// Repository defines the read queries behind the analytics dashboard.
type Repository interface {
	CountItineraries(ctx context.Context, userID uuid.UUID) (int, error)
	CountItinerariesByStatus(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus) (int, error)
	CountDistinctDestinations(ctx context.Context, userID uuid.UUID) (int, error)
	AverageFeedbackRating(ctx context.Context, userID uuid.UUID) (*float64, error)
	RecentItineraries(ctx context.Context, userID uuid.UUID, limit int) ([]types.Itinerary, error)
}

type PostgresAnalyticsRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresAnalyticsRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresAnalyticsRepo {
	return &PostgresAnalyticsRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresAnalyticsRepo) CountItineraries(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pgpool.QueryRow(ctx,
		`SELECT COUNT(*) FROM itineraries WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count itineraries: %w", err)
	}
	return count, nil
}

func (r *PostgresAnalyticsRepo) CountItinerariesByStatus(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus) (int, error) {
	var count int
	err := r.pgpool.QueryRow(ctx,
		`SELECT COUNT(*) FROM itineraries WHERE user_id = $1 AND status = $2`,
		userID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count itineraries by status: %w", err)
	}
	return count, nil
}

func (r *PostgresAnalyticsRepo) CountDistinctDestinations(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pgpool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT destination) FROM itineraries WHERE user_id = $1`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count destinations: %w", err)
	}
	return count, nil
}

// AverageFeedbackRating returns nil when the user never left feedback.
func (r *PostgresAnalyticsRepo) AverageFeedbackRating(ctx context.Context, userID uuid.UUID) (*float64, error) {
	var avg *float64
	err := r.pgpool.QueryRow(ctx,
		`SELECT AVG(rating)::float8 FROM feedback WHERE user_id = $1`, userID).Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to average feedback rating: %w", err)
	}
	return avg, nil
}

// RecentItineraries returns the newest itineraries without their day trees.
func (r *PostgresAnalyticsRepo) RecentItineraries(ctx context.Context, userID uuid.UUID, limit int) ([]types.Itinerary, error) {
	rows, err := r.pgpool.Query(ctx,
		`SELECT id, title, destination, start_date, end_date, duration, status, created_at
         FROM itineraries
         WHERE user_id = $1
         ORDER BY created_at DESC
         LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := make([]types.Itinerary, 0, limit)
	for rows.Next() {
		var it types.Itinerary
		it.UserID = userID
		err = rows.Scan(&it.ID, &it.Title, &it.Destination, &it.StartDate, &it.EndDate,
			&it.Duration, &it.Status, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent itinerary: %w", err)
		}
		itineraries = append(itineraries, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent itinerary rows iteration failed: %w", err)
	}
	return itineraries, nil
}
