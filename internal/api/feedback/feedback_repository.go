package feedback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Repository = (*PostgresFeedbackRepo)(nil)

// Repository defines the persistence contract for feedback.
type Repository interface {
	Create(ctx context.Context, fb types.Feedback) (*types.Feedback, error)
	ItineraryOwnedBy(ctx context.Context, itineraryID, userID uuid.UUID) (bool, error)
}

type PostgresFeedbackRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresFeedbackRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresFeedbackRepo) Create(ctx context.Context, fb types.Feedback) (*types.Feedback, error) {
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO feedback
            (user_id, itinerary_id, rating, comment, category,
             ai_quality, usability, accuracy, improvements)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING id, created_at`,
		fb.UserID, fb.ItineraryID, fb.Rating, fb.Comment, fb.Category,
		fb.AIQuality, fb.Usability, fb.Accuracy, fb.Improvements).
		Scan(&fb.ID, &fb.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert feedback: %w", err)
	}
	return &fb, nil
}

// ItineraryOwnedBy reports whether the itinerary exists and belongs to the
// given user.
func (r *PostgresFeedbackRepo) ItineraryOwnedBy(ctx context.Context, itineraryID, userID uuid.UUID) (bool, error) {
	var owned bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM itineraries WHERE id = $1 AND user_id = $2)`,
		itineraryID, userID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("failed to check itinerary ownership: %w", err)
	}
	return owned, nil
}
