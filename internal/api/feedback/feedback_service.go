package feedback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for feedback.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitFeedbackRequest) (*types.Feedback, error)
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

// Submit validates and stores one feedback entry.
func (s *ServiceImpl) Submit(ctx context.Context, userID uuid.UUID, req SubmitFeedbackRequest) (*types.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", types.ErrBadRequest)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid feedback category", types.ErrBadRequest)
	}
	for _, sub := range []*int{req.AIQuality, req.Usability, req.Accuracy} {
		if sub != nil && (*sub < 1 || *sub > 5) {
			return nil, fmt.Errorf("%w: sub-ratings must be between 1 and 5", types.ErrBadRequest)
		}
	}
	if req.ItineraryID != nil {
		owned, err := s.repo.ItineraryOwnedBy(ctx, *req.ItineraryID, userID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, fmt.Errorf("%w: itinerary not found", types.ErrNotFound)
		}
	}

	fb := types.Feedback{
		UserID:       userID,
		ItineraryID:  req.ItineraryID,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Category:     req.Category,
		AIQuality:    req.AIQuality,
		Usability:    req.Usability,
		Accuracy:     req.Accuracy,
		Improvements: req.Improvements,
	}
	if fb.Improvements == nil {
		fb.Improvements = []string{}
	}

	saved, err := s.repo.Create(ctx, fb)
	if err != nil {
		s.logger.Error("Failed to store feedback",
			slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, err
	}
	return saved, nil
}
