package analytics

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

const recentItinerariesLimit = 5

var _ Service = (*ServiceImpl)(nil)

// Dashboard is the GET /analytics payload.
type Dashboard struct {
	TotalItineraries     int               `json:"totalItineraries"`
	CompletedItineraries int               `json:"completedItineraries"`
	DistinctDestinations int               `json:"distinctDestinations"`
	AverageRating        *float64          `json:"averageRating,omitempty"`
	RecentItineraries    []types.Itinerary `json:"recentItineraries"`
}

// Service defines the business logic contract for analytics.
type Service interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
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

// GetDashboard runs the dashboard queries in parallel and fails fast on the
// first error.
func (s *ServiceImpl) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	var dashboard Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.CountItineraries(gctx, userID)
		dashboard.TotalItineraries = total
		return err
	})
	g.Go(func() error {
		completed, err := s.repo.CountItinerariesByStatus(gctx, userID, types.StatusCompleted)
		dashboard.CompletedItineraries = completed
		return err
	})
	g.Go(func() error {
		destinations, err := s.repo.CountDistinctDestinations(gctx, userID)
		dashboard.DistinctDestinations = destinations
		return err
	})
	g.Go(func() error {
		avg, err := s.repo.AverageFeedbackRating(gctx, userID)
		dashboard.AverageRating = avg
		return err
	})
	g.Go(func() error {
		recent, err := s.repo.RecentItineraries(gctx, userID, recentItinerariesLimit)
		dashboard.RecentItineraries = recent
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Analytics dashboard query failed",
			slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, err
	}
	if dashboard.RecentItineraries == nil {
		dashboard.RecentItineraries = []types.Itinerary{}
	}
	return &dashboard, nil
}
