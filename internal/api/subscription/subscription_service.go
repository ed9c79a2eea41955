package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// UsageCounter counts the itineraries generated since a point in time.
type UsageCounter interface {
	CountGenerationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

// SubscriptionStatus is the GET /subscription payload: the plan plus the
// current month's usage against the limit.
type SubscriptionStatus struct {
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	ItinerariesLimit int       `json:"itinerariesLimit"`
	ItinerariesUsed  int       `json:"itinerariesUsed"`
	CurrentPeriodEnd time.Time `json:"currentPeriodEnd"`
}

// Service defines the business logic contract for subscriptions.
type Service interface {
	GetStatus(ctx context.Context, userID uuid.UUID) (*SubscriptionStatus, error)
}

type ServiceImpl struct {
	logger           *slog.Logger
	repo             Repository
	usage            UsageCounter
	monthlyFreeLimit int
}

func NewService(repo Repository, usage UsageCounter, monthlyFreeLimit int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:           logger,
		repo:             repo,
		usage:            usage,
		monthlyFreeLimit: monthlyFreeLimit,
	}
}

// GetStatus reports the user's plan and this month's generation usage. Users
// without a subscription row get the free plan defaults.
func (s *ServiceImpl) GetStatus(ctx context.Context, userID uuid.UUID) (*SubscriptionStatus, error) {
	now := time.Now().UTC()
	status := &SubscriptionStatus{
		Plan:             "free",
		Status:           "ACTIVE",
		ItinerariesLimit: s.monthlyFreeLimit,
		CurrentPeriodEnd: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0),
	}

	sub, err := s.repo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}
	if sub != nil {
		status.Plan = sub.Plan
		status.Status = sub.Status
		status.ItinerariesLimit = sub.ItinerariesLimit
		status.CurrentPeriodEnd = sub.CurrentPeriodEnd
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	used, err := s.usage.CountGenerationsSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	status.ItinerariesUsed = used

	return status, nil
}
