package analytics

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) CountItineraries(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyticsRepo) CountItinerariesByStatus(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus) (int, error) {
	args := m.Called(ctx, userID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyticsRepo) CountDistinctDestinations(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyticsRepo) AverageFeedbackRating(ctx context.Context, userID uuid.UUID) (*float64, error) {
	args := m.Called(ctx, userID)
	if avg := args.Get(0); avg != nil {
		return avg.(*float64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAnalyticsRepo) RecentItineraries(ctx context.Context, userID uuid.UUID, limit int) ([]types.Itinerary, error) {
	args := m.Called(ctx, userID, limit)
	if its := args.Get(0); its != nil {
		return its.([]types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("aggregates all queries", func(t *testing.T) {
		repo := new(MockAnalyticsRepo)
		svc := NewService(repo, testLogger())
		avg := 4.2

		repo.On("CountItineraries", mock.Anything, userID).Return(12, nil)
		repo.On("CountItinerariesByStatus", mock.Anything, userID, types.StatusCompleted).Return(9, nil)
		repo.On("CountDistinctDestinations", mock.Anything, userID).Return(7, nil)
		repo.On("AverageFeedbackRating", mock.Anything, userID).Return(&avg, nil)
		repo.On("RecentItineraries", mock.Anything, userID, 5).
			Return([]types.Itinerary{{Destination: "Paris"}, {Destination: "Rome"}}, nil)

		dashboard, err := svc.GetDashboard(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 12, dashboard.TotalItineraries)
		assert.Equal(t, 9, dashboard.CompletedItineraries)
		assert.Equal(t, 7, dashboard.DistinctDestinations)
		require.NotNil(t, dashboard.AverageRating)
		assert.InDelta(t, 4.2, *dashboard.AverageRating, 0.001)
		assert.Len(t, dashboard.RecentItineraries, 2)
	})

	t.Run("fails when any query fails", func(t *testing.T) {
		repo := new(MockAnalyticsRepo)
		svc := NewService(repo, testLogger())

		repo.On("CountItineraries", mock.Anything, userID).Return(0, errors.New("db down"))
		repo.On("CountItinerariesByStatus", mock.Anything, userID, types.StatusCompleted).Return(0, nil).Maybe()
		repo.On("CountDistinctDestinations", mock.Anything, userID).Return(0, nil).Maybe()
		repo.On("AverageFeedbackRating", mock.Anything, userID).Return(nil, nil).Maybe()
		repo.On("RecentItineraries", mock.Anything, userID, 5).Return(nil, nil).Maybe()

		_, err := svc.GetDashboard(ctx, userID)
		require.Error(t, err)
	})

	t.Run("no feedback leaves average nil", func(t *testing.T) {
		repo := new(MockAnalyticsRepo)
		svc := NewService(repo, testLogger())

		repo.On("CountItineraries", mock.Anything, userID).Return(1, nil)
		repo.On("CountItinerariesByStatus", mock.Anything, userID, types.StatusCompleted).Return(0, nil)
		repo.On("CountDistinctDestinations", mock.Anything, userID).Return(1, nil)
		repo.On("AverageFeedbackRating", mock.Anything, userID).Return(nil, nil)
		repo.On("RecentItineraries", mock.Anything, userID, 5).Return(nil, nil)

		dashboard, err := svc.GetDashboard(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, dashboard.AverageRating)
		assert.NotNil(t, dashboard.RecentItineraries)
	})
}
