package subscription

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Subscription, error) {
	args := m.Called(ctx, userID)
	if sub := args.Get(0); sub != nil {
		return sub.(*types.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUsageCounter struct {
	mock.Mock
}

func (m *MockUsageCounter) CountGenerationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_GetStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("uses free defaults without a subscription row", func(t *testing.T) {
		repo := new(MockSubscriptionRepo)
		usage := new(MockUsageCounter)
		svc := NewService(repo, usage, 5, testLogger())

		repo.On("GetByUserID", ctx, userID).Return(nil, types.ErrNotFound)
		usage.On("CountGenerationsSince", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(2, nil)

		status, err := svc.GetStatus(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "free", status.Plan)
		assert.Equal(t, 5, status.ItinerariesLimit)
		assert.Equal(t, 2, status.ItinerariesUsed)
	})

	t.Run("uses the stored plan when present", func(t *testing.T) {
		repo := new(MockSubscriptionRepo)
		usage := new(MockUsageCounter)
		svc := NewService(repo, usage, 5, testLogger())

		periodEnd := time.Now().AddDate(0, 0, 12)
		repo.On("GetByUserID", ctx, userID).Return(&types.Subscription{
			Plan:             "pro",
			Status:           "ACTIVE",
			ItinerariesLimit: 50,
			CurrentPeriodEnd: periodEnd,
		}, nil)
		usage.On("CountGenerationsSince", ctx, userID, mock.AnythingOfType("time.Time")).
			Return(17, nil)

		status, err := svc.GetStatus(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "pro", status.Plan)
		assert.Equal(t, 50, status.ItinerariesLimit)
		assert.Equal(t, 17, status.ItinerariesUsed)
		assert.Equal(t, periodEnd, status.CurrentPeriodEnd)
	})
}
