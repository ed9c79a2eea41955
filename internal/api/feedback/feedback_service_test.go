package feedback

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

type MockFeedbackRepo struct {
	mock.Mock
}

func (m *MockFeedbackRepo) Create(ctx context.Context, fb types.Feedback) (*types.Feedback, error) {
	args := m.Called(ctx, fb)
	if saved := args.Get(0); saved != nil {
		return saved.(*types.Feedback), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeedbackRepo) ItineraryOwnedBy(ctx context.Context, itineraryID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, itineraryID, userID)
	return args.Bool(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		svc := NewService(repo, testLogger())

		_, err := svc.Submit(ctx, userID, SubmitFeedbackRequest{
			Rating:   6,
			Category: types.FeedbackGeneral,
		})
		assert.ErrorIs(t, err, types.ErrBadRequest)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc := NewService(new(MockFeedbackRepo), testLogger())

		_, err := svc.Submit(ctx, userID, SubmitFeedbackRequest{
			Rating:   4,
			Category: "RANT",
		})
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})

	t.Run("rejects out-of-range sub-rating", func(t *testing.T) {
		svc := NewService(new(MockFeedbackRepo), testLogger())
		zero := 0

		_, err := svc.Submit(ctx, userID, SubmitFeedbackRequest{
			Rating:    4,
			Category:  types.FeedbackItineraryQuality,
			AIQuality: &zero,
		})
		assert.ErrorIs(t, err, types.ErrBadRequest)
	})

	t.Run("rejects feedback on another user's itinerary", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		svc := NewService(repo, testLogger())
		otherItinerary := uuid.New()

		repo.On("ItineraryOwnedBy", ctx, otherItinerary, userID).Return(false, nil).Once()

		_, err := svc.Submit(ctx, userID, SubmitFeedbackRequest{
			Rating:      3,
			Category:    types.FeedbackItineraryQuality,
			ItineraryID: &otherItinerary,
		})
		assert.ErrorIs(t, err, types.ErrNotFound)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("stores valid feedback", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		svc := NewService(repo, testLogger())
		aiQuality := 5

		repo.On("Create", ctx, mock.MatchedBy(func(fb types.Feedback) bool {
			return fb.UserID == userID && fb.Rating == 4 &&
				fb.Category == types.FeedbackItineraryQuality &&
				fb.Improvements != nil
		})).Return(&types.Feedback{ID: uuid.New(), UserID: userID, Rating: 4}, nil).Once()

		fb, err := svc.Submit(ctx, userID, SubmitFeedbackRequest{
			Rating:    4,
			Category:  types.FeedbackItineraryQuality,
			AIQuality: &aiQuality,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, fb.Rating)
		repo.AssertExpectations(t)
	})
}
