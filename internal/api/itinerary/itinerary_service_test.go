package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

type MockItineraryRepo struct {
	mock.Mock
}

func (m *MockItineraryRepo) CreatePending(ctx context.Context, userID uuid.UUID, req types.GenerationRequest, title string) (uuid.UUID, error) {
	args := m.Called(ctx, userID, req, title)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockItineraryRepo) SaveGenerated(ctx context.Context, itineraryID uuid.UUID, result *types.GeneratedItinerary, generationTimeMs int64) error {
	args := m.Called(ctx, itineraryID, result, generationTimeMs)
	return args.Error(0)
}

func (m *MockItineraryRepo) MarkFailed(ctx context.Context, itineraryID uuid.UUID) error {
	args := m.Called(ctx, itineraryID)
	return args.Error(0)
}

func (m *MockItineraryRepo) GetByID(ctx context.Context, itineraryID uuid.UUID) (*types.Itinerary, error) {
	args := m.Called(ctx, itineraryID)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItineraryRepo) GetByShareToken(ctx context.Context, token string) (*types.Itinerary, error) {
	args := m.Called(ctx, token)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItineraryRepo) List(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus, page, limit int) ([]types.Itinerary, int, error) {
	args := m.Called(ctx, userID, status, page, limit)
	if its := args.Get(0); its != nil {
		return its.([]types.Itinerary), args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *MockItineraryRepo) Update(ctx context.Context, userID, itineraryID uuid.UUID, update UpdateItineraryRequest) error {
	args := m.Called(ctx, userID, itineraryID, update)
	return args.Error(0)
}

func (m *MockItineraryRepo) Delete(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

func (m *MockItineraryRepo) SetShareToken(ctx context.Context, userID, itineraryID uuid.UUID, candidate string) (string, error) {
	args := m.Called(ctx, userID, itineraryID, candidate)
	return args.String(0), args.Error(1)
}

func (m *MockItineraryRepo) ClearShareToken(ctx context.Context, userID, itineraryID uuid.UUID) error {
	args := m.Called(ctx, userID, itineraryID)
	return args.Error(0)
}

func (m *MockItineraryRepo) UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, update UpdateActivityRequest) (*types.Activity, error) {
	args := m.Called(ctx, userID, activityID, update)
	if activity := args.Get(0); activity != nil {
		return activity.(*types.Activity), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockItineraryRepo) CountGenerationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockItineraryRepo) RecordAIUsage(ctx context.Context, usage types.AIUsage) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

type MockSubscriptionReader struct {
	mock.Mock
}

func (m *MockSubscriptionReader) GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Subscription, error) {
	args := m.Called(ctx, userID)
	if sub := args.Get(0); sub != nil {
		return sub.(*types.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func newServiceUnderTest(repo Repository, subs SubscriptionReader, gen *Generator) *ServiceImpl {
	return NewService(repo, subs, gen, "test-model", 5, testLogger())
}

func TestServiceImpl_Create_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItineraryRepo)
	subs := new(MockSubscriptionReader)
	svc := newServiceUnderTest(repo, subs, nil)

	_, err := svc.Create(ctx, uuid.New(), CreateItineraryRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBadRequest)
	repo.AssertNotCalled(t, "CreatePending")
}

func TestServiceImpl_Create_QuotaExceeded(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(MockItineraryRepo)
	subs := new(MockSubscriptionReader)
	svc := newServiceUnderTest(repo, subs, nil)

	subs.On("GetByUserID", ctx, userID).
		Return(&types.Subscription{ItinerariesLimit: 5}, nil)
	repo.On("CountGenerationsSince", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(5, nil)

	_, err := svc.Create(ctx, userID, CreateItineraryRequest{GenerationRequest: parisRequest()})
	assert.ErrorIs(t, err, types.ErrQuotaExceeded)
	repo.AssertNotCalled(t, "CreatePending")
}

func TestServiceImpl_Create_FallsBackToFreeLimitWithoutSubscription(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()
	repo := new(MockItineraryRepo)
	subs := new(MockSubscriptionReader)

	// A generator whose collaborators are never reached is fine here: the
	// goroutine races with test teardown but touches only its own mocks.
	mockPlaces := new(MockPlaceSearcher)
	mockPlaces.On("SearchPlaces", mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Place{}, nil).Maybe()
	mockAI := new(MockTextGenerator)
	mockAI.On("Complete", mock.Anything, mock.Anything).Return(modelReply, nil).Maybe()
	gen := NewGenerator(mockPlaces, new(MockForecastProvider), mockAI, testLogger(), nil)
	svc := newServiceUnderTest(repo, subs, gen)

	subs.On("GetByUserID", ctx, userID).Return(nil, types.ErrNotFound)
	repo.On("CountGenerationsSince", ctx, userID, mock.AnythingOfType("time.Time")).
		Return(4, nil)
	repo.On("CreatePending", ctx, userID, mock.AnythingOfType("types.GenerationRequest"), "Trip to Paris").
		Return(itineraryID, nil)
	repo.On("GetByID", ctx, itineraryID).
		Return(&types.Itinerary{ID: itineraryID, UserID: userID, Status: types.StatusGenerating}, nil)
	repo.On("RecordAIUsage", mock.Anything, mock.AnythingOfType("types.AIUsage")).Return(nil).Maybe()
	repo.On("SaveGenerated", mock.Anything, itineraryID, mock.Anything, mock.AnythingOfType("int64")).Return(nil).Maybe()
	repo.On("MarkFailed", mock.Anything, itineraryID).Return(nil).Maybe()

	it, err := svc.Create(ctx, userID, CreateItineraryRequest{GenerationRequest: parisRequest()})
	require.NoError(t, err)
	assert.Equal(t, types.StatusGenerating, it.Status)
}

func TestServiceImpl_RunGeneration_Success(t *testing.T) {
	itineraryID := uuid.New()
	repo := new(MockItineraryRepo)
	subs := new(MockSubscriptionReader)

	mockPlaces := new(MockPlaceSearcher)
	mockPlaces.On("SearchPlaces", mock.Anything, "tourist attractions Paris", "").
		Return(parisPlaces(), nil)
	mockWeather := new(MockForecastProvider)
	mockWeather.On("GetForecast", mock.Anything, 48.8584, 2.2945, 3).
		Return(parisForecast(), nil)
	mockAI := new(MockTextGenerator)
	mockAI.On("Complete", mock.Anything, mock.AnythingOfType("string")).
		Return(modelReply, nil)

	gen := NewGenerator(mockPlaces, mockWeather, mockAI, testLogger(), nil)
	svc := newServiceUnderTest(repo, subs, gen)

	repo.On("RecordAIUsage", mock.Anything, mock.MatchedBy(func(usage types.AIUsage) bool {
		return usage.Success && usage.Model == "test-model" && usage.Endpoint == "itinerary-generation"
	})).Return(nil).Once()
	repo.On("SaveGenerated", mock.Anything, itineraryID, mock.MatchedBy(func(result *types.GeneratedItinerary) bool {
		return result.Source == types.SourceModel && len(result.Days) == 3
	}), mock.AnythingOfType("int64")).Return(nil).Once()

	svc.runGeneration(itineraryID, parisRequest())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "MarkFailed")
}

func TestServiceImpl_RunGeneration_PipelineErrorMarksFailed(t *testing.T) {
	itineraryID := uuid.New()
	repo := new(MockItineraryRepo)
	subs := new(MockSubscriptionReader)

	mockPlaces := new(MockPlaceSearcher)
	mockPlaces.On("SearchPlaces", mock.Anything, "tourist attractions Paris", "").
		Return(nil, errors.New("places down"))

	gen := NewGenerator(mockPlaces, new(MockForecastProvider), new(MockTextGenerator), testLogger(), nil)
	svc := newServiceUnderTest(repo, subs, gen)

	repo.On("RecordAIUsage", mock.Anything, mock.MatchedBy(func(usage types.AIUsage) bool {
		return !usage.Success && usage.ErrorMessage != nil
	})).Return(nil).Once()
	repo.On("MarkFailed", mock.Anything, itineraryID).Return(nil).Once()

	svc.runGeneration(itineraryID, parisRequest())

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SaveGenerated")
}

func TestServiceImpl_Get_Ownership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	itineraryID := uuid.New()
	repo := new(MockItineraryRepo)
	svc := newServiceUnderTest(repo, new(MockSubscriptionReader), nil)

	t.Run("owner can read", func(t *testing.T) {
		repo.On("GetByID", ctx, itineraryID).
			Return(&types.Itinerary{ID: itineraryID, UserID: owner}, nil).Once()

		it, err := svc.Get(ctx, owner, itineraryID)
		require.NoError(t, err)
		assert.Equal(t, itineraryID, it.ID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		repo.On("GetByID", ctx, itineraryID).
			Return(&types.Itinerary{ID: itineraryID, UserID: owner}, nil).Once()

		_, err := svc.Get(ctx, stranger, itineraryID)
		assert.ErrorIs(t, err, types.ErrForbidden)
	})

	t.Run("stranger can read public", func(t *testing.T) {
		repo.On("GetByID", ctx, itineraryID).
			Return(&types.Itinerary{ID: itineraryID, UserID: owner, IsPublic: true}, nil).Once()

		_, err := svc.Get(ctx, stranger, itineraryID)
		require.NoError(t, err)
	})
}

func TestServiceImpl_List_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(MockItineraryRepo)
	svc := newServiceUnderTest(repo, new(MockSubscriptionReader), nil)

	repo.On("List", ctx, userID, types.ItineraryStatus(""), 1, 10).
		Return([]types.Itinerary{}, 23, nil).Once()

	_, pagination, err := svc.List(ctx, userID, "", -3, 5000)
	require.NoError(t, err)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 10, pagination.Limit)
	assert.Equal(t, 23, pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
	repo.AssertExpectations(t)
}

func TestServiceImpl_List_RejectsInvalidStatus(t *testing.T) {
	ctx := context.Background()
	svc := newServiceUnderTest(new(MockItineraryRepo), new(MockSubscriptionReader), nil)

	_, _, err := svc.List(ctx, uuid.New(), "NOT_A_STATUS", 1, 10)
	assert.ErrorIs(t, err, types.ErrBadRequest)
}

func TestServiceImpl_Share(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()
	repo := new(MockItineraryRepo)
	svc := newServiceUnderTest(repo, new(MockSubscriptionReader), nil)

	// The candidate token the service mints must be 12 URL-safe characters;
	// the caller gets whatever token the repository settled on.
	repo.On("SetShareToken", ctx, userID, itineraryID, mock.MatchedBy(func(candidate string) bool {
		return len(candidate) == 12
	})).Return("fresh1234abc", nil).Once()

	token, err := svc.Share(ctx, userID, itineraryID)
	require.NoError(t, err)
	assert.Equal(t, "fresh1234abc", token)

	// Tokens are random; two mints should differ.
	first, err := newShareToken()
	require.NoError(t, err)
	second, err := newShareToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestServiceImpl_Share_ReusesExistingToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itineraryID := uuid.New()
	repo := new(MockItineraryRepo)
	svc := newServiceUnderTest(repo, new(MockSubscriptionReader), nil)

	// The repository keeps the stored token once one exists, whatever
	// candidate the service mints.
	repo.On("SetShareToken", ctx, userID, itineraryID, mock.AnythingOfType("string")).
		Return("original12ab", nil).Twice()

	first, err := svc.Share(ctx, userID, itineraryID)
	require.NoError(t, err)
	second, err := svc.Share(ctx, userID, itineraryID)
	require.NoError(t, err)

	assert.Equal(t, "original12ab", first)
	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}
