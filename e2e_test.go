package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/FACorreiaa/go-ai-trip-planner/config"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/auth"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/container"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/router"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, username, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func (m *mockAuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, userID)
	if u := args.Get(0); u != nil {
		return u.(*types.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockItineraryService struct {
	mock.Mock
}

func (m *mockItineraryService) Create(ctx context.Context, userID uuid.UUID, req itinerary.CreateItineraryRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, req)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItineraryService) Get(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItineraryService) GetShared(ctx context.Context, token string) (*types.Itinerary, error) {
	args := m.Called(ctx, token)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItineraryService) List(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus, page, limit int) ([]types.Itinerary, types.Pagination, error) {
	args := m.Called(ctx, userID, status, page, limit)
	var its []types.Itinerary
	if raw := args.Get(0); raw != nil {
		its = raw.([]types.Itinerary)
	}
	return its, args.Get(1).(types.Pagination), args.Error(2)
}

func (m *mockItineraryService) Update(ctx context.Context, userID, itineraryID uuid.UUID, update itinerary.UpdateItineraryRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, userID, itineraryID, update)
	if it := args.Get(0); it != nil {
		return it.(*types.Itinerary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItineraryService) Delete(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return m.Called(ctx, userID, itineraryID).Error(0)
}

func (m *mockItineraryService) Share(ctx context.Context, userID, itineraryID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID, itineraryID)
	return args.String(0), args.Error(1)
}

func (m *mockItineraryService) Unshare(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return m.Called(ctx, userID, itineraryID).Error(0)
}

func (m *mockItineraryService) UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, update itinerary.UpdateActivityRequest) (*types.Activity, error) {
	args := m.Called(ctx, userID, activityID, update)
	if a := args.Get(0); a != nil {
		return a.(*types.Activity), args.Error(1)
	}
	return nil, args.Error(1)
}

// APITestSuite drives the full HTTP stack (router, CORS, JWT middleware,
// handlers) against mocked services.
type APITestSuite struct {
	suite.Suite
	server           *httptest.Server
	client           *http.Client
	jwtCfg           config.JWTConfig
	userID           uuid.UUID
	authService      *mockAuthService
	itineraryService *mockItineraryService
}

func (s *APITestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	s.jwtCfg = config.JWTConfig{
		SecretKey:      "e2e-test-secret",
		Issuer:         "trip-planner-test",
		Audience:       "trip-planner-api",
		AccessTokenTTL: time.Hour,
	}
	s.userID = uuid.New()
	s.authService = new(mockAuthService)
	s.itineraryService = new(mockItineraryService)

	c := &container.Container{
		Logger:           logger,
		AuthHandler:      auth.NewHandler(s.authService, logger),
		ItineraryHandler: itinerary.NewHandler(s.itineraryService, "http://localhost:8000", logger),
	}

	authenticate := auth.Authenticate(logger, s.jwtCfg)
	s.server = httptest.NewServer(router.SetupRouter(c, authenticate))
	s.client = s.server.Client()
}

func (s *APITestSuite) TearDownSuite() {
	s.server.Close()
}

// mintAccessToken signs a token the Authenticate middleware accepts.
func (s *APITestSuite) mintAccessToken(userID uuid.UUID) string {
	claims := types.Claims{
		UserID: userID.String(),
		Email:  "e2e@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtCfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.SecretKey))
	s.Require().NoError(err)
	return token
}

func (s *APITestSuite) doJSON(method, path, token string, body any) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *APITestSuite) TestProtectedRoutesRequireToken() {
	resp := s.doJSON(http.MethodGet, "/api/v1/itineraries", "", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestRejectsTamperedToken() {
	claims := types.Claims{
		UserID: s.userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	s.Require().NoError(err)

	resp := s.doJSON(http.MethodGet, "/api/v1/itineraries", token, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *APITestSuite) TestLoginReturnsTokenPair() {
	s.authService.On("Login", mock.Anything, "user@example.com", "password123").
		Return("access-token", "refresh-token", nil).Once()

	resp := s.doJSON(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	s.Equal("access-token", payload.AccessToken)
	s.Equal("refresh-token", payload.RefreshToken)
}

func (s *APITestSuite) TestCreateItineraryAcceptedWhileGenerating() {
	itineraryID := uuid.New()
	s.itineraryService.On("Create", mock.Anything, s.userID, mock.AnythingOfType("itinerary.CreateItineraryRequest")).
		Return(&types.Itinerary{
			ID:          itineraryID,
			UserID:      s.userID,
			Title:       "Trip to Lisbon",
			Destination: "Lisbon",
			Status:      types.StatusGenerating,
		}, nil).Once()

	token := s.mintAccessToken(s.userID)
	resp := s.doJSON(http.MethodPost, "/api/v1/itineraries", token, map[string]any{
		"destination": "Lisbon",
		"startDate":   "2026-09-10T00:00:00Z",
		"endDate":     "2026-09-13T00:00:00Z",
		"budget":      900,
		"budgetRange": "MID_RANGE",
		"groupSize":   2,
		"travelStyle": "CULTURAL",
		"interests":   []string{"food", "history"},
	})
	defer resp.Body.Close()
	s.Equal(http.StatusAccepted, resp.StatusCode)

	var it types.Itinerary
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&it))
	s.Equal(itineraryID, it.ID)
	s.Equal(types.StatusGenerating, it.Status)
}

func (s *APITestSuite) TestSharedItineraryIsPublic() {
	s.itineraryService.On("GetShared", mock.Anything, "abc123def456").
		Return(&types.Itinerary{
			ID:          uuid.New(),
			Title:       "Trip to Rome",
			Destination: "Rome",
			Status:      types.StatusShared,
			IsPublic:    true,
		}, nil).Once()

	// No Authorization header: the shared route sits in the public group.
	resp := s.doJSON(http.MethodGet, "/api/v1/shared/abc123def456", "", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var it types.Itinerary
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&it))
	s.Equal("Rome", it.Destination)
}

func (s *APITestSuite) TestUnknownShareTokenIs404() {
	s.itineraryService.On("GetShared", mock.Anything, "nope").
		Return(nil, types.ErrNotFound).Once()

	resp := s.doJSON(http.MethodGet, "/api/v1/shared/nope", "", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *APITestSuite) TestQuotaExceededMapsTo429() {
	s.itineraryService.On("Create", mock.Anything, s.userID, mock.AnythingOfType("itinerary.CreateItineraryRequest")).
		Return(nil, types.ErrQuotaExceeded).Once()

	token := s.mintAccessToken(s.userID)
	resp := s.doJSON(http.MethodPost, "/api/v1/itineraries", token, map[string]any{
		"destination": "Lisbon",
		"startDate":   "2026-09-10T00:00:00Z",
		"endDate":     "2026-09-13T00:00:00Z",
		"budget":      900,
		"budgetRange": "MID_RANGE",
		"groupSize":   2,
		"travelStyle": "CULTURAL",
		"interests":   []string{"food"},
	})
	defer resp.Body.Close()
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
}

func (s *APITestSuite) TestPingIsOpen() {
	resp, err := s.client.Get(fmt.Sprintf("%s/ping", s.server.URL))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
