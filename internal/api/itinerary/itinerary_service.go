package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

const generationTimeout = 5 * time.Minute

var _ Service = (*ServiceImpl)(nil)

// SubscriptionReader exposes the subscription lookup the quota check needs.
type SubscriptionReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*types.Subscription, error)
}

// Service defines the business logic contract for itineraries.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateItineraryRequest) (*types.Itinerary, error)
	Get(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error)
	GetShared(ctx context.Context, token string) (*types.Itinerary, error)
	List(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus, page, limit int) ([]types.Itinerary, types.Pagination, error)
	Update(ctx context.Context, userID, itineraryID uuid.UUID, update UpdateItineraryRequest) (*types.Itinerary, error)
	Delete(ctx context.Context, userID, itineraryID uuid.UUID) error
	Share(ctx context.Context, userID, itineraryID uuid.UUID) (string, error)
	Unshare(ctx context.Context, userID, itineraryID uuid.UUID) error
	UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, update UpdateActivityRequest) (*types.Activity, error)
}

// ServiceImpl coordinates quota checks, persistence and the asynchronous
// generation pipeline.
type ServiceImpl struct {
	logger           *slog.Logger
	repo             Repository
	subscriptions    SubscriptionReader
	generator        *Generator
	modelName        string
	monthlyFreeLimit int
}

func NewService(repo Repository, subscriptions SubscriptionReader, generator *Generator, modelName string, monthlyFreeLimit int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:           logger,
		repo:             repo,
		subscriptions:    subscriptions,
		generator:        generator,
		modelName:        modelName,
		monthlyFreeLimit: monthlyFreeLimit,
	}
}

// Create validates the request, enforces the monthly quota, stores the
// pending record and kicks off generation in the background. The caller gets
// the GENERATING shell immediately.
func (s *ServiceImpl) Create(ctx context.Context, userID uuid.UUID, req CreateItineraryRequest) (*types.Itinerary, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrBadRequest, err.Error())
	}

	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Trip to %s", req.Destination)
	}

	itineraryID, err := s.repo.CreatePending(ctx, userID, req.GenerationRequest, title)
	if err != nil {
		return nil, err
	}

	// Generation outlives the HTTP request; it runs on a detached context
	// with its own deadline.
	go s.runGeneration(itineraryID, req.GenerationRequest)

	it, err := s.repo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (s *ServiceImpl) checkQuota(ctx context.Context, userID uuid.UUID) error {
	limit := s.monthlyFreeLimit
	sub, err := s.subscriptions.GetByUserID(ctx, userID)
	if err == nil {
		limit = sub.ItinerariesLimit
	} else if !errors.Is(err, types.ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	used, err := s.repo.CountGenerationsSince(ctx, userID, monthStart)
	if err != nil {
		return err
	}
	if used >= limit {
		return types.ErrQuotaExceeded
	}
	return nil
}

func (s *ServiceImpl) runGeneration(itineraryID uuid.UUID, req types.GenerationRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	l := s.logger.With(
		slog.String("itinerary_id", itineraryID.String()),
		slog.String("destination", req.Destination),
	)

	start := time.Now()
	result, err := s.generator.Generate(ctx, req)
	elapsedMs := time.Since(start).Milliseconds()

	usage := types.AIUsage{
		Model:          s.modelName,
		ResponseTimeMs: elapsedMs,
		Success:        err == nil,
		Endpoint:       "itinerary-generation",
	}
	if err != nil {
		msg := err.Error()
		usage.ErrorMessage = &msg
	}
	if usageErr := s.repo.RecordAIUsage(ctx, usage); usageErr != nil {
		l.Warn("Failed to record AI usage", slog.Any("error", usageErr))
	}

	if err != nil {
		l.Error("Itinerary generation failed", slog.Any("error", err))
		if markErr := s.repo.MarkFailed(ctx, itineraryID); markErr != nil {
			l.Error("Failed to mark itinerary failed", slog.Any("error", markErr))
		}
		return
	}

	if err := s.repo.SaveGenerated(ctx, itineraryID, result, elapsedMs); err != nil {
		l.Error("Failed to persist generated itinerary", slog.Any("error", err))
		if markErr := s.repo.MarkFailed(ctx, itineraryID); markErr != nil {
			l.Error("Failed to mark itinerary failed", slog.Any("error", markErr))
		}
		return
	}

	l.Info("Itinerary generation settled",
		slog.String("source", string(result.Source)),
		slog.Int64("elapsed_ms", elapsedMs),
	)
}

// Get loads an itinerary if the caller owns it or it is public.
func (s *ServiceImpl) Get(ctx context.Context, userID, itineraryID uuid.UUID) (*types.Itinerary, error) {
	it, err := s.repo.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	if it.UserID != userID && !it.IsPublic {
		return nil, types.ErrForbidden
	}
	return it, nil
}

// GetShared loads a public itinerary by its share token.
func (s *ServiceImpl) GetShared(ctx context.Context, token string) (*types.Itinerary, error) {
	return s.repo.GetByShareToken(ctx, token)
}

// List returns one page of the caller's itineraries.
func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus, page, limit int) ([]types.Itinerary, types.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	if status != "" && !status.Valid() {
		return nil, types.Pagination{}, fmt.Errorf("%w: invalid status filter", types.ErrBadRequest)
	}

	itineraries, total, err := s.repo.List(ctx, userID, status, page, limit)
	if err != nil {
		return nil, types.Pagination{}, err
	}

	pages := (total + limit - 1) / limit
	return itineraries, types.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// Update changes the mutable fields and returns the refreshed record.
func (s *ServiceImpl) Update(ctx context.Context, userID, itineraryID uuid.UUID, update UpdateItineraryRequest) (*types.Itinerary, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status", types.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, userID, itineraryID, update); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, itineraryID)
}

func (s *ServiceImpl) Delete(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, itineraryID)
}

// Share publishes the itinerary and returns its share token. Re-sharing an
// already shared itinerary keeps the existing token, so links that were
// handed out earlier keep working.
func (s *ServiceImpl) Share(ctx context.Context, userID, itineraryID uuid.UUID) (string, error) {
	candidate, err := newShareToken()
	if err != nil {
		return "", fmt.Errorf("failed to mint share token: %w", err)
	}
	token, err := s.repo.SetShareToken(ctx, userID, itineraryID, candidate)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *ServiceImpl) Unshare(ctx context.Context, userID, itineraryID uuid.UUID) error {
	return s.repo.ClearShareToken(ctx, userID, itineraryID)
}

func (s *ServiceImpl) UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, update UpdateActivityRequest) (*types.Activity, error) {
	return s.repo.UpdateActivity(ctx, userID, activityID, update)
}
