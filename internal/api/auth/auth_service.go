package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for authentication.
type Service interface {
	Register(ctx context.Context, username, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshSession(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

// ServiceImpl provides the implementation for Service.
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

func (s *ServiceImpl) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", email))

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return uuid.Nil, fmt.Errorf("%w: username and email are required", types.ErrBadRequest)
	}
	if !strings.Contains(email, "@") {
		return uuid.Nil, fmt.Errorf("%w: invalid email address", types.ErrBadRequest)
	}
	if len(password) < 8 {
		return uuid.Nil, fmt.Errorf("%w: password must be at least 8 characters", types.ErrBadRequest)
	}

	userID, err := s.repo.Register(ctx, username, email, password)
	if err != nil {
		l.Error("Registration failed", slog.Any("error", err))
		return uuid.Nil, err
	}
	return userID, nil
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (string, string, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("email", email))

	accessToken, refreshToken, err := s.repo.Login(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		l.Warn("Login failed", slog.Any("error", err))
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *ServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	return s.repo.RefreshSession(ctx, refreshToken)
}

func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.Logout(ctx, refreshToken)
}

// UpdatePassword verifies the old password before writing the new one.
func (s *ServiceImpl) UpdatePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	l := s.logger.With(slog.String("method", "UpdatePassword"), slog.String("user_id", userID.String()))

	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", types.ErrBadRequest)
	}

	if err := s.repo.VerifyPassword(ctx, userID, oldPassword); err != nil {
		l.Warn("Old password verification failed", slog.Any("error", err))
		return err
	}

	if err := s.repo.UpdatePassword(ctx, userID, newPassword); err != nil {
		l.Error("Password update failed", slog.Any("error", err))
		return err
	}

	l.Info("Password updated")
	return nil
}

func (s *ServiceImpl) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}
