package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-ai-trip-planner/config"
	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Repository = (*PostgresAuthRepo)(nil)

// Repository defines the persistence contract for authentication.
type Repository interface {
	Register(ctx context.Context, username, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshSession(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
	jwtCfg config.JWTConfig
}

func NewPostgresAuthRepo(pgpool *pgxpool.Pool, jwtCfg config.JWTConfig, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
		jwtCfg: jwtCfg,
	}
}

// generateRefreshToken creates a random refresh token
func generateRefreshToken() string {
	return uuid.NewString()
}

// Register creates a new user together with its default subscription and
// preference rows.
func (r *PostgresAuthRepo) Register(ctx context.Context, username, email, password string) (uuid.UUID, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
         VALUES ($1, $2, $3) RETURNING id`,
		username, email, string(hashedPassword)).Scan(&userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO subscriptions (user_id) VALUES ($1)`, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create default subscription: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_preferences (user_id) VALUES ($1)`, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create default preferences: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("User registered", slog.String("user_id", userID.String()))
	return userID, nil
}

// Login authenticates a user and returns an access token plus a refresh token.
func (r *PostgresAuthRepo) Login(ctx context.Context, email, password string) (string, string, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, username, email, password_hash FROM users WHERE email = $1",
		email).Scan(&user.ID, &user.Username, &user.Email, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", types.ErrUnauthenticated
		}
		return "", "", fmt.Errorf("user lookup failed: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return "", "", types.ErrUnauthenticated
	}

	accessToken, err := generateAccessToken(r.jwtCfg, user.ID.String(), user.Username, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken := generateRefreshToken()
	expiresAt := time.Now().Add(r.jwtCfg.RefreshTokenTTL)
	_, err = r.pgpool.Exec(ctx,
		"INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)",
		user.ID, newRefreshToken, expiresAt)
	if err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, newRefreshToken, nil
}

// RefreshSession rotates a refresh token and issues a fresh access token.
func (r *PostgresAuthRepo) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	var userID uuid.UUID
	var expiresAt time.Time
	var revokedAt *time.Time
	err := r.pgpool.QueryRow(ctx,
		"SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token = $1",
		refreshToken).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return "", "", types.ErrUnauthenticated
	}

	if time.Now().After(expiresAt) || revokedAt != nil {
		return "", "", types.ErrUnauthenticated
	}

	var username, email string
	err = r.pgpool.QueryRow(ctx,
		"SELECT username, email FROM users WHERE id = $1",
		userID).Scan(&username, &email)
	if err != nil {
		return "", "", fmt.Errorf("user not found: %w", err)
	}

	newAccessToken, err := generateAccessToken(r.jwtCfg, userID.String(), username, email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken := generateRefreshToken()
	newExpiresAt := time.Now().Add(r.jwtCfg.RefreshTokenTTL)
	_, err = r.pgpool.Exec(ctx,
		"INSERT INTO refresh_tokens (user_id, token, expires_at) VALUES ($1, $2, $3)",
		userID, newRefreshToken, newExpiresAt)
	if err != nil {
		return "", "", fmt.Errorf("failed to store new refresh token: %w", err)
	}

	_, err = r.pgpool.Exec(ctx,
		"UPDATE refresh_tokens SET revoked_at = $1 WHERE token = $2",
		time.Now(), refreshToken)
	if err != nil {
		r.logger.Warn("Failed to revoke old refresh token", slog.Any("error", err))
	}

	return newAccessToken, newRefreshToken, nil
}

// Logout revokes the presented refresh token.
func (r *PostgresAuthRepo) Logout(ctx context.Context, refreshToken string) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = $1
         WHERE token = $2 AND revoked_at IS NULL`,
		time.Now(), refreshToken)
	if err != nil {
		return fmt.Errorf("invalidate refresh token: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Already revoked or unknown; not an error for logout.
		r.logger.Warn("No refresh token found or already revoked")
	}
	return nil
}

func (r *PostgresAuthRepo) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	var hashedPassword string
	err := r.pgpool.QueryRow(ctx, "SELECT password_hash FROM users WHERE id = $1", userID).Scan(&hashedPassword)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.ErrNotFound
		}
		return fmt.Errorf("verify password: query failed: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		return types.ErrUnauthenticated
	}
	return nil
}

func (r *PostgresAuthRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	newHashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		string(newHashedPassword), time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update password: db update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}

	// Changing the password revokes every outstanding refresh token.
	return r.InvalidateAllUserRefreshTokens(ctx, userID)
}

func (r *PostgresAuthRepo) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pgpool.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = $1
		 WHERE user_id = $2 AND revoked_at IS NULL`,
		time.Now(), userID)
	if err != nil {
		return fmt.Errorf("invalidate all tokens: db update failed: %w", err)
	}
	return nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, username, email, created_at, updated_at FROM users WHERE id = $1",
		userID).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return &user, nil
}
