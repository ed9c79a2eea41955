package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

var _ Repository = (*PostgresItineraryRepo)(nil)

// DB is the subset of pgxpool.Pool the repository uses; it lets tests swap in
// a mock pool.
type DB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository defines the persistence contract for itineraries and their
// generated trees.
type Repository interface {
	CreatePending(ctx context.Context, userID uuid.UUID, req types.GenerationRequest, title string) (uuid.UUID, error)
	SaveGenerated(ctx context.Context, itineraryID uuid.UUID, result *types.GeneratedItinerary, generationTimeMs int64) error
	MarkFailed(ctx context.Context, itineraryID uuid.UUID) error
	GetByID(ctx context.Context, itineraryID uuid.UUID) (*types.Itinerary, error)
	GetByShareToken(ctx context.Context, token string) (*types.Itinerary, error)
	List(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus, page, limit int) ([]types.Itinerary, int, error)
	Update(ctx context.Context, userID, itineraryID uuid.UUID, update UpdateItineraryRequest) error
	Delete(ctx context.Context, userID, itineraryID uuid.UUID) error
	SetShareToken(ctx context.Context, userID, itineraryID uuid.UUID, candidate string) (string, error)
	ClearShareToken(ctx context.Context, userID, itineraryID uuid.UUID) error
	UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, update UpdateActivityRequest) (*types.Activity, error)
	CountGenerationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	RecordAIUsage(ctx context.Context, usage types.AIUsage) error
}

type PostgresItineraryRepo struct {
	logger *slog.Logger
	pgpool DB
}

func NewPostgresItineraryRepo(pgpool DB, logger *slog.Logger) *PostgresItineraryRepo {
	return &PostgresItineraryRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// CreatePending inserts the itinerary shell in GENERATING state before the
// pipeline runs.
func (r *PostgresItineraryRepo) CreatePending(ctx context.Context, userID uuid.UUID, req types.GenerationRequest, title string) (uuid.UUID, error) {
	var itineraryID uuid.UUID
	err := r.pgpool.QueryRow(ctx,
		`INSERT INTO itineraries
            (user_id, title, destination, start_date, end_date, duration,
             budget, budget_range, group_size, travel_style, interests, status)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
         RETURNING id`,
		userID, title, req.Destination, req.StartDate, req.EndDate, req.Duration(),
		req.Budget, req.BudgetRange, req.GroupSize, req.TravelStyle, req.Interests,
		types.StatusGenerating).Scan(&itineraryID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert pending itinerary: %w", err)
	}
	return itineraryID, nil
}

// SaveGenerated writes the generated tree and settles the itinerary as
// COMPLETED in a single transaction.
func (r *PostgresItineraryRepo) SaveGenerated(ctx context.Context, itineraryID uuid.UUID, result *types.GeneratedItinerary, generationTimeMs int64) error {
	tx, err := r.pgpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE itineraries
         SET status = $1, summary = $2, highlights = $3, estimated_cost = $4,
             generation_source = $5, generation_time_ms = $6, updated_at = now()
         WHERE id = $7`,
		types.StatusCompleted, result.Summary, result.Highlights, result.EstimatedCost,
		string(result.Source), generationTimeMs, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to settle itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}

	for _, day := range result.Days {
		var weatherJSON []byte
		if day.Weather != nil {
			weatherJSON, err = json.Marshal(day.Weather)
			if err != nil {
				return fmt.Errorf("failed to marshal weather for day %d: %w", day.DayNumber, err)
			}
		}

		var dayID uuid.UUID
		err = tx.QueryRow(ctx,
			`INSERT INTO itinerary_days
                (itinerary_id, day_number, date, title, summary, estimated_cost, weather)
             VALUES ($1, $2, $3, $4, $5, $6, $7)
             RETURNING id`,
			itineraryID, day.DayNumber, day.Date, day.Title, day.Summary,
			day.EstimatedCost, weatherJSON).Scan(&dayID)
		if err != nil {
			return fmt.Errorf("failed to insert day %d: %w", day.DayNumber, err)
		}

		for _, activity := range day.Activities {
			_, err = tx.Exec(ctx,
				`INSERT INTO activities
                    (day_id, title, description, category, location, coordinates,
                     start_time, end_time, duration, estimated_cost, tips, "order")
                 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				dayID, activity.Title, activity.Description, activity.Category,
				activity.Location, nullableString(activity.Coordinates),
				activity.StartTime, activity.EndTime, activity.Duration,
				activity.EstimatedCost, activity.Tips, activity.Order)
			if err != nil {
				return fmt.Errorf("failed to insert activity %q: %w", activity.Title, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit generated itinerary: %w", err)
	}
	return nil
}

// MarkFailed settles the itinerary as FAILED after a pipeline error.
func (r *PostgresItineraryRepo) MarkFailed(ctx context.Context, itineraryID uuid.UUID) error {
	_, err := r.pgpool.Exec(ctx,
		`UPDATE itineraries SET status = $1, updated_at = now() WHERE id = $2`,
		types.StatusFailed, itineraryID)
	if err != nil {
		return fmt.Errorf("failed to mark itinerary failed: %w", err)
	}
	return nil
}

const itineraryColumns = `id, user_id, title, destination, start_date, end_date, duration,
       budget, budget_range, group_size, travel_style, interests, status,
       summary, highlights, estimated_cost, generation_source, generation_time_ms,
       is_public, share_token, created_at, updated_at`

func scanItinerary(row pgx.Row) (*types.Itinerary, error) {
	var it types.Itinerary
	err := row.Scan(
		&it.ID, &it.UserID, &it.Title, &it.Destination, &it.StartDate, &it.EndDate,
		&it.Duration, &it.Budget, &it.BudgetRange, &it.GroupSize, &it.TravelStyle,
		&it.Interests, &it.Status, &it.Summary, &it.Highlights, &it.EstimatedCost,
		&it.Source, &it.GenerationTime, &it.IsPublic, &it.ShareToken,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan itinerary: %w", err)
	}
	return &it, nil
}

// GetByID loads one itinerary with its full day and activity tree.
func (r *PostgresItineraryRepo) GetByID(ctx context.Context, itineraryID uuid.UUID) (*types.Itinerary, error) {
	it, err := scanItinerary(r.pgpool.QueryRow(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE id = $1`, itineraryID))
	if err != nil {
		return nil, err
	}
	if err := r.loadTree(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetByShareToken loads a public itinerary by its share token.
func (r *PostgresItineraryRepo) GetByShareToken(ctx context.Context, token string) (*types.Itinerary, error) {
	it, err := scanItinerary(r.pgpool.QueryRow(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries
         WHERE share_token = $1 AND is_public = TRUE`, token))
	if err != nil {
		return nil, err
	}
	if err := r.loadTree(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *PostgresItineraryRepo) loadTree(ctx context.Context, it *types.Itinerary) error {
	dayRows, err := r.pgpool.Query(ctx,
		`SELECT id, itinerary_id, day_number, date, title, summary, estimated_cost, weather
         FROM itinerary_days WHERE itinerary_id = $1 ORDER BY day_number`, it.ID)
	if err != nil {
		return fmt.Errorf("failed to query itinerary days: %w", err)
	}
	defer dayRows.Close()

	var days []types.ItineraryDay
	for dayRows.Next() {
		var day types.ItineraryDay
		var weatherJSON []byte
		err = dayRows.Scan(&day.ID, &day.ItineraryID, &day.DayNumber, &day.Date,
			&day.Title, &day.Summary, &day.EstimatedCost, &weatherJSON)
		if err != nil {
			return fmt.Errorf("failed to scan itinerary day: %w", err)
		}
		if len(weatherJSON) > 0 {
			var weather types.WeatherData
			if err := json.Unmarshal(weatherJSON, &weather); err != nil {
				return fmt.Errorf("failed to unmarshal day weather: %w", err)
			}
			day.Weather = &weather
		}
		day.Activities = []types.Activity{}
		days = append(days, day)
	}
	if err := dayRows.Err(); err != nil {
		return fmt.Errorf("day rows iteration failed: %w", err)
	}

	dayIndex := make(map[uuid.UUID]int, len(days))
	for i, day := range days {
		dayIndex[day.ID] = i
	}

	activityRows, err := r.pgpool.Query(ctx,
		`SELECT a.id, a.day_id, a.title, a.description, a.category, a.location,
                a.coordinates, a.start_time, a.end_time, a.duration, a.estimated_cost,
                a.tips, a."order", a.user_notes, a.is_completed
         FROM activities a
         JOIN itinerary_days d ON d.id = a.day_id
         WHERE d.itinerary_id = $1
         ORDER BY a."order"`, it.ID)
	if err != nil {
		return fmt.Errorf("failed to query activities: %w", err)
	}
	defer activityRows.Close()

	for activityRows.Next() {
		var activity types.Activity
		err = activityRows.Scan(&activity.ID, &activity.DayID, &activity.Title,
			&activity.Description, &activity.Category, &activity.Location,
			&activity.Coordinates, &activity.StartTime, &activity.EndTime,
			&activity.Duration, &activity.EstimatedCost, &activity.Tips,
			&activity.Order, &activity.UserNotes, &activity.IsCompleted)
		if err != nil {
			return fmt.Errorf("failed to scan activity: %w", err)
		}
		if i, ok := dayIndex[activity.DayID]; ok {
			days[i].Activities = append(days[i].Activities, activity)
		}
	}
	if err := activityRows.Err(); err != nil {
		return fmt.Errorf("activity rows iteration failed: %w", err)
	}

	it.Days = days
	return nil
}

// List returns one page of the user's itineraries, newest first, without the
// day trees. Status filters when non-empty.
func (r *PostgresItineraryRepo) List(ctx context.Context, userID uuid.UUID, status types.ItineraryStatus, page, limit int) ([]types.Itinerary, int, error) {
	var total int
	var err error
	if status != "" {
		err = r.pgpool.QueryRow(ctx,
			`SELECT COUNT(*) FROM itineraries WHERE user_id = $1 AND status = $2`,
			userID, status).Scan(&total)
	} else {
		err = r.pgpool.QueryRow(ctx,
			`SELECT COUNT(*) FROM itineraries WHERE user_id = $1`, userID).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count itineraries: %w", err)
	}

	offset := (page - 1) * limit
	var rows pgx.Rows
	if status != "" {
		rows, err = r.pgpool.Query(ctx,
			`SELECT `+itineraryColumns+` FROM itineraries
             WHERE user_id = $1 AND status = $2
             ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
			userID, status, limit, offset)
	} else {
		rows, err = r.pgpool.Query(ctx,
			`SELECT `+itineraryColumns+` FROM itineraries
             WHERE user_id = $1
             ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			userID, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query itineraries: %w", err)
	}
	defer rows.Close()

	itineraries := make([]types.Itinerary, 0, limit)
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, err
		}
		itineraries = append(itineraries, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("itinerary rows iteration failed: %w", err)
	}
	return itineraries, total, nil
}

// Update changes the mutable fields of an itinerary the user owns.
func (r *PostgresItineraryRepo) Update(ctx context.Context, userID, itineraryID uuid.UUID, update UpdateItineraryRequest) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE itineraries
         SET title = COALESCE($1, title),
             status = COALESCE($2, status),
             updated_at = now()
         WHERE id = $3 AND user_id = $4`,
		update.Title, update.Status, itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to update itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Delete removes an itinerary the user owns; days and activities cascade.
func (r *PostgresItineraryRepo) Delete(ctx context.Context, userID, itineraryID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM itineraries WHERE id = $1 AND user_id = $2`, itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// SetShareToken publishes an itinerary and returns its share token. An
// itinerary shared before keeps its existing token so previously distributed
// URLs stay valid; the candidate token is only used on first share.
func (r *PostgresItineraryRepo) SetShareToken(ctx context.Context, userID, itineraryID uuid.UUID, candidate string) (string, error) {
	var token string
	err := r.pgpool.QueryRow(ctx,
		`UPDATE itineraries
         SET is_public = TRUE, share_token = COALESCE(share_token, $1), updated_at = now()
         WHERE id = $2 AND user_id = $3
         RETURNING share_token`,
		candidate, itineraryID, userID).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", types.ErrNotFound
		}
		return "", fmt.Errorf("failed to set share token: %w", err)
	}
	return token, nil
}

// ClearShareToken unpublishes an itinerary.
func (r *PostgresItineraryRepo) ClearShareToken(ctx context.Context, userID, itineraryID uuid.UUID) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE itineraries
         SET is_public = FALSE, share_token = NULL, updated_at = now()
         WHERE id = $1 AND user_id = $2`,
		itineraryID, userID)
	if err != nil {
		return fmt.Errorf("failed to clear share token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}

// UpdateActivity updates the user-editable fields of an activity, checking
// ownership through the day and itinerary joins.
func (r *PostgresItineraryRepo) UpdateActivity(ctx context.Context, userID, activityID uuid.UUID, update UpdateActivityRequest) (*types.Activity, error) {
	var activity types.Activity
	err := r.pgpool.QueryRow(ctx,
		`UPDATE activities a
         SET title = COALESCE($1, a.title),
             description = COALESCE($2, a.description),
             start_time = COALESCE($3, a.start_time),
             end_time = COALESCE($4, a.end_time),
             estimated_cost = COALESCE($5, a.estimated_cost),
             user_notes = COALESCE($6, a.user_notes),
             is_completed = COALESCE($7, a.is_completed)
         FROM itinerary_days d
         JOIN itineraries i ON i.id = d.itinerary_id
         WHERE a.id = $8 AND a.day_id = d.id AND i.user_id = $9
         RETURNING a.id, a.day_id, a.title, a.description, a.category, a.location,
                   a.coordinates, a.start_time, a.end_time, a.duration,
                   a.estimated_cost, a.tips, a."order", a.user_notes, a.is_completed`,
		update.Title, update.Description, update.StartTime, update.EndTime,
		update.EstimatedCost, update.UserNotes, update.IsCompleted, activityID, userID).Scan(
		&activity.ID, &activity.DayID, &activity.Title, &activity.Description,
		&activity.Category, &activity.Location, &activity.Coordinates,
		&activity.StartTime, &activity.EndTime, &activity.Duration,
		&activity.EstimatedCost, &activity.Tips, &activity.Order,
		&activity.UserNotes, &activity.IsCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return &activity, nil
}

// CountGenerationsSince counts the user's itineraries created since the given
// time, for quota enforcement.
func (r *PostgresItineraryRepo) CountGenerationsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.pgpool.QueryRow(ctx,
		`SELECT COUNT(*) FROM itineraries WHERE user_id = $1 AND created_at >= $2`,
		userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count generations: %w", err)
	}
	return count, nil
}

// RecordAIUsage stores one model call record for cost tracking.
func (r *PostgresItineraryRepo) RecordAIUsage(ctx context.Context, usage types.AIUsage) error {
	_, err := r.pgpool.Exec(ctx,
		`INSERT INTO ai_usage (model, response_time_ms, success, error_message, endpoint)
         VALUES ($1, $2, $3, $4, $5)`,
		usage.Model, usage.ResponseTimeMs, usage.Success, usage.ErrorMessage, usage.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to record AI usage: %w", err)
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
