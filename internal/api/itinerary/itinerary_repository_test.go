package itinerary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

func newMockRepo(t *testing.T) (*PostgresItineraryRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)
	return NewPostgresItineraryRepo(mockPool, testLogger()), mockPool
}

func TestPostgresItineraryRepo_CreatePending(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	userID := uuid.New()
	wantID := uuid.New()
	req := parisRequest()

	mockPool.ExpectQuery("INSERT INTO itineraries").
		WithArgs(userID, "Trip to Paris", req.Destination, req.StartDate, req.EndDate, 3,
			req.Budget, req.BudgetRange, req.GroupSize, req.TravelStyle, req.Interests,
			types.StatusGenerating).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(wantID))

	gotID, err := repo.CreatePending(ctx, userID, req, "Trip to Paris")
	require.NoError(t, err)
	assert.Equal(t, wantID, gotID)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresItineraryRepo_SaveGenerated(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	itineraryID := uuid.New()
	dayID := uuid.New()

	result := &types.GeneratedItinerary{
		Summary:       "Three days in Paris",
		Highlights:    []string{"Eiffel Tower"},
		EstimatedCost: 850,
		Source:        types.SourceModel,
		Days: []types.GeneratedDay{
			{
				DayNumber:     1,
				Date:          time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
				Title:         "Day 1: Icons",
				Summary:       "The unmissable sights",
				EstimatedCost: 300,
				Activities: []types.GeneratedActivity{
					{
						Title:         "Eiffel Tower visit",
						Description:   "Summit at opening time",
						Category:      types.CategorySightseeing,
						Location:      "Champ de Mars",
						StartTime:     "09:00",
						EndTime:       "11:00",
						Duration:      120,
						EstimatedCost: 60,
						Tips:          "Buy tickets online",
						Order:         1,
					},
				},
			},
		},
	}

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE itineraries").
		WithArgs(types.StatusCompleted, result.Summary, result.Highlights, result.EstimatedCost,
			"model", int64(1234), itineraryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectQuery("INSERT INTO itinerary_days").
		WithArgs(itineraryID, 1, result.Days[0].Date, "Day 1: Icons", "The unmissable sights",
			300.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(dayID))
	mockPool.ExpectExec("INSERT INTO activities").
		WithArgs(dayID, "Eiffel Tower visit", "Summit at opening time", types.CategorySightseeing,
			"Champ de Mars", pgxmock.AnyArg(), "09:00", "11:00", 120, 60.0, "Buy tickets online", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()
	mockPool.ExpectRollback()

	err := repo.SaveGenerated(ctx, itineraryID, result, 1234)
	require.NoError(t, err)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresItineraryRepo_SaveGenerated_MissingRowIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	itineraryID := uuid.New()

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE itineraries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), itineraryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	err := repo.SaveGenerated(ctx, itineraryID, &types.GeneratedItinerary{Source: types.SourceModel}, 10)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPostgresItineraryRepo_MarkFailed(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	itineraryID := uuid.New()

	mockPool.ExpectExec("UPDATE itineraries").
		WithArgs(types.StatusFailed, itineraryID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkFailed(ctx, itineraryID))
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresItineraryRepo_Delete_NotFound(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	mockPool.ExpectExec("DELETE FROM itineraries").
		WithArgs(itineraryID, userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(ctx, userID, itineraryID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPostgresItineraryRepo_SetShareToken_FirstShare(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	mockPool.ExpectQuery("UPDATE itineraries").
		WithArgs("abc123def456", itineraryID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"share_token"}).AddRow("abc123def456"))

	token, err := repo.SetShareToken(ctx, userID, itineraryID, "abc123def456")
	require.NoError(t, err)
	assert.Equal(t, "abc123def456", token)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresItineraryRepo_SetShareToken_KeepsExistingToken(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	userID := uuid.New()
	itineraryID := uuid.New()

	// COALESCE keeps the stored token; the fresh candidate is discarded.
	mockPool.ExpectQuery("UPDATE itineraries").
		WithArgs("freshcand789", itineraryID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"share_token"}).AddRow("original12ab"))

	token, err := repo.SetShareToken(ctx, userID, itineraryID, "freshcand789")
	require.NoError(t, err)
	assert.Equal(t, "original12ab", token)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresItineraryRepo_UpdateActivity(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	userID := uuid.New()
	activityID := uuid.New()
	dayID := uuid.New()

	newTitle := "Louvre visit"
	newStart := "10:00"
	newEnd := "13:00"
	newCost := 45.0

	mockPool.ExpectQuery("UPDATE activities").
		WithArgs(&newTitle, (*string)(nil), &newStart, &newEnd, &newCost,
			(*string)(nil), (*bool)(nil), activityID, userID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "day_id", "title", "description", "category", "location",
			"coordinates", "start_time", "end_time", "duration",
			"estimated_cost", "tips", "order", "user_notes", "is_completed",
		}).AddRow(
			activityID, dayID, newTitle, "World-class art", types.CategorySightseeing,
			"Rue de Rivoli", (*string)(nil), newStart, newEnd, 180,
			newCost, "Skip-the-line tickets", 1, (*string)(nil), false,
		))

	activity, err := repo.UpdateActivity(ctx, userID, activityID, UpdateActivityRequest{
		Title:         &newTitle,
		StartTime:     &newStart,
		EndTime:       &newEnd,
		EstimatedCost: &newCost,
	})
	require.NoError(t, err)
	assert.Equal(t, "Louvre visit", activity.Title)
	assert.Equal(t, "10:00", activity.StartTime)
	assert.Equal(t, "13:00", activity.EndTime)
	assert.Equal(t, 45.0, activity.EstimatedCost)
	require.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresItineraryRepo_CountGenerationsSince(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	userID := uuid.New()
	since := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery("SELECT COUNT").
		WithArgs(userID, since).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountGenerationsSince(ctx, userID, since)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestPostgresItineraryRepo_RecordAIUsage(t *testing.T) {
	ctx := context.Background()
	repo, mockPool := newMockRepo(t)
	errMsg := "model unavailable"

	mockPool.ExpectExec("INSERT INTO ai_usage").
		WithArgs("gemini-2.0-flash", int64(3200), false, &errMsg, "itinerary-generation").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.RecordAIUsage(ctx, types.AIUsage{
		Model:          "gemini-2.0-flash",
		ResponseTimeMs: 3200,
		Success:        false,
		ErrorMessage:   &errMsg,
		Endpoint:       "itinerary-generation",
	})
	require.NoError(t, err)
	require.NoError(t, mockPool.ExpectationsWereMet())
}
