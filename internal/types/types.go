package types

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Shared sentinel errors used across repositories and services.
var (
	ErrBadRequest      = errors.New("invalid request")
	ErrNotFound        = errors.New("requested item not found")
	ErrConflict        = errors.New("item already exists or conflict")
	ErrUnauthenticated = errors.New("authentication required or invalid credentials")
	ErrForbidden       = errors.New("action forbidden")
	ErrQuotaExceeded   = errors.New("monthly itinerary limit reached")
)

// BudgetRange buckets the traveler's spending level.
type BudgetRange string

const (
	BudgetUltraBudget BudgetRange = "ULTRA_BUDGET"
	BudgetBudget      BudgetRange = "BUDGET"
	BudgetMidRange    BudgetRange = "MID_RANGE"
	BudgetLuxury      BudgetRange = "LUXURY"
	BudgetUltraLuxury BudgetRange = "ULTRA_LUXURY"
)

func (b BudgetRange) Valid() bool {
	switch b {
	case BudgetUltraBudget, BudgetBudget, BudgetMidRange, BudgetLuxury, BudgetUltraLuxury:
		return true
	}
	return false
}

// TravelStyle describes the overall character of the trip.
type TravelStyle string

const (
	StyleAdventure TravelStyle = "ADVENTURE"
	StyleCultural  TravelStyle = "CULTURAL"
	StyleRelaxed   TravelStyle = "RELAXED"
	StyleFoodie    TravelStyle = "FOODIE"
	StyleNightlife TravelStyle = "NIGHTLIFE"
	StyleFamily    TravelStyle = "FAMILY"
	StyleRomantic  TravelStyle = "ROMANTIC"
	StyleBusiness  TravelStyle = "BUSINESS"
	StyleSolo      TravelStyle = "SOLO"
	StyleBalanced  TravelStyle = "BALANCED"
)

func (s TravelStyle) Valid() bool {
	switch s {
	case StyleAdventure, StyleCultural, StyleRelaxed, StyleFoodie, StyleNightlife,
		StyleFamily, StyleRomantic, StyleBusiness, StyleSolo, StyleBalanced:
		return true
	}
	return false
}

// ItineraryStatus tracks the lifecycle of a stored itinerary record.
type ItineraryStatus string

const (
	StatusDraft      ItineraryStatus = "DRAFT"
	StatusGenerating ItineraryStatus = "GENERATING"
	StatusCompleted  ItineraryStatus = "COMPLETED"
	StatusShared     ItineraryStatus = "SHARED"
	StatusArchived   ItineraryStatus = "ARCHIVED"
	StatusFailed     ItineraryStatus = "FAILED"
)

func (s ItineraryStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusGenerating, StatusCompleted, StatusShared, StatusArchived, StatusFailed:
		return true
	}
	return false
}

// ActivityCategory classifies a single activity.
type ActivityCategory string

const (
	CategorySightseeing   ActivityCategory = "SIGHTSEEING"
	CategoryRestaurant    ActivityCategory = "RESTAURANT"
	CategoryEntertainment ActivityCategory = "ENTERTAINMENT"
	CategoryActivity      ActivityCategory = "ACTIVITY"
	CategoryOther         ActivityCategory = "OTHER"
)

// CoerceActivityCategory maps free-text categories coming back from the model
// onto the fixed enumeration. Anything unrecognized becomes OTHER.
func CoerceActivityCategory(raw string) ActivityCategory {
	switch ActivityCategory(raw) {
	case CategorySightseeing, CategoryRestaurant, CategoryEntertainment, CategoryActivity, CategoryOther:
		return ActivityCategory(raw)
	}
	return CategoryOther
}

// FeedbackCategory classifies user feedback submissions.
type FeedbackCategory string

const (
	FeedbackItineraryQuality FeedbackCategory = "ITINERARY_QUALITY"
	FeedbackUserExperience   FeedbackCategory = "USER_EXPERIENCE"
	FeedbackBugReport        FeedbackCategory = "BUG_REPORT"
	FeedbackFeatureRequest   FeedbackCategory = "FEATURE_REQUEST"
	FeedbackGeneral          FeedbackCategory = "GENERAL"
)

func (c FeedbackCategory) Valid() bool {
	switch c {
	case FeedbackItineraryQuality, FeedbackUserExperience, FeedbackBugReport, FeedbackFeatureRequest, FeedbackGeneral:
		return true
	}
	return false
}

// GenerationSource records where a generated itinerary came from: the model's
// parsed JSON reply, or the deterministic fallback template. Both look the
// same to API consumers; operators tell them apart through this flag.
type GenerationSource string

const (
	SourceModel    GenerationSource = "model"
	SourceFallback GenerationSource = "fallback"
)

// GenerationRequest is the validated user input describing a desired trip.
// Immutable once submitted.
type GenerationRequest struct {
	Destination          string      `json:"destination"`
	StartDate            time.Time   `json:"startDate"`
	EndDate              time.Time   `json:"endDate"`
	Budget               float64     `json:"budget"`
	BudgetRange          BudgetRange `json:"budgetRange"`
	GroupSize            int         `json:"groupSize"`
	TravelStyle          TravelStyle `json:"travelStyle"`
	Interests            []string    `json:"interests"`
	DietaryRequirements  []string    `json:"dietaryRequirements,omitempty"`
	MobilityRequirements []string    `json:"mobilityRequirements,omitempty"`
}

// Validate checks the request against the submission rules.
func (r GenerationRequest) Validate() error {
	switch {
	case r.Destination == "":
		return errors.New("destination is required")
	case r.StartDate.IsZero() || r.EndDate.IsZero():
		return errors.New("start and end dates are required")
	case !r.EndDate.After(r.StartDate):
		return errors.New("end date must be after start date")
	case r.Budget <= 0:
		return errors.New("budget must be greater than 0")
	case !r.BudgetRange.Valid():
		return errors.New("invalid budget range")
	case r.GroupSize < 1:
		return errors.New("group size must be at least 1")
	case !r.TravelStyle.Valid():
		return errors.New("invalid travel style")
	case len(r.Interests) == 0:
		return errors.New("select at least one interest")
	}
	return nil
}

// Duration returns the trip length in whole days: ceil((end-start)/24h).
func (r GenerationRequest) Duration() int {
	d := r.EndDate.Sub(r.StartDate)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geometry wraps a place's location the way the Places API reports it.
type Geometry struct {
	Location LatLng `json:"location"`
}

// Place is a single text-search result from the place lookup collaborator.
type Place struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	FormattedAddress string    `json:"formatted_address"`
	Geometry         *Geometry `json:"geometry,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	UserRatingsTotal int       `json:"user_ratings_total,omitempty"`
	Types            []string  `json:"types,omitempty"`
}

// Temperature holds the per-day min/max and midday reading in Celsius.
type Temperature struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Day float64 `json:"day"`
}

// WeatherCondition is the condition descriptor for a forecast day.
type WeatherCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherData is one day of forecast from the weather collaborator.
type WeatherData struct {
	Date        string           `json:"date"`
	Temperature Temperature      `json:"temperature"`
	Weather     WeatherCondition `json:"weather"`
	Humidity    int              `json:"humidity"`
	WindSpeed   float64          `json:"wind_speed"`
}

// GeneratedActivity is a single activity inside a generated day. The JSON
// tags double as the wire contract the model is instructed to follow.
type GeneratedActivity struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      ActivityCategory `json:"category"`
	Location      string           `json:"location"`
	Coordinates   string           `json:"coordinates,omitempty"`
	StartTime     string           `json:"startTime"`
	EndTime       string           `json:"endTime"`
	Duration      int              `json:"duration"`
	EstimatedCost float64          `json:"estimatedCost"`
	Tips          string           `json:"tips"`
	Order         int              `json:"order"`
}

// GeneratedDay is one day of a generated itinerary. Date and Weather are
// attached by the generator after parsing; the model never controls them.
type GeneratedDay struct {
	DayNumber     int                 `json:"dayNumber"`
	Date          time.Time           `json:"date"`
	Title         string              `json:"title"`
	Summary       string              `json:"summary"`
	EstimatedCost float64             `json:"estimatedCost"`
	Weather       *WeatherData        `json:"weather,omitempty"`
	Activities    []GeneratedActivity `json:"activities"`
}

// GeneratedItinerary is the structured output tree produced by the generator.
type GeneratedItinerary struct {
	Summary       string           `json:"summary"`
	Highlights    []string         `json:"highlights"`
	EstimatedCost float64          `json:"estimatedCost"`
	Source        GenerationSource `json:"-"`
	Days          []GeneratedDay   `json:"days"`
}

// Itinerary is the persisted record, including the generated tree once
// generation has settled.
type Itinerary struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"userId"`
	Title          string          `json:"title"`
	Destination    string          `json:"destination"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	Duration       int             `json:"duration"`
	Budget         float64         `json:"budget"`
	BudgetRange    BudgetRange     `json:"budgetRange"`
	GroupSize      int             `json:"groupSize"`
	TravelStyle    TravelStyle     `json:"travelStyle"`
	Interests      []string        `json:"interests"`
	Status         ItineraryStatus `json:"status"`
	Summary        *string         `json:"summary,omitempty"`
	Highlights     []string        `json:"highlights,omitempty"`
	EstimatedCost  *float64        `json:"estimatedCost,omitempty"`
	Source         *string         `json:"-"`
	GenerationTime *int64          `json:"generationTime,omitempty"`
	IsPublic       bool            `json:"isPublic"`
	ShareToken     *string         `json:"shareToken,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	Days           []ItineraryDay  `json:"days,omitempty"`
}

// ItineraryDay is a persisted day row with its activities.
type ItineraryDay struct {
	ID            uuid.UUID    `json:"id"`
	ItineraryID   uuid.UUID    `json:"itineraryId"`
	DayNumber     int          `json:"dayNumber"`
	Date          time.Time    `json:"date"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	EstimatedCost float64      `json:"estimatedCost"`
	Weather       *WeatherData `json:"weather,omitempty"`
	Activities    []Activity   `json:"activities"`
}

// Activity is a persisted activity row. Order defines display sequence and is
// unique within a day; rows are not guaranteed sorted in storage.
type Activity struct {
	ID            uuid.UUID        `json:"id"`
	DayID         uuid.UUID        `json:"dayId"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      ActivityCategory `json:"category"`
	Location      string           `json:"location"`
	Coordinates   *string          `json:"coordinates,omitempty"`
	StartTime     string           `json:"startTime"`
	EndTime       string           `json:"endTime"`
	Duration      int              `json:"duration"`
	EstimatedCost float64          `json:"estimatedCost"`
	Tips          string           `json:"tips"`
	Order         int              `json:"order"`
	UserNotes     *string          `json:"userNotes,omitempty"`
	IsCompleted   bool             `json:"isCompleted"`
}

// UserPreferences stores a user's default planning preferences.
type UserPreferences struct {
	UserID               uuid.UUID   `json:"userId"`
	PreferredBudget      BudgetRange `json:"preferredBudget"`
	TravelStyle          TravelStyle `json:"travelStyle"`
	Interests            []string    `json:"interests"`
	DietaryRequirements  []string    `json:"dietaryRequirements"`
	MobilityRequirements []string    `json:"mobilityRequirements"`
	PreferredLanguage    string      `json:"preferredLanguage"`
	Currency             string      `json:"currency"`
	EmailNotifications   bool        `json:"emailNotifications"`
	PushNotifications    bool        `json:"pushNotifications"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// Subscription is a user's plan record; ItinerariesLimit caps generations per
// calendar month.
type Subscription struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"userId"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	ItinerariesLimit int       `json:"itinerariesLimit"`
	CurrentPeriodEnd time.Time `json:"currentPeriodEnd"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Feedback is a stored feedback submission.
type Feedback struct {
	ID           uuid.UUID        `json:"id"`
	UserID       uuid.UUID        `json:"userId"`
	ItineraryID  *uuid.UUID       `json:"itineraryId,omitempty"`
	Rating       int              `json:"rating"`
	Comment      *string          `json:"comment,omitempty"`
	Category     FeedbackCategory `json:"category"`
	AIQuality    *int             `json:"aiQuality,omitempty"`
	Usability    *int             `json:"usability,omitempty"`
	Accuracy     *int             `json:"accuracy,omitempty"`
	Improvements []string         `json:"improvements"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// AIUsage records one call to the generative model for cost tracking.
type AIUsage struct {
	ID             uuid.UUID `json:"id"`
	Model          string    `json:"model"`
	ResponseTimeMs int64     `json:"responseTime"`
	Success        bool      `json:"success"`
	ErrorMessage   *string   `json:"errorMessage,omitempty"`
	Endpoint       string    `json:"endpoint"`
	CreatedAt      time.Time `json:"createdAt"`
}

// User is the account record.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Claims represents the custom claims included in the JWT access token.
type Claims struct {
	UserID               string `json:"uid"`
	Username             string `json:"usr,omitempty"`
	Email                string `json:"eml"`
	jwt.RegisteredClaims        // Embed standard claims (ExpiresAt, IssuedAt, Subject, etc.).
}

// Pagination describes a paginated listing response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
