package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

var _ Searcher = (*Client)(nil)

// Searcher is the place lookup contract consumed by the itinerary generator.
type Searcher interface {
	SearchPlaces(ctx context.Context, query string, locationBias string) ([]types.Place, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error)
}

// Client talks to the Google Places text search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
}

func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.New(1*time.Hour, 2*time.Hour),
		logger:     logger,
	}
}

type textSearchResponse struct {
	Results      []types.Place `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
}

type placeDetailsResponse struct {
	Result       types.Place `json:"result"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
}

// SearchPlaces performs a text search. Results are cached for an hour keyed on
// the query and bias.
func (c *Client) SearchPlaces(ctx context.Context, query string, locationBias string) ([]types.Place, error) {
	cacheKey := "search:" + query + "|" + locationBias
	if cached, found := c.cache.Get(cacheKey); found {
		if places, ok := cached.([]types.Place); ok {
			return places, nil
		}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	if locationBias != "" {
		params.Set("locationbias", locationBias)
	}

	endpoint := fmt.Sprintf("%s/textsearch/json?%s", c.baseURL, params.Encode())
	var parsed textSearchResponse
	if err := c.doGet(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}

	// ZERO_RESULTS is a valid empty answer, not a failure.
	if parsed.Status != "OK" && parsed.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places API returned status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	c.cache.Set(cacheKey, parsed.Results, cache.DefaultExpiration)
	return parsed.Results, nil
}

// GetPlaceDetails fetches a single place by its id.
func (c *Client) GetPlaceDetails(ctx context.Context, placeID string) (*types.Place, error) {
	cacheKey := "details:" + placeID
	if cached, found := c.cache.Get(cacheKey); found {
		if place, ok := cached.(*types.Place); ok {
			return place, nil
		}
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.apiKey)
	params.Set("fields", "place_id,name,formatted_address,geometry,rating,user_ratings_total,types,price_level")

	endpoint := fmt.Sprintf("%s/details/json?%s", c.baseURL, params.Encode())
	var parsed placeDetailsResponse
	if err := c.doGet(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}

	if parsed.Status == "NOT_FOUND" {
		return nil, types.ErrNotFound
	}
	if parsed.Status != "OK" {
		return nil, fmt.Errorf("places API returned status %s: %s", parsed.Status, parsed.ErrorMessage)
	}

	c.cache.Set(cacheKey, &parsed.Result, cache.DefaultExpiration)
	return &parsed.Result, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("places API returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode places response: %w", err)
	}
	return nil
}
