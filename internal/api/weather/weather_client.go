package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

var _ ForecastProvider = (*Client)(nil)

// ForecastProvider is the weather contract consumed by the itinerary generator.
type ForecastProvider interface {
	GetForecast(ctx context.Context, lat, lng float64, days int) ([]types.WeatherData, error)
	GetCurrentWeather(ctx context.Context, lat, lng float64) (*types.WeatherData, error)
}

// Client talks to the OpenWeatherMap API. The free tier exposes a 5-day
// forecast in 3-hour steps, which we collapse into daily summaries.
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
		cache:      cache.New(30*time.Minute, 1*time.Hour),
		logger:     logger,
	}
}

type forecastResponse struct {
	Cod  string          `json:"cod"`
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type currentResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// GetForecast returns up to days daily summaries for the given coordinates.
func (c *Client) GetForecast(ctx context.Context, lat, lng float64, days int) ([]types.WeatherData, error) {
	cacheKey := fmt.Sprintf("forecast:%.4f,%.4f,%d", lat, lng, days)
	if cached, found := c.cache.Get(cacheKey); found {
		if forecast, ok := cached.([]types.WeatherData); ok {
			return forecast, nil
		}
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	endpoint := fmt.Sprintf("%s/forecast?%s", c.baseURL, params.Encode())
	var parsed forecastResponse
	if err := c.doGet(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}

	forecast := groupByDay(parsed.List, days)
	c.cache.Set(cacheKey, forecast, cache.DefaultExpiration)
	return forecast, nil
}

// GetCurrentWeather returns current conditions for the given coordinates.
func (c *Client) GetCurrentWeather(ctx context.Context, lat, lng float64) (*types.WeatherData, error) {
	cacheKey := fmt.Sprintf("current:%.4f,%.4f", lat, lng)
	if cached, found := c.cache.Get(cacheKey); found {
		if current, ok := cached.(*types.WeatherData); ok {
			return current, nil
		}
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, params.Encode())
	var parsed currentResponse
	if err := c.doGet(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}

	data := &types.WeatherData{
		Date: time.Unix(parsed.Dt, 0).UTC().Format("2006-01-02"),
		Temperature: types.Temperature{
			Min: parsed.Main.TempMin,
			Max: parsed.Main.TempMax,
			Day: parsed.Main.Temp,
		},
		Humidity:  parsed.Main.Humidity,
		WindSpeed: parsed.Wind.Speed,
	}
	if len(parsed.Weather) > 0 {
		data.Weather = types.WeatherCondition{
			Main:        parsed.Weather[0].Main,
			Description: parsed.Weather[0].Description,
			Icon:        parsed.Weather[0].Icon,
		}
	}

	c.cache.Set(cacheKey, data, cache.DefaultExpiration)
	return data, nil
}

// groupByDay collapses 3-hour entries into one summary per calendar day,
// taking the entry closest to midday for the representative conditions.
func groupByDay(entries []forecastEntry, days int) []types.WeatherData {
	byDay := make(map[string][]forecastEntry)
	for _, entry := range entries {
		day := time.Unix(entry.Dt, 0).UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], entry)
	}

	dates := make([]string, 0, len(byDay))
	for date := range byDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if days > 0 && len(dates) > days {
		dates = dates[:days]
	}

	forecast := make([]types.WeatherData, 0, len(dates))
	for _, date := range dates {
		dayEntries := byDay[date]

		minTemp := dayEntries[0].Main.TempMin
		maxTemp := dayEntries[0].Main.TempMax
		midday := dayEntries[0]
		middayDistance := hoursFromNoon(dayEntries[0].Dt)
		for _, entry := range dayEntries[1:] {
			minTemp = math.Min(minTemp, entry.Main.TempMin)
			maxTemp = math.Max(maxTemp, entry.Main.TempMax)
			if d := hoursFromNoon(entry.Dt); d < middayDistance {
				middayDistance = d
				midday = entry
			}
		}

		data := types.WeatherData{
			Date: date,
			Temperature: types.Temperature{
				Min: minTemp,
				Max: maxTemp,
				Day: midday.Main.Temp,
			},
			Humidity:  midday.Main.Humidity,
			WindSpeed: midday.Wind.Speed,
		}
		if len(midday.Weather) > 0 {
			data.Weather = types.WeatherCondition{
				Main:        midday.Weather[0].Main,
				Description: midday.Weather[0].Description,
				Icon:        midday.Weather[0].Icon,
			}
		}
		forecast = append(forecast, data)
	}
	return forecast
}

func hoursFromNoon(dt int64) float64 {
	t := time.Unix(dt, 0).UTC()
	return math.Abs(float64(t.Hour()) + float64(t.Minute())/60 - 12)
}

func (c *Client) doGet(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("weather API returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode weather response: %w", err)
	}
	return nil
}
