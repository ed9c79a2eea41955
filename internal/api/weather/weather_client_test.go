package weather

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", slog.New(slog.NewTextHandler(os.Stderr, nil)))
	client.baseURL = server.URL
	client.httpClient = server.Client()
	return client
}

// forecastJSON builds a response with 3-hour entries at the given hours for
// each of the given days.
func forecastJSON(start time.Time, days int, hours []int) string {
	body := `{"cod": "200", "list": [`
	first := true
	for d := 0; d < days; d++ {
		for _, h := range hours {
			if !first {
				body += ","
			}
			first = false
			ts := start.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour).Unix()
			temp := 10.0 + float64(h)
			body += fmt.Sprintf(`{
				"dt": %d,
				"main": {"temp": %.1f, "temp_min": %.1f, "temp_max": %.1f, "humidity": 60},
				"weather": [{"main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
				"wind": {"speed": 3.5}
			}`, ts, temp, temp-2, temp+2)
		}
	}
	return body + `]}`
}

func TestClient_GetForecast(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

	t.Run("collapses 3-hour entries into daily summaries", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			_, _ = w.Write([]byte(forecastJSON(start, 3, []int{0, 6, 12, 18})))
		})

		forecast, err := client.GetForecast(ctx, 48.8584, 2.2945, 5)
		require.NoError(t, err)
		require.Len(t, forecast, 3)

		day := forecast[0]
		assert.Equal(t, "2026-09-10", day.Date)
		// Midday entry (hour 12) is the representative reading: temp 22,
		// min across the day 8, max across the day 30.
		assert.InDelta(t, 22.0, day.Temperature.Day, 0.01)
		assert.InDelta(t, 8.0, day.Temperature.Min, 0.01)
		assert.InDelta(t, 30.0, day.Temperature.Max, 0.01)
		assert.Equal(t, "scattered clouds", day.Weather.Description)
		assert.Equal(t, 60, day.Humidity)
		assert.InDelta(t, 3.5, day.WindSpeed, 0.01)
	})

	t.Run("caps the number of days", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(forecastJSON(start, 5, []int{12})))
		})

		forecast, err := client.GetForecast(ctx, 48.8584, 2.2945, 2)
		require.NoError(t, err)
		assert.Len(t, forecast, 2)
		assert.Equal(t, "2026-09-10", forecast[0].Date)
		assert.Equal(t, "2026-09-11", forecast[1].Date)
	})

	t.Run("http error is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"cod": 401, "message": "Invalid API key"}`, http.StatusUnauthorized)
		})

		_, err := client.GetForecast(ctx, 0, 0, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 401")
	})
}

func TestClient_GetCurrentWeather(t *testing.T) {
	ctx := context.Background()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"dt": 1757502000,
			"main": {"temp": 21.5, "temp_min": 18.0, "temp_max": 24.0, "humidity": 55},
			"weather": [{"main": "Clear", "description": "clear sky", "icon": "01d"}],
			"wind": {"speed": 2.1}
		}`))
	})

	current, err := client.GetCurrentWeather(ctx, 48.8584, 2.2945)
	require.NoError(t, err)
	assert.InDelta(t, 21.5, current.Temperature.Day, 0.01)
	assert.Equal(t, "clear sky", current.Weather.Description)
	assert.Equal(t, 55, current.Humidity)
}
