package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/types"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
	"github.com/sony/gobreaker"
)

// API Docs: https://open-meteo.com/en/docs
// Open-Meteo is the basic (secondary) upstream: raw meteorological fields
// only, no enrichment. The resolver backfills approximate insights.
const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

const providerName = "openmeteo"

type Client struct {
	httpClient *http.Client
	baseURL    string
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo adapter with the production base URL.
func NewClient(logger *slog.Logger) *Client {
	return NewClientWithBaseURL(logger, defaultBaseURL)
}

// NewClientWithBaseURL creates an adapter against a custom base URL. This is
// useful for testing with httptest servers.
func NewClientWithBaseURL(logger *slog.Logger, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        providerName,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger.With("component", "openmeteo-client"),
	}
}

func (c *Client) Name() string { return providerName }

// Fetch retrieves a 7-day forecast and maps it into a snapshot. The caller's
// context bounds the request; there is no retry.
func (c *Client) Fetch(ctx context.Context, latitude, longitude, elevationMeters float64, timezone string) (*weather.Snapshot, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	currentVars := []string{
		"temperature_2m",
		"apparent_temperature",
		"relative_humidity_2m",
		"is_day",
		"weather_code",
		"wind_speed_10m",
		"wind_gusts_10m",
		"wind_direction_10m",
		"cloud_cover",
		"uv_index",
		"visibility",
	}
	hourlyVars := []string{
		"temperature_2m",
		"relative_humidity_2m",
		"precipitation_probability",
		"weather_code",
		"wind_speed_10m",
		"uv_index",
	}
	dailyVars := []string{
		"temperature_2m_max",
		"temperature_2m_min",
		"precipitation_probability_max",
		"weather_code",
		"sunrise",
		"sunset",
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("elevation", fmt.Sprintf("%f", elevationMeters))
	q.Set("current", strings.Join(currentVars, ","))
	q.Set("hourly", strings.Join(hourlyVars, ","))
	q.Set("daily", strings.Join(dailyVars, ","))
	q.Set("timezone", timezone)
	q.Set("forecast_days", "7")
	q.Set("timeformat", "iso8601")
	q.Set("wind_speed_unit", "kmh")
	u.RawQuery = q.Encode()

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, u.String())
	})
	if err != nil {
		return nil, err
	}
	apiResp := result.(*ForecastAPIResponse)

	return mapResponse(latitude, longitude, elevationMeters, apiResp)
}

func (c *Client) doRequest(ctx context.Context, requestURL string) (*ForecastAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp ForecastAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &apiResp, nil
}

// mapResponse translates the provider payload into the domain snapshot.
func mapResponse(latitude, longitude, elevationMeters float64, apiResp *ForecastAPIResponse) (*weather.Snapshot, error) {
	loc, err := time.LoadLocation(apiResp.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", apiResp.Timezone, err)
	}

	hourlyLen := len(apiResp.Hourly.Time)
	if hourlyLen > weather.HourlyHorizon {
		hourlyLen = weather.HourlyHorizon
	}
	hourly := weather.HourlySeries{
		Times:                make([]time.Time, 0, hourlyLen),
		TemperatureC:         make([]float64, 0, hourlyLen),
		HumidityPct:          make([]float64, 0, hourlyLen),
		PrecipProbabilityPct: make([]float64, 0, hourlyLen),
		WindSpeedKmh:         make([]float64, 0, hourlyLen),
		UVIndex:              make([]float64, 0, hourlyLen),
		Codes:                make([]types.WeatherCode, 0, hourlyLen),
	}
	for i := 0; i < hourlyLen; i++ {
		t, err := time.ParseInLocation("2006-01-02T15:04", apiResp.Hourly.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly time %q: %w", apiResp.Hourly.Time[i], err)
		}
		if i >= len(apiResp.Hourly.Temperature2M) ||
			i >= len(apiResp.Hourly.RelativeHumidity2M) ||
			i >= len(apiResp.Hourly.PrecipitationProbability) ||
			i >= len(apiResp.Hourly.WeatherCode) ||
			i >= len(apiResp.Hourly.WindSpeed10M) ||
			i >= len(apiResp.Hourly.UVIndex) {
			return nil, fmt.Errorf("hourly arrays shorter than time axis at index %d", i)
		}
		hourly.Times = append(hourly.Times, t)
		hourly.TemperatureC = append(hourly.TemperatureC, apiResp.Hourly.Temperature2M[i])
		hourly.HumidityPct = append(hourly.HumidityPct, apiResp.Hourly.RelativeHumidity2M[i])
		hourly.PrecipProbabilityPct = append(hourly.PrecipProbabilityPct, apiResp.Hourly.PrecipitationProbability[i])
		hourly.WindSpeedKmh = append(hourly.WindSpeedKmh, apiResp.Hourly.WindSpeed10M[i])
		hourly.UVIndex = append(hourly.UVIndex, apiResp.Hourly.UVIndex[i])
		hourly.Codes = append(hourly.Codes, types.WeatherCode(apiResp.Hourly.WeatherCode[i]))
	}

	dailyLen := len(apiResp.Daily.Time)
	daily := weather.DailySeries{
		Times:                make([]time.Time, 0, dailyLen),
		HighC:                make([]float64, 0, dailyLen),
		LowC:                 make([]float64, 0, dailyLen),
		PrecipProbabilityPct: make([]float64, 0, dailyLen),
		Codes:                make([]types.WeatherCode, 0, dailyLen),
		Sunrise:              make([]time.Time, 0, dailyLen),
		Sunset:               make([]time.Time, 0, dailyLen),
	}
	for i := 0; i < dailyLen; i++ {
		day, err := time.ParseInLocation("2006-01-02", apiResp.Daily.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse daily time %q: %w", apiResp.Daily.Time[i], err)
		}
		if i >= len(apiResp.Daily.Temperature2MMax) ||
			i >= len(apiResp.Daily.Temperature2MMin) ||
			i >= len(apiResp.Daily.PrecipitationProbabilityMax) ||
			i >= len(apiResp.Daily.WeatherCode) ||
			i >= len(apiResp.Daily.Sunrise) ||
			i >= len(apiResp.Daily.Sunset) {
			return nil, fmt.Errorf("daily arrays shorter than time axis at index %d", i)
		}
		sunrise, _ := time.ParseInLocation("2006-01-02T15:04", apiResp.Daily.Sunrise[i], loc)
		sunset, _ := time.ParseInLocation("2006-01-02T15:04", apiResp.Daily.Sunset[i], loc)

		daily.Times = append(daily.Times, day)
		daily.HighC = append(daily.HighC, apiResp.Daily.Temperature2MMax[i])
		daily.LowC = append(daily.LowC, apiResp.Daily.Temperature2MMin[i])
		daily.PrecipProbabilityPct = append(daily.PrecipProbabilityPct, apiResp.Daily.PrecipitationProbabilityMax[i])
		daily.Codes = append(daily.Codes, types.WeatherCode(apiResp.Daily.WeatherCode[i]))
		daily.Sunrise = append(daily.Sunrise, sunrise)
		daily.Sunset = append(daily.Sunset, sunset)
	}

	currentTime, err := time.ParseInLocation("2006-01-02T15:04", apiResp.Current.Time, loc)
	if err != nil {
		currentTime = time.Now().In(loc)
	}

	return &weather.Snapshot{
		Latitude:        latitude,
		Longitude:       longitude,
		ElevationMeters: elevationMeters,
		Timezone:        apiResp.Timezone,
		UpdatedAt:       time.Now().UTC(),
		Current: weather.CurrentConditions{
			Time:             currentTime,
			TemperatureC:     apiResp.Current.Temperature2M,
			FeelsLikeC:       apiResp.Current.ApparentTemp,
			HumidityPct:      apiResp.Current.RelativeHumidity,
			WindSpeedKmh:     apiResp.Current.WindSpeed10M,
			WindGustKmh:      apiResp.Current.WindGusts10M,
			WindDirectionDeg: apiResp.Current.WindDirection10M,
			CloudCoverPct:    apiResp.Current.CloudCover,
			UVIndex:          apiResp.Current.UVIndex,
			VisibilityKm:     apiResp.Current.VisibilityM / 1000.0,
			Code:             types.WeatherCode(apiResp.Current.WeatherCode),
			Description:      types.GetWeatherDescription(apiResp.Current.WeatherCode),
			IsDay:            apiResp.Current.IsDay == 1,
		},
		Hourly: hourly,
		Daily:  daily,
	}, nil
}
