package tomorrowio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/types"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
	"github.com/sony/gobreaker"
)

// API Docs: https://docs.tomorrow.io/reference/weather-forecast
// Tomorrow.io is the enriched (primary) upstream: it carries the full
// insight record natively.
const defaultBaseURL = "https://api.tomorrow.io/v4/weather/forecast"

const providerName = "tomorrowio"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	circuit    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a Tomorrow.io adapter with the production base URL.
func NewClient(logger *slog.Logger, apiKey string) *Client {
	return NewClientWithBaseURL(logger, apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates an adapter against a custom base URL for
// testing with httptest servers.
func NewClientWithBaseURL(logger *slog.Logger, apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        providerName,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger.With("component", "tomorrowio-client"),
	}
}

func (c *Client) Name() string { return providerName }

// Fetch retrieves hourly and daily timelines and maps them into an enriched
// snapshot. The caller's context bounds the request; there is no retry.
func (c *Client) Fetch(ctx context.Context, latitude, longitude, elevationMeters float64, timezone string) (*weather.Snapshot, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("location", fmt.Sprintf("%f,%f", latitude, longitude))
	q.Set("timesteps", "1h,1d")
	q.Set("units", "metric")
	q.Set("timezone", timezone)
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	result, err := c.circuit.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, u.String())
	})
	if err != nil {
		return nil, err
	}
	apiResp := result.(*ForecastAPIResponse)

	return mapResponse(latitude, longitude, elevationMeters, timezone, apiResp)
}

func (c *Client) doRequest(ctx context.Context, requestURL string) (*ForecastAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

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

// mapResponse translates the provider payload into an enriched snapshot.
func mapResponse(latitude, longitude, elevationMeters float64, timezone string, apiResp *ForecastAPIResponse) (*weather.Snapshot, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", timezone, err)
	}
	if len(apiResp.Timelines.Hourly) == 0 || len(apiResp.Timelines.Daily) == 0 {
		return nil, fmt.Errorf("response has empty timelines")
	}

	hourlyLen := len(apiResp.Timelines.Hourly)
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
		entry := apiResp.Timelines.Hourly[i]
		t, err := time.Parse(time.RFC3339, entry.Time)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hourly time %q: %w", entry.Time, err)
		}
		hourly.Times = append(hourly.Times, t.In(loc))
		hourly.TemperatureC = append(hourly.TemperatureC, entry.Values.Temperature)
		hourly.HumidityPct = append(hourly.HumidityPct, entry.Values.Humidity)
		hourly.PrecipProbabilityPct = append(hourly.PrecipProbabilityPct, entry.Values.PrecipitationProbability)
		hourly.WindSpeedKmh = append(hourly.WindSpeedKmh, msToKmh(entry.Values.WindSpeed))
		hourly.UVIndex = append(hourly.UVIndex, entry.Values.UVIndex)
		hourly.Codes = append(hourly.Codes, mapWeatherCode(entry.Values.WeatherCode))
	}

	dailyLen := len(apiResp.Timelines.Daily)
	if dailyLen > weather.DailyHorizon {
		dailyLen = weather.DailyHorizon
	}
	daily := weather.DailySeries{
		Times:                make([]time.Time, 0, dailyLen),
		HighC:                make([]float64, 0, dailyLen),
		LowC:                 make([]float64, 0, dailyLen),
		PrecipProbabilityPct: make([]float64, 0, dailyLen),
		Codes:                make([]types.WeatherCode, 0, dailyLen),
		Sunrise:              make([]time.Time, 0, dailyLen),
		Sunset:               make([]time.Time, 0, dailyLen),
	}
	for _, entry := range apiResp.Timelines.Daily[:dailyLen] {
		day, err := time.Parse(time.RFC3339, entry.Time)
		if err != nil {
			return nil, fmt.Errorf("failed to parse daily time %q: %w", entry.Time, err)
		}
		sunrise, _ := time.Parse(time.RFC3339, entry.Values.SunriseTime)
		sunset, _ := time.Parse(time.RFC3339, entry.Values.SunsetTime)

		daily.Times = append(daily.Times, day.In(loc))
		daily.HighC = append(daily.HighC, entry.Values.TemperatureMax)
		daily.LowC = append(daily.LowC, entry.Values.TemperatureMin)
		daily.PrecipProbabilityPct = append(daily.PrecipProbabilityPct, entry.Values.PrecipitationProbabilityAvg)
		daily.Codes = append(daily.Codes, mapWeatherCode(entry.Values.WeatherCodeMax))
		daily.Sunrise = append(daily.Sunrise, sunrise.In(loc))
		daily.Sunset = append(daily.Sunset, sunset.In(loc))
	}

	now := apiResp.Timelines.Hourly[0]
	nowTime, _ := time.Parse(time.RFC3339, now.Time)
	code := mapWeatherCode(now.Values.WeatherCode)
	current := weather.CurrentConditions{
		Time:             nowTime.In(loc),
		TemperatureC:     now.Values.Temperature,
		FeelsLikeC:       now.Values.TemperatureApparent,
		HumidityPct:      now.Values.Humidity,
		WindSpeedKmh:     msToKmh(now.Values.WindSpeed),
		WindGustKmh:      msToKmh(now.Values.WindGust),
		WindDirectionDeg: now.Values.WindDirection,
		CloudCoverPct:    now.Values.CloudCover,
		UVIndex:          now.Values.UVIndex,
		VisibilityKm:     now.Values.Visibility,
		Code:             code,
		Description:      types.GetWeatherDescription(int(code)),
		IsDay:            nowTime.In(loc).Hour() >= 6 && nowTime.In(loc).Hour() < 18,
	}

	return &weather.Snapshot{
		Latitude:        latitude,
		Longitude:       longitude,
		ElevationMeters: elevationMeters,
		Timezone:        timezone,
		UpdatedAt:       time.Now().UTC(),
		Current:         current,
		Hourly:          hourly,
		Daily:           daily,
		Insights:        mapInsights(now.Values, apiResp.Timelines.Daily[0].Values),
	}, nil
}

// mapInsights builds the native insight record from the first hourly and
// daily entries.
func mapInsights(now HourlyValues, today DailyValues) *weather.Insights {
	dewPoint := now.DewPoint
	heatIndex := now.TemperatureApparent
	tsProb := now.ThunderstormProbability
	uvConcern := now.UVHealthConcern
	visibility := now.Visibility
	windSpeed := msToKmh(now.WindSpeed)
	windGust := msToKmh(now.WindGust)
	gdd10 := growingDegreeDays(today.TemperatureMax, today.TemperatureMin, 10)
	gdd4 := growingDegreeDays(today.TemperatureMax, today.TemperatureMin, 4)
	et := today.EvapotranspirationSum
	moonPhase := today.MoonPhase
	precipType := now.PrecipitationType

	return &weather.Insights{
		DewPointC:                  &dewPoint,
		HeatIndexC:                 &heatIndex,
		ThunderstormProbabilityPct: &tsProb,
		UVHealthConcern:            &uvConcern,
		VisibilityKm:               &visibility,
		WindSpeedKmh:               &windSpeed,
		WindGustKmh:                &windGust,
		GrowingDegreeDays10C:       &gdd10,
		GrowingDegreeDays4C:        &gdd4,
		EvapotranspirationMm:       &et,
		MoonPhase:                  &moonPhase,
		PrecipitationType:          &precipType,
	}
}

// growingDegreeDays is the standard (high+low)/2 − base formula, floored at zero.
func growingDegreeDays(highC, lowC, baseC float64) float64 {
	return math.Max(0, (highC+lowC)/2-baseC)
}

func msToKmh(ms float64) float64 { return ms * 3.6 }

// tomorrowToWMO maps Tomorrow.io condition codes onto the WMO codes the rest
// of the system speaks.
var tomorrowToWMO = map[int]types.WeatherCode{
	1000: types.ClearSky,
	1100: types.MainlyClear,
	1101: types.PartlyCloudy,
	1102: types.Overcast,
	1001: types.Overcast,
	2000: types.Fog,
	2100: types.Fog,
	4000: types.DrizzleLight,
	4200: types.RainSlight,
	4001: types.RainModerate,
	4201: types.RainHeavy,
	5100: types.SnowFallSlight,
	5000: types.SnowFallModerate,
	5101: types.SnowFallHeavy,
	5001: types.SnowGrains,
	6000: types.FreezingDrizzleLight,
	6200: types.FreezingRainLight,
	6001: types.FreezingRainLight,
	6201: types.FreezingRainHeavy,
	7102: types.SnowShowersSlight,
	7000: types.SnowShowersHeavy,
	7101: types.SnowShowersHeavy,
	8000: types.ThunderstormSlightOrModerate,
}

func mapWeatherCode(code int) types.WeatherCode {
	if wmo, ok := tomorrowToWMO[code]; ok {
		return wmo
	}
	return types.Overcast
}
