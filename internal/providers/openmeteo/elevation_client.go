package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// API Docs: https://open-meteo.com/en/docs/elevation-api
// Sample request: https://api.open-meteo.com/v1/elevation?latitude=-17.8292&longitude=31.0522
const defaultElevationBaseURL = "https://api.open-meteo.com/v1/elevation"

// ElevationClient looks up terrain elevation for raw coordinates that have
// no registry entry to borrow an elevation from.
type ElevationClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewElevationClient creates an elevation lookup client with the production
// base URL.
func NewElevationClient(logger *slog.Logger) *ElevationClient {
	return NewElevationClientWithBaseURL(logger, defaultElevationBaseURL)
}

// NewElevationClientWithBaseURL creates a client against a custom base URL
// for testing with httptest servers.
func NewElevationClientWithBaseURL(logger *slog.Logger, baseURL string) *ElevationClient {
	return &ElevationClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-elevation-client"),
	}
}

// GetElevation returns the terrain elevation in meters for the coordinates.
func (c *ElevationClient) GetElevation(ctx context.Context, latitude, longitude float64) (float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp ElevationAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Elevation) == 0 {
		return 0, fmt.Errorf("response has no elevation values")
	}

	return apiResp.Elevation[0], nil
}
