package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/frost"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
)

// ErrorResponse is the common error body for all endpoints.
type ErrorResponse struct {
	Error string `json:"error" example:"location not found"`
}

// WeatherResponse is a resolved snapshot plus derived advisories.
type WeatherResponse struct {
	Snapshot   weather.Snapshot `json:"snapshot"`
	Source     weather.Source   `json:"source" example:"primary"`
	FrostAlert *frost.Alert     `json:"frostAlert,omitempty"`
}

// handleGetWeather godoc
// @Summary Get weather for a location
// @Description Resolve current conditions, hourly and daily forecasts for a registry location (by slug) or raw coordinates. Includes a frost advisory when one applies.
// @Tags weather
// @Produce json
// @Param slug query string false "Registry location slug, e.g. harare"
// @Param lat query number false "Latitude (required when slug is absent)"
// @Param lon query number false "Longitude (required when slug is absent)"
// @Success 200 {object} WeatherResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/weather [get]
func (app *App) handleGetWeather(c *gin.Context) {
	query, ok := app.weatherQuery(c)
	if !ok {
		return
	}

	result := app.resolver.Resolve(c.Request.Context(), query)

	resp := WeatherResponse{
		Snapshot: result.Snapshot,
		Source:   result.Source,
	}

	// Synthetic snapshots are estimates; alerting on them would raise false
	// alarms during upstream outages.
	if result.Source != weather.SourceFallback {
		if alert := frost.Detect(result.Snapshot.Hourly); alert != nil {
			resp.FrostAlert = alert
			app.metrics.FrostAlerts.WithLabelValues(alert.Risk.String()).Inc()
		}
	}

	c.JSON(http.StatusOK, resp)
}

// weatherQuery builds a resolver query from either a slug or a coordinate
// pair. Responds with the appropriate error itself when the input is invalid.
func (app *App) weatherQuery(c *gin.Context) (weather.Query, bool) {
	if slug := c.Query("slug"); slug != "" {
		loc := app.catalog.BySlug(slug)
		if loc == nil {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "location not found"})
			return weather.Query{}, false
		}
		return weather.Query{
			Slug:            loc.Slug,
			Latitude:        loc.Latitude,
			Longitude:       loc.Longitude,
			ElevationMeters: loc.ElevationMeters,
		}, true
	}

	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return weather.Query{}, false
	}
	if !app.catalog.IsInSupportedRegion(lat, lon) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "coordinates are outside the supported service area"})
		return weather.Query{}, false
	}

	q := weather.Query{Latitude: lat, Longitude: lon}
	// Raw coordinates carry no elevation. Ask the terrain API, and borrow
	// the nearest registry entry's elevation when that fails, so the
	// lapse-rate adjustment has something to work from.
	elevation, err := app.elevation.GetElevation(c.Request.Context(), lat, lon)
	if err == nil {
		q.ElevationMeters = elevation
	} else if nearest := app.catalog.Nearest(lat, lon); nearest != nil {
		q.ElevationMeters = nearest.ElevationMeters
	}
	return q, true
}

func parseCoordinates(c *gin.Context) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat must be a valid number"})
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lon must be a valid number"})
		return 0, 0, false
	}
	return lat, lon, true
}
