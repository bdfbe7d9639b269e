package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/geo"
)

// LocationsResponse wraps a list of registry locations.
type LocationsResponse struct {
	Locations []geo.Location `json:"locations"`
}

// handleNearestLocation godoc
// @Summary Find the nearest registry location
// @Description Returns the closest known location to the given coordinates, or 404 when the point is outside the supported service area.
// @Tags locations
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} geo.Location
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/locations/nearest [get]
func (app *App) handleNearestLocation(c *gin.Context) {
	lat, lon, ok := parseCoordinates(c)
	if !ok {
		return
	}

	loc := app.catalog.Nearest(lat, lon)
	if loc == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "coordinates are outside the supported service area"})
		return
	}
	c.JSON(http.StatusOK, loc)
}

// handleSearchLocations godoc
// @Summary Search registry locations
// @Description Case-insensitive search across location names and regions. Name-prefix matches are returned first.
// @Tags locations
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {object} LocationsResponse
// @Router /v1/locations/search [get]
func (app *App) handleSearchLocations(c *gin.Context) {
	c.JSON(http.StatusOK, LocationsResponse{
		Locations: app.catalog.Search(c.Query("q")),
	})
}

// handleGetLocation godoc
// @Summary Get a registry location by slug
// @Tags locations
// @Produce json
// @Param slug path string true "Location slug"
// @Success 200 {object} geo.Location
// @Failure 404 {object} ErrorResponse
// @Router /v1/locations/{slug} [get]
func (app *App) handleGetLocation(c *gin.Context) {
	loc := app.catalog.BySlug(c.Param("slug"))
	if loc == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "location not found"})
		return
	}
	c.JSON(http.StatusOK, loc)
}
