package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/suitability"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
)

// SuitabilityResponse is an activity rating alongside the snapshot source it
// was derived from.
type SuitabilityResponse struct {
	Activity suitability.Activity `json:"activity"`
	Rating   suitability.Rating   `json:"rating"`
	Source   weather.Source       `json:"source" example:"primary"`
}

// handleGetSuitability godoc
// @Summary Rate conditions for an activity
// @Description Resolves weather for the location and evaluates suitability rules for the activity. Falls back from activity-specific to category rules to a generic good rating.
// @Tags suitability
// @Produce json
// @Param activity query string true "Activity id, e.g. stargazing"
// @Param category query string false "Activity category, e.g. outdoor"
// @Param slug query string false "Registry location slug"
// @Param lat query number false "Latitude (required when slug is absent)"
// @Param lon query number false "Longitude (required when slug is absent)"
// @Success 200 {object} SuitabilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/suitability [get]
func (app *App) handleGetSuitability(c *gin.Context) {
	activity := suitability.Activity{
		Id:       c.Query("activity"),
		Category: c.Query("category"),
	}
	if activity.Id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "activity is required"})
		return
	}

	query, ok := app.weatherQuery(c)
	if !ok {
		return
	}

	result := app.resolver.Resolve(c.Request.Context(), query)
	rating := app.engine.Rate(activity, result.Snapshot.Insights, app.ruleStore.Rules())

	c.JSON(http.StatusOK, SuitabilityResponse{
		Activity: activity,
		Rating:   rating,
		Source:   result.Source,
	})
}
