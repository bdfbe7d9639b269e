package main

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/cache"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/config"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/geo"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/observability"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/providers/openmeteo"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/providers/tomorrowio"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/suitability"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/timezone"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"

	_ "github.com/nyuchitech/mukoko-weather-sub001/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router    *gin.Engine
	logger    *slog.Logger
	cfg       *config.Config
	metrics   *observability.Metrics
	catalog   geo.Catalog
	resolver  weather.Service
	engine    suitability.Engine
	ruleStore *suitability.RuleStore
	elevation *openmeteo.ElevationClient
	scheduler *gocron.Scheduler
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	metrics := observability.NewMetrics()

	catalog, err := geo.NewCatalog(logger)
	if err != nil {
		return nil, err
	}

	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, err
	}

	primary := newTomorrowClient(cfg, logger)
	secondary := newOpenMeteoClient(cfg, logger)

	store := cache.NewMemoryStore[weather.Snapshot]()
	resolver := weather.NewResolver(cfg, logger, metrics, store, tzSvc, primary, secondary)

	ruleStore, err := suitability.NewRuleStore(logger, cfg.App.RulesPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		router:    router,
		logger:    logger,
		cfg:       cfg,
		metrics:   metrics,
		catalog:   catalog,
		resolver:  resolver,
		engine:    suitability.NewEngine(logger),
		ruleStore: ruleStore,
		elevation: openmeteo.NewElevationClient(logger),
	}

	if err := app.startRuleRefresh(); err != nil {
		return nil, err
	}

	// Register routes
	app.registerRoutes()

	return app, nil
}

func newTomorrowClient(cfg *config.Config, logger *slog.Logger) weather.Provider {
	if cfg.Providers.TomorrowBaseURL != "" {
		return tomorrowio.NewClientWithBaseURL(logger, cfg.Providers.TomorrowAPIKey, cfg.Providers.TomorrowBaseURL)
	}
	return tomorrowio.NewClient(logger, cfg.Providers.TomorrowAPIKey)
}

func newOpenMeteoClient(cfg *config.Config, logger *slog.Logger) weather.Provider {
	if cfg.Providers.OpenMeteoBaseURL != "" {
		return openmeteo.NewClientWithBaseURL(logger, cfg.Providers.OpenMeteoBaseURL)
	}
	return openmeteo.NewClient(logger)
}

// startRuleRefresh schedules periodic reloads of the suitability rule file.
// Disabled when the interval is zero or no rule file is configured.
func (app *App) startRuleRefresh() error {
	if app.cfg.App.RuleRefreshMinutes <= 0 || app.cfg.App.RulesPath == "" {
		return nil
	}

	app.scheduler = gocron.NewScheduler(time.UTC)
	_, err := app.scheduler.Every(app.cfg.App.RuleRefreshMinutes).Minutes().Do(func() {
		if err := app.ruleStore.Refresh(); err != nil {
			app.metrics.RuleRefreshes.WithLabelValues("error").Inc()
			app.logger.Error("rule refresh failed", "error", err)
			return
		}
		app.metrics.RuleRefreshes.WithLabelValues("success").Inc()
	})
	if err != nil {
		return err
	}

	app.scheduler.StartAsync()
	app.logger.Info("rule refresh scheduled", "intervalMinutes", app.cfg.App.RuleRefreshMinutes)
	return nil
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
