package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/cache"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/config"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/observability"
	"github.com/nyuchitech/mukoko-weather-sub001/internal/timezone"
)

// defaultTimezone is used when the timezone lookup cannot place the point.
// The whole service area shares one zone.
const defaultTimezone = "Africa/Harare"

// Provider fetches a snapshot for a coordinate from one upstream. A provider
// may fail or time out; the resolver treats either as a declined stage.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, latitude, longitude, elevationMeters float64, timezone string) (*Snapshot, error)
}

// Query identifies what to resolve: a registry location (slug set) or a raw
// coordinate.
type Query struct {
	Slug            string
	Latitude        float64
	Longitude       float64
	ElevationMeters float64
}

// cacheKey buckets raw coordinates to two decimals (~1.1 km) so nearby
// repeat requests share an entry.
func (q Query) cacheKey() string {
	if q.Slug != "" {
		return "loc:" + q.Slug
	}
	return fmt.Sprintf("pt:%.2f,%.2f", q.Latitude, q.Longitude)
}

// Result is a resolved snapshot plus its source tag.
type Result struct {
	Snapshot Snapshot `json:"snapshot"`
	Source   Source   `json:"source"`
}

// Service resolves weather for a query. It never fails: when every upstream
// declines, the seasonal synthesizer answers.
type Service interface {
	Resolve(ctx context.Context, q Query) Result
}

// stage is one pipeline step. Stages are attempted in order; a stage that
// errors, times out, or returns a malformed snapshot declines and the next
// stage is tried. No stage retries itself.
type stage struct {
	name     string
	source   Source
	timeout  time.Duration
	provider Provider
}

type resolver struct {
	stages  []stage
	store   cache.Store[Snapshot]
	ttl     time.Duration
	tzSvc   timezone.Service
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewResolver creates the resolution pipeline: cache, then primary, then
// secondary, then the seasonal synthesizer.
func NewResolver(
	cfg *config.Config,
	logger *slog.Logger,
	metrics *observability.Metrics,
	store cache.Store[Snapshot],
	tzSvc timezone.Service,
	primary Provider,
	secondary Provider,
) Service {
	return NewResolverWithClock(cfg, logger, metrics, store, tzSvc, primary, secondary, clockwork.NewRealClock())
}

// NewResolverWithClock is NewResolver with an injected clock for tests.
func NewResolverWithClock(
	cfg *config.Config,
	logger *slog.Logger,
	metrics *observability.Metrics,
	store cache.Store[Snapshot],
	tzSvc timezone.Service,
	primary Provider,
	secondary Provider,
	clock clockwork.Clock,
) Service {
	timeout := time.Duration(cfg.App.ProviderTimeoutSeconds) * time.Second
	return &resolver{
		stages: []stage{
			{name: primary.Name(), source: SourcePrimary, timeout: timeout, provider: primary},
			{name: secondary.Name(), source: SourceSecondary, timeout: timeout, provider: secondary},
		},
		store:   store,
		ttl:     time.Duration(cfg.App.CacheTTLMinutes) * time.Minute,
		tzSvc:   tzSvc,
		clock:   clock,
		metrics: metrics,
		logger:  logger.With("component", "weather-resolver"),
	}
}

func (r *resolver) Resolve(ctx context.Context, q Query) Result {
	key := q.cacheKey()
	if snap, ok := r.store.Get(key); ok {
		r.metrics.CacheLookups.WithLabelValues("hit").Inc()
		r.metrics.ResolveTotal.WithLabelValues(string(snap.Source), "true").Inc()
		return Result{Snapshot: snap, Source: snap.Source}
	}
	r.metrics.CacheLookups.WithLabelValues("miss").Inc()

	tz := r.timezoneFor(q)

	for _, st := range r.stages {
		snap, ok := r.attempt(ctx, st, q, tz)
		if !ok {
			continue
		}

		snap.LocationSlug = q.Slug
		snap.Source = st.source
		if st.source == SourceSecondary && snap.Insights == nil {
			snap.Insights = ApproximateInsights(snap)
		}
		r.store.Put(key, *snap, r.ttl)
		r.metrics.ResolveTotal.WithLabelValues(string(st.source), "false").Inc()
		return Result{Snapshot: *snap, Source: st.source}
	}

	// Last resort. Never cached: a cached degraded answer would mask
	// provider recovery for the whole TTL.
	snap := Synthesize(q.Latitude, q.Longitude, q.ElevationMeters, r.clock.Now(), tz)
	snap.LocationSlug = q.Slug
	r.metrics.ResolveTotal.WithLabelValues(string(SourceFallback), "false").Inc()
	r.logger.Warn("all providers declined, synthesized snapshot",
		"latitude", q.Latitude,
		"longitude", q.Longitude,
	)
	return Result{Snapshot: snap, Source: SourceFallback}
}

// attempt runs one stage with its bounded timeout. A failure of any kind is
// a decline, never an error to the caller.
func (r *resolver) attempt(ctx context.Context, st stage, q Query, tz string) (*Snapshot, bool) {
	stageCtx, cancel := context.WithTimeout(ctx, st.timeout)
	defer cancel()

	start := r.clock.Now()
	snap, err := st.provider.Fetch(stageCtx, q.Latitude, q.Longitude, q.ElevationMeters, tz)
	r.metrics.ProviderDuration.WithLabelValues(st.name).Observe(r.clock.Since(start).Seconds())

	if err != nil {
		r.metrics.StageErrors.WithLabelValues(st.name, "unavailable").Inc()
		r.logger.Warn("provider declined", "stage", st.name, "error", err)
		return nil, false
	}
	if snap == nil {
		r.metrics.StageErrors.WithLabelValues(st.name, "empty").Inc()
		r.logger.Warn("provider returned no snapshot", "stage", st.name)
		return nil, false
	}
	if err := snap.Validate(); err != nil {
		r.metrics.StageErrors.WithLabelValues(st.name, "malformed").Inc()
		r.logger.Warn("provider payload malformed", "stage", st.name, "error", err)
		return nil, false
	}
	return snap, true
}

func (r *resolver) timezoneFor(q Query) string {
	tz, err := r.tzSvc.GetTimezone(q.Latitude, q.Longitude)
	if err != nil {
		r.logger.Debug("timezone lookup failed, using default",
			"latitude", q.Latitude,
			"longitude", q.Longitude,
			"error", err,
		)
		return defaultTimezone
	}
	return tz
}
