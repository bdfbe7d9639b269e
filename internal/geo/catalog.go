package geo

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// regionPaddingDegrees expands every region box when deciding whether a
// coordinate is inside the service area, so places just over a province
// border still resolve.
const regionPaddingDegrees = 1.0

const earthRadiusKm = 6371.0

// Catalog provides lookups over the location registry and region bounds.
type Catalog interface {
	// IsInSupportedRegion reports whether the point lies inside any padded region box.
	IsInSupportedRegion(latitude, longitude float64) bool
	// Nearest returns the closest registry location by great-circle distance,
	// or nil when the point is outside every padded region.
	Nearest(latitude, longitude float64) *Location
	// Search returns locations matching the query, name-prefix matches first.
	Search(query string) []Location
	// BySlug returns the location with the given slug, or nil.
	BySlug(slug string) *Location
	// Regions returns the configured region bounds.
	Regions() []RegionBounds
}

type catalog struct {
	locations []Location
	regions   []RegionBounds
	bySlug    map[string]int
	logger    *slog.Logger
}

// NewCatalog creates a catalog from the embedded seed registry.
func NewCatalog(logger *slog.Logger) (Catalog, error) {
	locations, regions, err := loadSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to load seed registry: %w", err)
	}
	return NewCatalogWithData(logger, locations, regions)
}

// NewCatalogWithData creates a catalog from explicit data. This is useful for
// testing and for registries managed outside the binary.
func NewCatalogWithData(logger *slog.Logger, locations []Location, regions []RegionBounds) (Catalog, error) {
	c := &catalog{
		locations: locations,
		regions:   regions,
		bySlug:    make(map[string]int, len(locations)),
		logger:    logger.With("component", "geo-catalog"),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.logger.Debug("catalog initialized", "locations", len(locations), "regions", len(regions))
	return c, nil
}

// validate enforces the registry invariants: unique slugs, sane boxes with
// the center inside, and geolocation-provenance entries inside a padded region.
func (c *catalog) validate() error {
	for i, l := range c.locations {
		if l.Slug == "" {
			return fmt.Errorf("location %q has an empty slug", l.Name)
		}
		if _, exists := c.bySlug[l.Slug]; exists {
			return fmt.Errorf("duplicate location slug %q", l.Slug)
		}
		c.bySlug[l.Slug] = i

		if l.Provenance == ProvenanceGeolocation && !c.inAnyRegion(l.Latitude, l.Longitude) {
			return fmt.Errorf("geolocated location %q is outside every supported region", l.Slug)
		}
	}
	for _, r := range c.regions {
		if r.North <= r.South {
			return fmt.Errorf("region %q: north (%f) must be greater than south (%f)", r.Id, r.North, r.South)
		}
		if r.East <= r.West {
			return fmt.Errorf("region %q: east (%f) must be greater than west (%f)", r.Id, r.East, r.West)
		}
		if !r.Contains(r.Center.Latitude, r.Center.Longitude, 0) {
			return fmt.Errorf("region %q: center is outside its own bounds", r.Id)
		}
	}
	return nil
}

func (c *catalog) inAnyRegion(latitude, longitude float64) bool {
	for _, r := range c.regions {
		if r.Contains(latitude, longitude, regionPaddingDegrees) {
			return true
		}
	}
	return false
}

func (c *catalog) IsInSupportedRegion(latitude, longitude float64) bool {
	return c.inAnyRegion(latitude, longitude)
}

func (c *catalog) Nearest(latitude, longitude float64) *Location {
	if !c.inAnyRegion(latitude, longitude) {
		return nil
	}
	if len(c.locations) == 0 {
		return nil
	}

	// Linear scan. The registry holds hundreds of entries, so a spatial
	// index is not warranted yet.
	best := 0
	bestDistance := haversineKm(latitude, longitude, c.locations[0].Latitude, c.locations[0].Longitude)
	for i := 1; i < len(c.locations); i++ {
		d := haversineKm(latitude, longitude, c.locations[i].Latitude, c.locations[i].Longitude)
		if d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	loc := c.locations[best]
	return &loc
}

func (c *catalog) Search(query string) []Location {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Location{}
	}

	var prefix, substring []Location
	for _, l := range c.locations {
		name := strings.ToLower(l.Name)
		region := strings.ToLower(l.Region)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, l)
		case strings.Contains(name, q) || strings.Contains(region, q):
			substring = append(substring, l)
		}
	}

	// Registry order is preserved within each bucket.
	return append(prefix, substring...)
}

func (c *catalog) BySlug(slug string) *Location {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil
	}
	loc := c.locations[i]
	return &loc
}

func (c *catalog) Regions() []RegionBounds {
	regions := make([]RegionBounds, len(c.regions))
	copy(regions, c.regions)
	return regions
}

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
