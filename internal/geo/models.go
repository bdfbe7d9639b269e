package geo

import "github.com/nyuchitech/mukoko-weather-sub001/internal/types"

// Provenance records how a location entered the registry.
type Provenance string

const (
	ProvenanceSeed        Provenance = "seed"
	ProvenanceCommunity   Provenance = "community"
	ProvenanceGeolocation Provenance = "geolocation"
)

// Location is a named place in the registry.
type Location struct {
	Slug            string     `json:"slug" yaml:"slug"`
	Name            string     `json:"name" yaml:"name"`
	Region          string     `json:"region" yaml:"region"`
	Latitude        float64    `json:"latitude" yaml:"latitude"`
	Longitude       float64    `json:"longitude" yaml:"longitude"`
	ElevationMeters float64    `json:"elevationMeters" yaml:"elevationMeters"`
	Tags            []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	CountryCode     string     `json:"countryCode" yaml:"countryCode"`
	Provenance      Provenance `json:"provenance" yaml:"provenance"`
}

// Coords returns the location's coordinates as a shared value type.
func (l Location) Coords() types.Coords {
	return types.NewCoords(l.Latitude, l.Longitude)
}

// RegionBounds is a rectangular service-area box with a reference center.
type RegionBounds struct {
	Id     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	North  float64 `json:"north" yaml:"north"`
	South  float64 `json:"south" yaml:"south"`
	East   float64 `json:"east" yaml:"east"`
	West   float64 `json:"west" yaml:"west"`
	Center types.Coords
}

// Contains reports whether the point lies inside the box expanded by
// padding degrees in every direction.
func (b RegionBounds) Contains(latitude, longitude float64, padding float64) bool {
	return latitude <= b.North+padding &&
		latitude >= b.South-padding &&
		longitude <= b.East+padding &&
		longitude >= b.West-padding
}
