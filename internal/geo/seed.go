package geo

import (
	_ "embed"
	"fmt"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Locations []Location   `yaml:"locations"`
	Regions   []seedRegion `yaml:"regions"`
}

type seedRegion struct {
	Id     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	North  float64 `yaml:"north"`
	South  float64 `yaml:"south"`
	East   float64 `yaml:"east"`
	West   float64 `yaml:"west"`
	Center struct {
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
	} `yaml:"center"`
}

// loadSeed parses the embedded registry shipped with the binary.
func loadSeed() ([]Location, []RegionBounds, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse seed registry: %w", err)
	}

	regions := make([]RegionBounds, 0, len(f.Regions))
	for _, r := range f.Regions {
		regions = append(regions, RegionBounds{
			Id:     r.Id,
			Name:   r.Name,
			North:  r.North,
			South:  r.South,
			East:   r.East,
			West:   r.West,
			Center: types.NewCoords(r.Center.Latitude, r.Center.Longitude),
		})
	}
	return f.Locations, regions, nil
}
