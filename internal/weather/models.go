package weather

import (
	"fmt"
	"time"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/types"
)

// Source identifies which pipeline stage produced a snapshot. Downstream
// hazard messaging is suppressed for SourceFallback, since synthetic curves
// are estimates, not observations.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
	SourceFallback  Source = "fallback"
)

// DailyHorizon is the number of entries every daily series carries.
const DailyHorizon = 7

// HourlyHorizon is the number of entries every hourly series carries.
const HourlyHorizon = 48

// CurrentConditions is the point-in-time observation block of a snapshot.
type CurrentConditions struct {
	Time             time.Time         `json:"time"`
	TemperatureC     float64           `json:"temperatureC"`
	FeelsLikeC       float64           `json:"feelsLikeC"`
	HumidityPct      float64           `json:"humidityPercent"`
	WindSpeedKmh     float64           `json:"windSpeedKmh"`
	WindGustKmh      float64           `json:"windGustKmh"`
	WindDirectionDeg float64           `json:"windDirectionDeg"`
	CloudCoverPct    float64           `json:"cloudCoverPercent"`
	UVIndex          float64           `json:"uvIndex"`
	VisibilityKm     float64           `json:"visibilityKm"`
	Code             types.WeatherCode `json:"code"`
	Description      string            `json:"description"`
	IsDay            bool              `json:"isDay"`
}

// HourlySeries holds parallel arrays of hourly fields. All arrays must share
// the same length.
type HourlySeries struct {
	Times                []time.Time         `json:"times"`
	TemperatureC         []float64           `json:"temperatureC"`
	HumidityPct          []float64           `json:"humidityPercent"`
	PrecipProbabilityPct []float64           `json:"precipProbabilityPercent"`
	WindSpeedKmh         []float64           `json:"windSpeedKmh"`
	UVIndex              []float64           `json:"uvIndex"`
	Codes                []types.WeatherCode `json:"codes"`
}

// Len returns the number of hourly points.
func (h HourlySeries) Len() int { return len(h.Times) }

// DailySeries holds parallel arrays of daily summary fields.
type DailySeries struct {
	Times                []time.Time         `json:"times"`
	HighC                []float64           `json:"highC"`
	LowC                 []float64           `json:"lowC"`
	PrecipProbabilityPct []float64           `json:"precipProbabilityPercent"`
	Codes                []types.WeatherCode `json:"codes"`
	Sunrise              []time.Time         `json:"sunrise"`
	Sunset               []time.Time         `json:"sunset"`
}

// Len returns the number of daily points.
func (d DailySeries) Len() int { return len(d.Times) }

// Insights carries derived/enriched metrics beyond the raw meteorological
// fields. All fields are optional: the enriched provider supplies the full
// record, the insight synthesizer supplies an approximation, and absent
// fields simply never fire suitability conditions.
type Insights struct {
	DewPointC                  *float64 `json:"dewPointC,omitempty"`
	HeatIndexC                 *float64 `json:"heatIndexC,omitempty"`
	ThunderstormProbabilityPct *float64 `json:"thunderstormProbability,omitempty"`
	UVHealthConcern            *float64 `json:"uvHealthConcern,omitempty"`
	VisibilityKm               *float64 `json:"visibility,omitempty"`
	WindSpeedKmh               *float64 `json:"windSpeed,omitempty"`
	WindGustKmh                *float64 `json:"windGust,omitempty"`
	GrowingDegreeDays10C       *float64 `json:"growingDegreeDays10C,omitempty"`
	GrowingDegreeDays4C        *float64 `json:"growingDegreeDays4C,omitempty"`
	EvapotranspirationMm       *float64 `json:"evapotranspiration,omitempty"`
	MoonPhase                  *float64 `json:"moonPhase,omitempty"`
	PrecipitationType          *float64 `json:"precipitationType,omitempty"`
}

// Insight field names as referenced by suitability rule conditions.
const (
	FieldDewPoint                = "dewPoint"
	FieldHeatIndex               = "heatIndex"
	FieldThunderstormProbability = "thunderstormProbability"
	FieldUVHealthConcern         = "uvHealthConcern"
	FieldVisibility              = "visibility"
	FieldWindSpeed               = "windSpeed"
	FieldWindGust                = "windGust"
	FieldGrowingDegreeDays10C    = "growingDegreeDays10C"
	FieldGrowingDegreeDays4C     = "growingDegreeDays4C"
	FieldEvapotranspiration      = "evapotranspiration"
	FieldMoonPhase               = "moonPhase"
	FieldPrecipitationType       = "precipitationType"
)

// Field reads a named insight value. The second return is false when the
// field is absent from this record.
func (i *Insights) Field(name string) (float64, bool) {
	if i == nil {
		return 0, false
	}
	var p *float64
	switch name {
	case FieldDewPoint:
		p = i.DewPointC
	case FieldHeatIndex:
		p = i.HeatIndexC
	case FieldThunderstormProbability:
		p = i.ThunderstormProbabilityPct
	case FieldUVHealthConcern:
		p = i.UVHealthConcern
	case FieldVisibility:
		p = i.VisibilityKm
	case FieldWindSpeed:
		p = i.WindSpeedKmh
	case FieldWindGust:
		p = i.WindGustKmh
	case FieldGrowingDegreeDays10C:
		p = i.GrowingDegreeDays10C
	case FieldGrowingDegreeDays4C:
		p = i.GrowingDegreeDays4C
	case FieldEvapotranspiration:
		p = i.EvapotranspirationMm
	case FieldMoonPhase:
		p = i.MoonPhase
	case FieldPrecipitationType:
		p = i.PrecipitationType
	default:
		return 0, false
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Precipitation type bands used by the precipitationType insight field.
const (
	PrecipNone         = 0
	PrecipRain         = 1
	PrecipSnow         = 2
	PrecipFreezingRain = 3
	PrecipIce          = 4
)

// Snapshot is the full weather view for one location: current conditions
// plus hourly and daily series, optionally enriched with insights.
type Snapshot struct {
	LocationSlug    string            `json:"locationSlug,omitempty"`
	Latitude        float64           `json:"latitude"`
	Longitude       float64           `json:"longitude"`
	ElevationMeters float64           `json:"elevationMeters"`
	Timezone        string            `json:"timezone"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	Source          Source            `json:"source"`
	Current         CurrentConditions `json:"current"`
	Hourly          HourlySeries      `json:"hourly"`
	Daily           DailySeries       `json:"daily"`
	Insights        *Insights         `json:"insights,omitempty"`
}

// Validate checks the structural invariants every snapshot must satisfy
// regardless of which stage produced it: parallel arrays within a series
// share one length, and every daily high exceeds its low.
func (s *Snapshot) Validate() error {
	n := len(s.Hourly.Times)
	if n == 0 {
		return fmt.Errorf("hourly series is empty")
	}
	for name, l := range map[string]int{
		"temperatureC":      len(s.Hourly.TemperatureC),
		"humidityPercent":   len(s.Hourly.HumidityPct),
		"precipProbability": len(s.Hourly.PrecipProbabilityPct),
		"windSpeedKmh":      len(s.Hourly.WindSpeedKmh),
		"uvIndex":           len(s.Hourly.UVIndex),
		"codes":             len(s.Hourly.Codes),
	} {
		if l != n {
			return fmt.Errorf("hourly series %s has length %d, want %d", name, l, n)
		}
	}

	m := len(s.Daily.Times)
	if m == 0 {
		return fmt.Errorf("daily series is empty")
	}
	for name, l := range map[string]int{
		"highC":             len(s.Daily.HighC),
		"lowC":              len(s.Daily.LowC),
		"precipProbability": len(s.Daily.PrecipProbabilityPct),
		"codes":             len(s.Daily.Codes),
		"sunrise":           len(s.Daily.Sunrise),
		"sunset":            len(s.Daily.Sunset),
	} {
		if l != m {
			return fmt.Errorf("daily series %s has length %d, want %d", name, l, m)
		}
	}
	for i := 0; i < m; i++ {
		if s.Daily.HighC[i] <= s.Daily.LowC[i] {
			return fmt.Errorf("daily entry %d: high (%.1f) must exceed low (%.1f)", i, s.Daily.HighC[i], s.Daily.LowC[i])
		}
	}
	return nil
}
