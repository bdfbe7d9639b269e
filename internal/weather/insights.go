package weather

import "github.com/nyuchitech/mukoko-weather-sub001/internal/types"

// thunderstormApproxPct is the coarse probability assigned when the basic
// provider reports a thunderstorm-family condition code. The basic upstream
// has no probability field, so this is a binary signal.
const thunderstormApproxPct = 80.0

// ApproximateInsights derives an insight record from basic-provider fields.
// Without it, genuinely hazardous basic-provider conditions would silently
// rate as "good" because the suitability engine skips absent fields.
//
// Fields with no basic-provider analogue (dew point, growing degree days,
// evapotranspiration, moon phase) are left absent; conditions on them simply
// never fire against synthesized insights.
func ApproximateInsights(s *Snapshot) *Insights {
	code := s.Current.Code

	tsProb := 0.0
	if code.IsThunderstorm() {
		tsProb = thunderstormApproxPct
	}

	precipType := float64(precipTypeFor(code))

	uv := s.Current.UVIndex
	wind := s.Current.WindSpeedKmh
	gust := s.Current.WindGustKmh
	visibility := s.Current.VisibilityKm

	return &Insights{
		ThunderstormProbabilityPct: &tsProb,
		PrecipitationType:          &precipType,
		UVHealthConcern:            &uv,
		WindSpeedKmh:               &wind,
		WindGustKmh:                &gust,
		VisibilityKm:               &visibility,
	}
}

// precipTypeFor maps a condition code into the precipitation type bands.
func precipTypeFor(code types.WeatherCode) int {
	switch {
	case code == types.ThunderstormWithSlightHail || code == types.ThunderstormWithHeavyHail:
		return PrecipIce
	case code.IsFreezing():
		return PrecipFreezingRain
	case code.IsSnow():
		return PrecipSnow
	case code.IsRain() || code == types.ThunderstormSlightOrModerate:
		return PrecipRain
	default:
		return PrecipNone
	}
}
