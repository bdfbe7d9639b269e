package weather

import (
	"math"
	"time"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/types"
)

// Climatological last-resort synthesis. Produces a structurally valid
// snapshot from arithmetic alone, so the pipeline always has an answer even
// with every upstream down. The curves are deliberately simple: this is an
// estimate, not a forecast.

// referenceElevationMeters is the highveld reference the seasonal normals
// are anchored to. The lapse-rate correction shifts temperatures for
// locations above or below it.
const referenceElevationMeters = 1400.0

// lapseRateCPerKm is the standard environmental lapse rate.
const lapseRateCPerKm = -6.5

// Hour-of-day anchors for the synthetic diurnal curve.
const (
	dawnHour      = 6  // temperature trough
	peakHour      = 15 // temperature peak
	uvWindowStart = 7  // UV nonzero only inside [uvWindowStart, uvWindowEnd)
	uvWindowEnd   = 17
	sunriseHour   = 6
	sunsetHour    = 18
)

// seasonNormal is one climatological season bucket.
type seasonNormal struct {
	name        string
	highC       float64
	lowC        float64
	humidityPct float64
	precipPct   float64
	uvMax       float64
	code        types.WeatherCode
}

// Southern-hemisphere seasons for the Zimbabwean highveld.
var seasonNormals = map[time.Month]seasonNormal{
	time.December: rainSeason, time.January: rainSeason, time.February: rainSeason,
	time.March: postRainSeason, time.April: postRainSeason, time.May: postRainSeason,
	time.June: drySeason, time.July: drySeason, time.August: drySeason,
	time.September: buildUpSeason, time.October: buildUpSeason, time.November: buildUpSeason,
}

var (
	rainSeason     = seasonNormal{name: "rain", highC: 28, lowC: 16, humidityPct: 75, precipPct: 55, uvMax: 11, code: types.RainShowersSlight}
	postRainSeason = seasonNormal{name: "post-rain", highC: 26, lowC: 12, humidityPct: 60, precipPct: 20, uvMax: 8, code: types.PartlyCloudy}
	drySeason      = seasonNormal{name: "dry", highC: 21, lowC: 7, humidityPct: 45, precipPct: 5, uvMax: 6, code: types.ClearSky}
	buildUpSeason  = seasonNormal{name: "build-up", highC: 30, lowC: 15, humidityPct: 40, precipPct: 15, uvMax: 10, code: types.MainlyClear}
)

// Synthesize produces a snapshot for the given point and moment without any
// I/O. The result carries SourceFallback and satisfies the same structural
// invariants as provider data.
func Synthesize(latitude, longitude, elevationMeters float64, now time.Time, timezone string) Snapshot {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	normal := seasonNormals[local.Month()]

	// Elevation lapse-rate correction shifts the whole diurnal band.
	deltaC := (elevationMeters - referenceElevationMeters) / 1000.0 * lapseRateCPerKm
	highC := normal.highC + deltaC
	lowC := normal.lowC + deltaC

	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	hourly := HourlySeries{
		Times:                make([]time.Time, HourlyHorizon),
		TemperatureC:         make([]float64, HourlyHorizon),
		HumidityPct:          make([]float64, HourlyHorizon),
		PrecipProbabilityPct: make([]float64, HourlyHorizon),
		WindSpeedKmh:         make([]float64, HourlyHorizon),
		UVIndex:              make([]float64, HourlyHorizon),
		Codes:                make([]types.WeatherCode, HourlyHorizon),
	}
	for i := 0; i < HourlyHorizon; i++ {
		t := midnight.Add(time.Duration(i) * time.Hour)
		hour := t.Hour()
		hourly.Times[i] = t
		hourly.TemperatureC[i] = diurnalTemperature(float64(hour), lowC, highC)
		hourly.HumidityPct[i] = normal.humidityPct
		hourly.PrecipProbabilityPct[i] = normal.precipPct
		hourly.WindSpeedKmh[i] = 10
		hourly.UVIndex[i] = diurnalUV(float64(hour), normal.uvMax)
		hourly.Codes[i] = normal.code
	}

	// Every synthetic day repeats the same computed band and clock times.
	daily := DailySeries{
		Times:                make([]time.Time, DailyHorizon),
		HighC:                make([]float64, DailyHorizon),
		LowC:                 make([]float64, DailyHorizon),
		PrecipProbabilityPct: make([]float64, DailyHorizon),
		Codes:                make([]types.WeatherCode, DailyHorizon),
		Sunrise:              make([]time.Time, DailyHorizon),
		Sunset:               make([]time.Time, DailyHorizon),
	}
	for i := 0; i < DailyHorizon; i++ {
		day := midnight.AddDate(0, 0, i)
		daily.Times[i] = day
		daily.HighC[i] = highC
		daily.LowC[i] = lowC
		daily.PrecipProbabilityPct[i] = normal.precipPct
		daily.Codes[i] = normal.code
		daily.Sunrise[i] = day.Add(sunriseHour * time.Hour)
		daily.Sunset[i] = day.Add(sunsetHour * time.Hour)
	}

	nowHour := float64(local.Hour())
	current := CurrentConditions{
		Time:          local,
		TemperatureC:  diurnalTemperature(nowHour, lowC, highC),
		FeelsLikeC:    diurnalTemperature(nowHour, lowC, highC),
		HumidityPct:   normal.humidityPct,
		WindSpeedKmh:  10,
		CloudCoverPct: cloudCoverFor(normal),
		UVIndex:       diurnalUV(nowHour, normal.uvMax),
		Code:          normal.code,
		Description:   types.GetWeatherDescription(int(normal.code)),
		IsDay:         nowHour >= sunriseHour && nowHour < sunsetHour,
	}

	return Snapshot{
		Latitude:        latitude,
		Longitude:       longitude,
		ElevationMeters: elevationMeters,
		Timezone:        loc.String(),
		UpdatedAt:       now.UTC(),
		Source:          SourceFallback,
		Current:         current,
		Hourly:          hourly,
		Daily:           daily,
	}
}

// diurnalTemperature follows a half-sinusoid from the dawn trough to the
// mid-afternoon peak and back, clipped at the seasonal low overnight.
func diurnalTemperature(hour, lowC, highC float64) float64 {
	if hour < dawnHour {
		return lowC
	}
	// Half-period spans dawn..midnight so the peak lands at peakHour.
	frac := math.Sin(math.Pi * (hour - dawnHour) / (2 * (peakHour - dawnHour)))
	if frac < 0 {
		frac = 0
	}
	return lowC + (highC-lowC)*frac
}

// diurnalUV is nonzero only inside the fixed daylight window.
func diurnalUV(hour, uvMax float64) float64 {
	if hour < uvWindowStart || hour >= uvWindowEnd {
		return 0
	}
	return uvMax * math.Sin(math.Pi*(hour-uvWindowStart)/(uvWindowEnd-uvWindowStart))
}

func cloudCoverFor(normal seasonNormal) float64 {
	switch normal.code {
	case types.ClearSky:
		return 5
	case types.MainlyClear:
		return 20
	case types.PartlyCloudy:
		return 45
	default:
		return 70
	}
}
