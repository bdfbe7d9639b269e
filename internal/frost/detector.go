// Package frost detects overnight frost hazards in an hourly forecast
// series. Alerts are derived per request and never persisted.
package frost

import (
	"fmt"
	"time"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
)

// Risk is the frost hazard tier.
type Risk int

const (
	RiskModerate Risk = iota + 1
	RiskHigh
	RiskSevere
)

var riskNames = map[Risk]string{
	RiskModerate: "moderate",
	RiskHigh:     "high",
	RiskSevere:   "severe",
}

func (r Risk) String() string {
	if name, ok := riskNames[r]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", int(r))
}

// Thresholds for the nighttime window and the risk tiers. All boundaries are
// inclusive and belong to the more severe side.
const (
	nightStartHour = 22 // hour >= nightStartHour counts as night
	nightEndHour   = 8  // hour <= nightEndHour counts as night

	frostThresholdC  = 3.0
	highThresholdC   = 2.0
	severeThresholdC = 0.0
)

var riskMessages = map[Risk]string{
	RiskModerate: "Light frost possible overnight. Sensitive seedlings may need covering.",
	RiskHigh:     "Frost likely overnight. Cover sensitive crops and bring potted plants indoors.",
	RiskSevere:   "Severe frost expected. Protect all crops, pipes, and livestock water points before nightfall.",
}

// Alert is a tiered frost advisory for one hourly series.
type Alert struct {
	Risk        Risk      `json:"risk"`
	LowestTempC float64   `json:"lowestTempC"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	Message     string    `json:"message"`
}

// Detect scans an hourly series for nighttime points at or below the frost
// threshold. It returns nil when no point qualifies: no risk is the absence
// of an alert, not a zero-valued one.
func Detect(hourly weather.HourlySeries) *Alert {
	var (
		found  bool
		lowest float64
		first  time.Time
		last   time.Time
	)

	for i := 0; i < hourly.Len(); i++ {
		hour := hourly.Times[i].Hour()
		if hour < nightStartHour && hour > nightEndHour {
			continue
		}
		temp := hourly.TemperatureC[i]
		if temp > frostThresholdC {
			continue
		}

		if !found {
			found = true
			lowest = temp
			first = hourly.Times[i]
		} else if temp < lowest {
			lowest = temp
		}
		// Window bounds follow series order, not temperature order.
		last = hourly.Times[i]
	}

	if !found {
		return nil
	}

	risk := riskFor(lowest)
	return &Alert{
		Risk:        risk,
		LowestTempC: lowest,
		WindowStart: first,
		WindowEnd:   last,
		Message:     riskMessages[risk],
	}
}

func riskFor(lowestTempC float64) Risk {
	switch {
	case lowestTempC <= severeThresholdC:
		return RiskSevere
	case lowestTempC <= highThresholdC:
		return RiskHigh
	default:
		return RiskModerate
	}
}
