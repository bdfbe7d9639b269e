package frost

import (
	"testing"
	"time"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
)

// hourlyAt builds an hourly series from (hour, temperature) pairs on a fixed
// winter day.
func hourlyAt(points []struct {
	hour int
	temp float64
}) weather.HourlySeries {
	base := time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC)
	s := weather.HourlySeries{}
	for _, p := range points {
		s.Times = append(s.Times, base.Add(time.Duration(p.hour)*time.Hour))
		s.TemperatureC = append(s.TemperatureC, p.temp)
	}
	return s
}

func TestDetectSevereNight(t *testing.T) {
	series := hourlyAt([]struct {
		hour int
		temp float64
	}{
		{0, 5},
		{2, -3},
		{7, 3},
		{14, 20},
	})

	alert := Detect(series)
	if alert == nil {
		t.Fatal("Detect() = nil, want an alert")
	}
	if alert.Risk != RiskSevere {
		t.Errorf("Risk = %v, want %v", alert.Risk, RiskSevere)
	}
	if alert.LowestTempC != -3 {
		t.Errorf("LowestTempC = %v, want -3", alert.LowestTempC)
	}
	if got := alert.WindowStart.Hour(); got != 2 {
		t.Errorf("WindowStart hour = %d, want 2", got)
	}
	if got := alert.WindowEnd.Hour(); got != 7 {
		t.Errorf("WindowEnd hour = %d, want 7", got)
	}
}

func TestDetectRiskTiers(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want Risk
	}{
		{name: "exactly zero is severe", temp: 0, want: RiskSevere},
		{name: "below zero is severe", temp: -0.5, want: RiskSevere},
		{name: "exactly two is high", temp: 2, want: RiskHigh},
		{name: "between zero and two is high", temp: 1.3, want: RiskHigh},
		{name: "exactly three is moderate", temp: 3, want: RiskModerate},
		{name: "between two and three is moderate", temp: 2.5, want: RiskModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := hourlyAt([]struct {
				hour int
				temp float64
			}{
				{3, tt.temp},
			})

			alert := Detect(series)
			if alert == nil {
				t.Fatalf("Detect() = nil at %.1f°C, want an alert", tt.temp)
			}
			if alert.Risk != tt.want {
				t.Errorf("Risk at %.1f°C = %v, want %v", tt.temp, alert.Risk, tt.want)
			}
			if alert.Message == "" {
				t.Error("alert has no message")
			}
		})
	}
}

func TestDetectNoQualifyingHours(t *testing.T) {
	tests := []struct {
		name   string
		series weather.HourlySeries
	}{
		{
			name: "cold but daytime",
			series: hourlyAt([]struct {
				hour int
				temp float64
			}{
				{12, -5},
				{15, 1},
			}),
		},
		{
			name: "night but warm",
			series: hourlyAt([]struct {
				hour int
				temp float64
			}{
				{23, 8},
				{4, 6},
			}),
		},
		{
			name: "just above the threshold at night",
			series: hourlyAt([]struct {
				hour int
				temp float64
			}{
				{3, 3.1},
			}),
		},
		{
			name:   "empty series",
			series: weather.HourlySeries{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if alert := Detect(tt.series); alert != nil {
				t.Errorf("Detect() = %+v, want nil", alert)
			}
		})
	}
}

func TestDetectNightWindowBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		hour      int
		wantAlert bool
	}{
		{name: "22:00 is night", hour: 22, wantAlert: true},
		{name: "21:00 is not night", hour: 21, wantAlert: false},
		{name: "08:00 is night", hour: 8, wantAlert: true},
		{name: "09:00 is not night", hour: 9, wantAlert: false},
		{name: "midnight is night", hour: 0, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := hourlyAt([]struct {
				hour int
				temp float64
			}{
				{tt.hour, 1},
			})

			got := Detect(series) != nil
			if got != tt.wantAlert {
				t.Errorf("Detect() at hour %d produced alert = %v, want %v", tt.hour, got, tt.wantAlert)
			}
		})
	}
}

func TestDetectWindowFollowsSeriesOrder(t *testing.T) {
	// The lowest reading (hour 5) is not an endpoint; the window is the
	// first and last qualifying hours in series order.
	series := hourlyAt([]struct {
		hour int
		temp float64
	}{
		{23, 2},
		{1, 3},
		{5, -1},
		{7, 2.5},
	})

	alert := Detect(series)
	if alert == nil {
		t.Fatal("Detect() = nil, want an alert")
	}
	if got := alert.WindowStart.Hour(); got != 23 {
		t.Errorf("WindowStart hour = %d, want 23", got)
	}
	if got := alert.WindowEnd.Hour(); got != 7 {
		t.Errorf("WindowEnd hour = %d, want 7", got)
	}
	if alert.LowestTempC != -1 {
		t.Errorf("LowestTempC = %v, want -1", alert.LowestTempC)
	}
}

func TestRiskString(t *testing.T) {
	tests := []struct {
		risk Risk
		want string
	}{
		{RiskModerate, "moderate"},
		{RiskHigh, "high"},
		{RiskSevere, "severe"},
		{Risk(42), "unknown (42)"},
	}

	for _, tt := range tests {
		if got := tt.risk.String(); got != tt.want {
			t.Errorf("Risk(%d).String() = %q, want %q", int(tt.risk), got, tt.want)
		}
	}
}
