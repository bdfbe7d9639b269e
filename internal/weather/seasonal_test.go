package weather

import (
	"testing"
	"time"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("LoadLocation(%s) error = %v", name, err)
	}
	return loc
}

func TestSynthesizeIsStructurallyValid(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		now := time.Date(2026, month, 15, 12, 0, 0, 0, time.UTC)
		s := Synthesize(-17.83, 31.05, 1490, now, "Africa/Harare")

		if err := s.Validate(); err != nil {
			t.Errorf("month %s: Validate() error = %v", month, err)
		}
		if s.Source != SourceFallback {
			t.Errorf("month %s: Source = %q, want %q", month, s.Source, SourceFallback)
		}
		if s.Hourly.Len() != HourlyHorizon {
			t.Errorf("month %s: hourly length = %d, want %d", month, s.Hourly.Len(), HourlyHorizon)
		}
		if s.Daily.Len() != DailyHorizon {
			t.Errorf("month %s: daily length = %d, want %d", month, s.Daily.Len(), DailyHorizon)
		}
	}
}

func TestSynthesizeDiurnalShape(t *testing.T) {
	now := time.Date(2026, time.July, 10, 12, 0, 0, 0, time.UTC)
	s := Synthesize(-17.83, 31.05, referenceElevationMeters, now, "Africa/Harare")

	lowC := drySeason.lowC
	highC := drySeason.highC

	var peakTemp float64
	peakHourOfDay := -1
	for i := 0; i < 24; i++ {
		temp := s.Hourly.TemperatureC[i]
		if temp < lowC-0.01 {
			t.Errorf("hour %d: temperature %.2f below seasonal low %.2f", i, temp, lowC)
		}
		if temp > highC+0.01 {
			t.Errorf("hour %d: temperature %.2f above seasonal high %.2f", i, temp, highC)
		}
		if temp > peakTemp {
			peakTemp = temp
			peakHourOfDay = s.Hourly.Times[i].Hour()
		}
	}
	if peakHourOfDay != peakHour {
		t.Errorf("temperature peak at hour %d, want %d", peakHourOfDay, peakHour)
	}

	// Pre-dawn hours sit at the seasonal low.
	for i := 0; i < dawnHour; i++ {
		if s.Hourly.TemperatureC[i] != lowC {
			t.Errorf("hour %d: temperature %.2f, want seasonal low %.2f", i, s.Hourly.TemperatureC[i], lowC)
		}
	}
}

func TestSynthesizeUVWindow(t *testing.T) {
	now := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	s := Synthesize(-17.83, 31.05, 1490, now, "Africa/Harare")

	for i := 0; i < 24; i++ {
		hour := s.Hourly.Times[i].Hour()
		uv := s.Hourly.UVIndex[i]
		inWindow := hour >= uvWindowStart && hour < uvWindowEnd
		if !inWindow && uv != 0 {
			t.Errorf("hour %d: UV %.2f outside the daylight window, want 0", hour, uv)
		}
		if inWindow && hour != uvWindowStart && uv <= 0 {
			t.Errorf("hour %d: UV %.2f inside the daylight window, want > 0", hour, uv)
		}
	}
}

func TestSynthesizeLapseRate(t *testing.T) {
	now := time.Date(2026, time.July, 10, 12, 0, 0, 0, time.UTC)

	atReference := Synthesize(-17.83, 31.05, referenceElevationMeters, now, "Africa/Harare")
	kilometerHigher := Synthesize(-18.2, 32.7, referenceElevationMeters+1000, now, "Africa/Harare")

	wantDelta := lapseRateCPerKm
	gotDelta := kilometerHigher.Daily.HighC[0] - atReference.Daily.HighC[0]
	if diff := gotDelta - wantDelta; diff > 0.001 || diff < -0.001 {
		t.Errorf("high delta for +1000m = %.2f, want %.2f", gotDelta, wantDelta)
	}

	gotDelta = kilometerHigher.Daily.LowC[0] - atReference.Daily.LowC[0]
	if diff := gotDelta - wantDelta; diff > 0.001 || diff < -0.001 {
		t.Errorf("low delta for +1000m = %.2f, want %.2f", gotDelta, wantDelta)
	}
}

func TestSynthesizeSeasonBuckets(t *testing.T) {
	tests := []struct {
		month time.Month
		want  seasonNormal
	}{
		{time.January, rainSeason},
		{time.April, postRainSeason},
		{time.July, drySeason},
		{time.October, buildUpSeason},
		{time.December, rainSeason},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			now := time.Date(2026, tt.month, 15, 12, 0, 0, 0, time.UTC)
			s := Synthesize(-17.83, 31.05, referenceElevationMeters, now, "Africa/Harare")

			if s.Daily.HighC[0] != tt.want.highC {
				t.Errorf("daily high = %.1f, want %.1f", s.Daily.HighC[0], tt.want.highC)
			}
			if s.Hourly.Codes[0] != tt.want.code {
				t.Errorf("condition code = %d, want %d", s.Hourly.Codes[0], tt.want.code)
			}
		})
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC)

	a := Synthesize(-20.13, 28.63, 1358, now, "Africa/Harare")
	b := Synthesize(-20.13, 28.63, 1358, now, "Africa/Harare")

	for i := range a.Hourly.TemperatureC {
		if a.Hourly.TemperatureC[i] != b.Hourly.TemperatureC[i] {
			t.Fatalf("hour %d differs between identical calls", i)
		}
	}
}

func TestSynthesizeBadTimezoneFallsBackToUTC(t *testing.T) {
	now := time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC)
	s := Synthesize(-17.83, 31.05, 1490, now, "Not/AZone")

	if s.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", s.Timezone)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestSynthesizeLocalMidnightStart(t *testing.T) {
	loc := mustLoadLocation(t, "Africa/Harare")
	now := time.Date(2026, time.June, 10, 23, 45, 0, 0, loc)

	s := Synthesize(-17.83, 31.05, 1490, now, "Africa/Harare")

	first := s.Hourly.Times[0]
	if first.Hour() != 0 || first.Day() != 10 {
		t.Errorf("hourly series starts at %v, want local midnight of the query day", first)
	}
}
