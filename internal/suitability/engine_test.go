package suitability

import (
	"log/slog"
	"testing"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
)

func ptr(v float64) *float64 { return &v }

func testTable() Table {
	return Table{
		"category:farming": {
			Key: "category:farming",
			Conditions: []Condition{
				{Field: weather.FieldThunderstormProbability, Operator: OpGreaterThan, Threshold: 50, Level: LevelPoor, Label: "Thunderstorm risk", MetricTemplate: "Thunderstorm risk {value}%"},
				{Field: weather.FieldWindGust, Operator: OpGreaterThan, Threshold: 60, Level: LevelFair, Label: "Strong gusts"},
				{Field: weather.FieldGrowingDegreeDays10C, Operator: OpGreaterEqual, Threshold: 10, Level: LevelExcellent, Label: "Strong growth day"},
			},
			Fallback: Rating{Level: LevelGood, Label: "Workable conditions"},
		},
		"activity:stargazing": {
			Key: "activity:stargazing",
			Conditions: []Condition{
				{Field: weather.FieldVisibility, Operator: OpLessThan, Threshold: 5, Level: LevelPoor, Label: "Hazy sky"},
				{Field: weather.FieldMoonPhase, Operator: OpEqual, Threshold: 0, Level: LevelExcellent, Label: "New moon"},
			},
			Fallback: Rating{Level: LevelFair, Label: "Average night"},
		},
	}
}

func TestRateActivityRuleWins(t *testing.T) {
	e := NewEngine(slog.Default())
	insights := &weather.Insights{
		VisibilityKm: ptr(2),
	}

	// stargazing has its own rule even though the category also exists.
	got := e.Rate(Activity{Id: "stargazing", Category: "farming"}, insights, testTable())
	if got.Level != LevelPoor {
		t.Errorf("Level = %q, want %q (activity rule must shadow category rule)", got.Level, LevelPoor)
	}
	if got.Label != "Hazy sky" {
		t.Errorf("Label = %q, want %q", got.Label, "Hazy sky")
	}
}

func TestRateCategoryFallback(t *testing.T) {
	e := NewEngine(slog.Default())
	insights := &weather.Insights{
		ThunderstormProbabilityPct: ptr(80),
	}

	got := e.Rate(Activity{Id: "maize-planting", Category: "farming"}, insights, testTable())
	if got.Level != LevelPoor {
		t.Errorf("Level = %q, want %q", got.Level, LevelPoor)
	}
	if got.Metric != "Thunderstorm risk 80%" {
		t.Errorf("Metric = %q, want %q", got.Metric, "Thunderstorm risk 80%")
	}
}

func TestRateGenericFallback(t *testing.T) {
	e := NewEngine(slog.Default())

	got := e.Rate(Activity{Id: "knitting", Category: "indoor"}, nil, testTable())
	if got.Level != LevelGood {
		t.Errorf("Level = %q, want %q (unknown activities must rate good, never poor)", got.Level, LevelGood)
	}
}

func TestRateNilInsightsNeverPoor(t *testing.T) {
	e := NewEngine(slog.Default())

	// Every condition's field is absent, so the rule fallback applies.
	got := e.Rate(Activity{Id: "maize-planting", Category: "farming"}, nil, testTable())
	if got.Level != LevelGood {
		t.Errorf("Level = %q, want rule fallback %q", got.Level, LevelGood)
	}
}

func TestRateFirstMatchWins(t *testing.T) {
	e := NewEngine(slog.Default())

	// Both the thunderstorm and the growing-degree conditions hold; the
	// earlier one decides.
	insights := &weather.Insights{
		ThunderstormProbabilityPct: ptr(90),
		GrowingDegreeDays10C:       ptr(12),
	}
	got := e.Rate(Activity{Id: "x", Category: "farming"}, insights, testTable())
	if got.Level != LevelPoor {
		t.Errorf("Level = %q, want %q (conditions are evaluated in order)", got.Level, LevelPoor)
	}
}

func TestRateSkipsAbsentFields(t *testing.T) {
	e := NewEngine(slog.Default())

	// Thunderstorm probability absent; gusts present and matching.
	insights := &weather.Insights{
		WindGustKmh: ptr(75),
	}
	got := e.Rate(Activity{Id: "x", Category: "farming"}, insights, testTable())
	if got.Level != LevelFair {
		t.Errorf("Level = %q, want %q", got.Level, LevelFair)
	}
}

func TestRateNonMatchingFallsThrough(t *testing.T) {
	e := NewEngine(slog.Default())

	insights := &weather.Insights{
		ThunderstormProbabilityPct: ptr(10),
		WindGustKmh:                ptr(20),
		GrowingDegreeDays10C:       ptr(4),
	}
	got := e.Rate(Activity{Id: "x", Category: "farming"}, insights, testTable())
	if got.Level != LevelGood {
		t.Errorf("Level = %q, want rule fallback %q", got.Level, LevelGood)
	}
	if got.Label != "Workable conditions" {
		t.Errorf("Label = %q, want %q", got.Label, "Workable conditions")
	}
}

func TestRateEqualOperator(t *testing.T) {
	e := NewEngine(slog.Default())

	insights := &weather.Insights{
		MoonPhase:    ptr(0),
		VisibilityKm: ptr(20),
	}
	got := e.Rate(Activity{Id: "stargazing", Category: "outdoor"}, insights, testTable())
	if got.Level != LevelExcellent {
		t.Errorf("Level = %q, want %q", got.Level, LevelExcellent)
	}
}

func TestRateStyleMirrorsLevel(t *testing.T) {
	e := NewEngine(slog.Default())

	insights := &weather.Insights{ThunderstormProbabilityPct: ptr(80)}
	got := e.Rate(Activity{Id: "x", Category: "farming"}, insights, testTable())
	if got.Style != string(LevelPoor) {
		t.Errorf("Style = %q, want %q", got.Style, string(LevelPoor))
	}
}

func TestRateUnknownOperatorIsSkipped(t *testing.T) {
	e := NewEngine(slog.Default())
	table := Table{
		"activity:x": {
			Key: "activity:x",
			Conditions: []Condition{
				{Field: weather.FieldWindSpeed, Operator: Operator("almost"), Threshold: 10, Level: LevelPoor, Label: "Bad"},
				{Field: weather.FieldWindSpeed, Operator: OpGreaterThan, Threshold: 10, Level: LevelFair, Label: "Windy"},
			},
			Fallback: Rating{Level: LevelGood, Label: "Fine"},
		},
	}

	insights := &weather.Insights{WindSpeedKmh: ptr(25)}
	got := e.Rate(Activity{Id: "x"}, insights, table)
	if got.Level != LevelFair {
		t.Errorf("Level = %q, want %q (unknown operators are skipped, not fatal)", got.Level, LevelFair)
	}
}

func TestRenderMetricFormatting(t *testing.T) {
	tests := []struct {
		name     string
		template string
		value    float64
		want     string
	}{
		{name: "integer value", template: "Risk {value}%", value: 80, want: "Risk 80%"},
		{name: "fractional value", template: "{value} km", value: 2.5, want: "2.5 km"},
		{name: "no placeholder", template: "fixed", value: 3, want: "fixed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderMetric(tt.template, tt.value); got != tt.want {
				t.Errorf("renderMetric(%q, %v) = %q, want %q", tt.template, tt.value, got, tt.want)
			}
		})
	}
}
