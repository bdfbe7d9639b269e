// Package suitability rates how favorable weather conditions are for named
// activities by evaluating ordered, data-driven rules against an insight
// record.
package suitability

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/nyuchitech/mukoko-weather-sub001/internal/weather"
)

// metricPlaceholder is the single value slot a condition's metric template
// may carry, e.g. "Thunderstorm risk {value}%".
const metricPlaceholder = "{value}"

// genericFallback is returned when neither an activity nor a category rule
// exists. Absence of data must never read as a hazard, so the generic answer
// is good, not poor.
var genericFallback = Rating{
	Level:  LevelGood,
	Label:  "Good conditions",
	Style:  "good",
	Detail: "No activity-specific guidance available; conditions look generally favorable.",
}

// Engine evaluates suitability rules.
type Engine interface {
	// Rate looks up the activity rule, then the category rule, then falls
	// back to a generic good rating.
	Rate(activity Activity, insights *weather.Insights, rules Table) Rating
}

type engine struct {
	logger *slog.Logger
}

// NewEngine creates a rule evaluation engine.
func NewEngine(logger *slog.Logger) Engine {
	return &engine{logger: logger.With("component", "suitability-engine")}
}

func (e *engine) Rate(activity Activity, insights *weather.Insights, rules Table) Rating {
	if rule, ok := rules["activity:"+activity.Id]; ok {
		return e.evaluate(rule, insights)
	}
	if rule, ok := rules["category:"+activity.Category]; ok {
		return e.evaluate(rule, insights)
	}
	e.logger.Debug("no rule for activity, using generic fallback",
		"activity", activity.Id,
		"category", activity.Category,
	)
	return genericFallback
}

// evaluate walks the rule's ordered conditions. A condition whose field is
// absent is skipped: missing data can neither satisfy nor violate it. The
// first present-and-true condition wins, making order the deciding factor
// when several would match.
func (e *engine) evaluate(rule Rule, insights *weather.Insights) Rating {
	for _, cond := range rule.Conditions {
		value, ok := insights.Field(cond.Field)
		if !ok {
			continue
		}
		compare, ok := operators[cond.Operator]
		if !ok {
			e.logger.Warn("rule condition has unknown operator",
				"rule", rule.Key,
				"operator", string(cond.Operator),
			)
			continue
		}
		if !compare(value, cond.Threshold) {
			continue
		}

		rating := Rating{
			Level:  cond.Level,
			Label:  cond.Label,
			Style:  string(cond.Level),
			Detail: cond.Detail,
		}
		if cond.MetricTemplate != "" {
			rating.Metric = renderMetric(cond.MetricTemplate, value)
		}
		return rating
	}
	return rule.Fallback
}

// renderMetric substitutes the matched field's formatted value into the
// condition's template.
func renderMetric(template string, value float64) string {
	return strings.ReplaceAll(template, metricPlaceholder, formatValue(value))
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
