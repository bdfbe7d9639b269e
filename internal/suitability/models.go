package suitability

import "fmt"

// Level is the rating scale for how favorable conditions are.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelFair      Level = "fair"
	LevelPoor      Level = "poor"
)

// Valid reports whether the level is one of the four known values.
func (l Level) Valid() bool {
	switch l {
	case LevelExcellent, LevelGood, LevelFair, LevelPoor:
		return true
	}
	return false
}

// Operator compares an insight value against a condition threshold.
type Operator string

const (
	OpGreaterThan  Operator = "gt"
	OpGreaterEqual Operator = "gte"
	OpLessThan     Operator = "lt"
	OpLessEqual    Operator = "lte"
	OpEqual        Operator = "eq"
)

// operators dispatches comparisons without string-based evaluation.
var operators = map[Operator]func(value, threshold float64) bool{
	OpGreaterThan:  func(v, t float64) bool { return v > t },
	OpGreaterEqual: func(v, t float64) bool { return v >= t },
	OpLessThan:     func(v, t float64) bool { return v < t },
	OpLessEqual:    func(v, t float64) bool { return v <= t },
	OpEqual:        func(v, t float64) bool { return v == t },
}

// Condition is one ordered clause of a rule. The first condition whose field
// is present and whose comparison holds decides the rating.
type Condition struct {
	Field          string   `yaml:"field" json:"field"`
	Operator       Operator `yaml:"operator" json:"operator"`
	Threshold      float64  `yaml:"threshold" json:"threshold"`
	Level          Level    `yaml:"level" json:"level"`
	Label          string   `yaml:"label" json:"label"`
	Detail         string   `yaml:"detail" json:"detail"`
	MetricTemplate string   `yaml:"metricTemplate,omitempty" json:"metricTemplate,omitempty"`
}

// Rule is an ordered condition list plus the rating used when nothing
// matches. Rules are read-only data to the engine.
type Rule struct {
	Key        string      `yaml:"key" json:"key"`
	Conditions []Condition `yaml:"conditions" json:"conditions"`
	Fallback   Rating      `yaml:"fallback" json:"fallback"`
}

// Validate checks a rule's structure before it enters the table.
func (r Rule) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("rule has an empty key")
	}
	for i, c := range r.Conditions {
		if c.Field == "" {
			return fmt.Errorf("rule %q condition %d: empty field", r.Key, i)
		}
		if _, ok := operators[c.Operator]; !ok {
			return fmt.Errorf("rule %q condition %d: unknown operator %q", r.Key, i, c.Operator)
		}
		if !c.Level.Valid() {
			return fmt.Errorf("rule %q condition %d: unknown level %q", r.Key, i, c.Level)
		}
	}
	if !r.Fallback.Level.Valid() {
		return fmt.Errorf("rule %q: unknown fallback level %q", r.Key, r.Fallback.Level)
	}
	return nil
}

// Rating is a leveled judgment of conditions for an activity.
type Rating struct {
	Level  Level  `yaml:"level" json:"level"`
	Label  string `yaml:"label" json:"label"`
	Style  string `yaml:"style" json:"style"`
	Detail string `yaml:"detail" json:"detail"`
	Metric string `yaml:"-" json:"metric,omitempty"`
}

// Table maps rule keys ("activity:<id>" or "category:<id>") to rules.
type Table map[string]Rule

// Activity identifies what is being rated. Category is the coarse grouping
// consulted when no activity-specific rule exists.
type Activity struct {
	Id       string `json:"id"`
	Category string `json:"category"`
}
