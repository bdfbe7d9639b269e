package suitability

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var seedRulesYAML []byte

// Store supplies the current rule table. The engine treats rules as
// read-only data; refreshing is the owner's responsibility, on its own
// schedule.
type Store interface {
	Rules() Table
}

// RuleStore serves rules from an optional YAML file, falling back to the
// embedded seed. Refresh re-reads the file; a failed refresh keeps the last
// good table.
type RuleStore struct {
	path   string
	logger *slog.Logger

	mu    sync.RWMutex
	table Table
}

// NewRuleStore loads the initial table. path may be empty, in which case the
// embedded seed rules are used and Refresh is a no-op.
func NewRuleStore(logger *slog.Logger, path string) (*RuleStore, error) {
	s := &RuleStore{
		path:   path,
		logger: logger.With("component", "rule-store"),
	}

	table, err := parseRules(seedRulesYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded rules: %w", err)
	}
	s.table = table

	if path != "" {
		if err := s.Refresh(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Rules returns the current table. Callers must not mutate it.
func (s *RuleStore) Rules() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Refresh re-reads the rule file and swaps the table atomically.
func (s *RuleStore) Refresh() error {
	if s.path == "" {
		return nil
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read rule file %s: %w", s.path, err)
	}
	table, err := parseRules(raw)
	if err != nil {
		return fmt.Errorf("failed to parse rule file %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.logger.Info("rule table refreshed", "rules", len(table))
	return nil
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

func parseRules(raw []byte) (Table, error) {
	var f ruleFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	table := make(Table, len(f.Rules))
	for _, r := range f.Rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, exists := table[r.Key]; exists {
			return nil, fmt.Errorf("duplicate rule key %q", r.Key)
		}
		table[r.Key] = r
	}
	return table, nil
}
