package suitability

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const testRulesYAML = `
rules:
  - key: "activity:kite-flying"
    conditions:
      - field: windSpeed
        operator: lt
        threshold: 10
        level: poor
        label: "Not enough wind"
    fallback:
      level: good
      label: "Go fly"
`

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rule file: %v", err)
	}
	return path
}

func TestNewRuleStoreEmbeddedSeed(t *testing.T) {
	s, err := NewRuleStore(slog.Default(), "")
	if err != nil {
		t.Fatalf("NewRuleStore() error = %v", err)
	}

	table := s.Rules()
	if len(table) == 0 {
		t.Fatal("embedded seed produced an empty table")
	}
	if _, ok := table["category:farming"]; !ok {
		t.Error("embedded seed is missing category:farming")
	}
}

func TestNewRuleStoreFromFile(t *testing.T) {
	path := writeRuleFile(t, testRulesYAML)

	s, err := NewRuleStore(slog.Default(), path)
	if err != nil {
		t.Fatalf("NewRuleStore() error = %v", err)
	}

	if _, ok := s.Rules()["activity:kite-flying"]; !ok {
		t.Error("file rules not loaded")
	}
}

func TestNewRuleStoreBadFile(t *testing.T) {
	path := writeRuleFile(t, "rules: [nonsense")

	if _, err := NewRuleStore(slog.Default(), path); err == nil {
		t.Error("NewRuleStore() with malformed file succeeded, want error")
	}
}

func TestRefreshSwapsTable(t *testing.T) {
	path := writeRuleFile(t, testRulesYAML)
	s, err := NewRuleStore(slog.Default(), path)
	if err != nil {
		t.Fatalf("NewRuleStore() error = %v", err)
	}

	updated := `
rules:
  - key: "activity:sailing"
    conditions: []
    fallback:
      level: fair
      label: "Check the lake first"
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite rule file: %v", err)
	}
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	table := s.Rules()
	if _, ok := table["activity:sailing"]; !ok {
		t.Error("refreshed table is missing the new rule")
	}
	if _, ok := table["activity:kite-flying"]; ok {
		t.Error("refreshed table still holds the old rule")
	}
}

func TestRefreshKeepsLastGoodTableOnFailure(t *testing.T) {
	path := writeRuleFile(t, testRulesYAML)
	s, err := NewRuleStore(slog.Default(), path)
	if err != nil {
		t.Fatalf("NewRuleStore() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("rules: [broken"), 0o644); err != nil {
		t.Fatalf("rewrite rule file: %v", err)
	}
	if err := s.Refresh(); err == nil {
		t.Fatal("Refresh() with malformed file succeeded, want error")
	}

	if _, ok := s.Rules()["activity:kite-flying"]; !ok {
		t.Error("failed refresh lost the last good table")
	}
}

func TestRefreshWithoutPathIsNoOp(t *testing.T) {
	s, err := NewRuleStore(slog.Default(), "")
	if err != nil {
		t.Fatalf("NewRuleStore() error = %v", err)
	}
	if err := s.Refresh(); err != nil {
		t.Errorf("Refresh() without a path error = %v, want nil", err)
	}
}

func TestParseRulesValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name:    "valid",
			yaml:    testRulesYAML,
			wantErr: false,
		},
		{
			name: "duplicate key",
			yaml: `
rules:
  - key: "activity:x"
    conditions: []
    fallback: {level: good, label: ok}
  - key: "activity:x"
    conditions: []
    fallback: {level: good, label: ok}
`,
			wantErr: true,
		},
		{
			name: "unknown operator",
			yaml: `
rules:
  - key: "activity:x"
    conditions:
      - {field: windSpeed, operator: roughly, threshold: 1, level: poor, label: bad}
    fallback: {level: good, label: ok}
`,
			wantErr: true,
		},
		{
			name: "unknown level",
			yaml: `
rules:
  - key: "activity:x"
    conditions:
      - {field: windSpeed, operator: gt, threshold: 1, level: amazing, label: bad}
    fallback: {level: good, label: ok}
`,
			wantErr: true,
		},
		{
			name: "bad fallback level",
			yaml: `
rules:
  - key: "activity:x"
    conditions: []
    fallback: {level: meh, label: ok}
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRules([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Errorf("parseRules() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
