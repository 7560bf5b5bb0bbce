package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-balls/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "balls.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultBallsConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultBallsConfig())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := writeConfig(t, `
gameplay:
  difficulty: compete
aim:
  step: 25
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	d, err := cfg.Difficulty()
	if err != nil || d != engine.Compete {
		t.Errorf("Difficulty = %v, %v; want compete", d, err)
	}
	if cfg.Aim.Step != 25 {
		t.Errorf("Aim.Step = %v, want 25", cfg.Aim.Step)
	}
	// Untouched keys keep their defaults.
	if cfg.Aim.FineStep != DefaultBallsConfig().Aim.FineStep {
		t.Errorf("Aim.FineStep = %v, want default", cfg.Aim.FineStep)
	}
	if cfg.Gameplay.TickRate != 100 || cfg.Saves.QuickSlot != "quicksave" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown difficulty", "gameplay:\n  difficulty: nightmare\n", "unknown difficulty"},
		{"bad tick rate", "gameplay:\n  tick_rate: 0\n", "tick_rate"},
		{"bad aim", "aim:\n  fine_step: -1\n", "aim steps"},
		{"negative cell", "display:\n  cell_width: -2\n", "cell size"},
		{"empty slot", "saves:\n  quick_slot: \"\"\n", "quick_slot"},
		{"malformed yaml", "gameplay: [1, 2\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}
}

func TestParseDifficultyPresets(t *testing.T) {
	for _, d := range engine.Difficulties {
		got, err := ParseDifficulty(string(PresetFor(d)))
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", PresetFor(d), got, err)
		}
	}

	_, err := ParseDifficulty("fixed")
	if err == nil || !strings.HasPrefix(err.Error(), "config:") {
		t.Errorf("ParseDifficulty(fixed) error = %v", err)
	}
}
