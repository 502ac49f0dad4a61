package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Version: 1,
		Models:  []string{"test-model"},
	}
}

// TestNormalizeDefaults verifies defaulting of optional fields.
func TestNormalizeDefaults(t *testing.T) {
	cfg, err := Normalize(validConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Profile != ProfileSingle {
		t.Fatalf("expected default profile, got %q", cfg.Profile)
	}
	if cfg.PromptStyle != PromptDirect {
		t.Fatalf("expected default prompt style, got %q", cfg.PromptStyle)
	}
	if cfg.Workers != 4 {
		t.Fatalf("expected default workers 4, got %d", cfg.Workers)
	}
	if cfg.Provider.Name != "openrouter" {
		t.Fatalf("expected default provider, got %q", cfg.Provider.Name)
	}
	if cfg.OutputDir != "./out" {
		t.Fatalf("expected default output dir, got %q", cfg.OutputDir)
	}
}

// TestNormalizeRequiresModels verifies at least one model is required.
func TestNormalizeRequiresModels(t *testing.T) {
	cfg := validConfig()
	cfg.Models = nil
	if _, err := Normalize(cfg); err == nil {
		t.Fatalf("expected models error")
	}
}

// TestNormalizeRejectsUnknownProfile verifies profile validation.
func TestNormalizeRejectsUnknownProfile(t *testing.T) {
	cfg := validConfig()
	cfg.Profile = "dual"
	_, err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "profile") {
		t.Fatalf("expected profile error, got %v", err)
	}
}

// TestNormalizeControlledNeedsTemperature verifies the controlled profile contract.
func TestNormalizeControlledNeedsTemperature(t *testing.T) {
	cfg := validConfig()
	cfg.Profile = ProfileControlled
	if _, err := Normalize(cfg); err == nil {
		t.Fatalf("expected stochastic_temperature error")
	}
	cfg.StochasticTemperature = 0.8
	if _, err := Normalize(cfg); err != nil {
		t.Fatalf("expected valid controlled config, got %v", err)
	}
}

// TestNormalizeLabelNoiseBounds verifies the noise percentage range.
func TestNormalizeLabelNoiseBounds(t *testing.T) {
	cfg := validConfig()
	cfg.LabelNoisePct = 120
	if _, err := Normalize(cfg); err == nil {
		t.Fatalf("expected label noise error")
	}
}

// TestLoadConfigFile verifies YAML loading with strict fields.
func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waver.yml")
	body := `version: 1
models: ["model-a", "model-b"]
profile: controlled
prompt_style: strict_json
stochastic_temperature: 0.7
invariance:
  enabled: true
  shuffle_count: 2
  normalize_formatting: true
  add_irrelevant_context: false
  seed: 42
label_noise_pct: 0
workers: 2
questions_file: questions.yml
output_dir: ./results
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Models) != 2 || cfg.Models[1] != "model-b" {
		t.Fatalf("unexpected models: %v", cfg.Models)
	}
	if !cfg.Invariance.Enabled || cfg.Invariance.ShuffleCount != 2 || cfg.Invariance.Seed != 42 {
		t.Fatalf("unexpected invariance config: %+v", cfg.Invariance)
	}
}

// TestLoadConfigRejectsUnknownFields verifies strict decoding.
func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waver.yml")
	if err := os.WriteFile(path, []byte("version: 1\nmodels: [m]\nbogus: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
