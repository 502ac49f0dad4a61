package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a run configuration.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more configuration issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Normalize applies defaults, trims fields, and validates the configuration.
func Normalize(cfg Config) (Config, error) {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	cfg.Provider.Name = strings.TrimSpace(cfg.Provider.Name)
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = "openrouter"
	}
	cfg.Provider.BaseURL = strings.TrimSpace(cfg.Provider.BaseURL)

	models := make([]string, 0, len(cfg.Models))
	for i, model := range cfg.Models {
		model = strings.TrimSpace(model)
		if model == "" {
			collector.add(fmt.Sprintf("models[%d]", i), "is required")
			continue
		}
		models = append(models, model)
	}
	cfg.Models = models
	if len(cfg.Models) == 0 {
		collector.add("models", "must include at least one entry")
	}

	cfg.Profile = strings.TrimSpace(cfg.Profile)
	if cfg.Profile == "" {
		cfg.Profile = ProfileSingle
	}
	switch cfg.Profile {
	case ProfileSingle, ProfileControlled:
	default:
		collector.add("profile", fmt.Sprintf("unknown profile %q (expected %s|%s)", cfg.Profile, ProfileSingle, ProfileControlled))
	}

	cfg.PromptStyle = strings.TrimSpace(cfg.PromptStyle)
	if cfg.PromptStyle == "" {
		cfg.PromptStyle = PromptDirect
	}
	switch cfg.PromptStyle {
	case PromptDirect, PromptChainOfThought, PromptStrictJSON:
	default:
		collector.add("prompt_style", fmt.Sprintf("unknown prompt style %q (expected %s|%s|%s)",
			cfg.PromptStyle, PromptDirect, PromptChainOfThought, PromptStrictJSON))
	}

	if cfg.Profile == ProfileControlled {
		if cfg.StochasticTemperature <= 0 || cfg.StochasticTemperature > 2 {
			collector.add("stochastic_temperature", "must be in (0, 2] for the controlled profile")
		}
	}

	if cfg.LabelNoisePct < 0 || cfg.LabelNoisePct > 100 {
		collector.add("label_noise_pct", "must be in [0, 100]")
	}

	if cfg.Workers < 0 {
		collector.add("workers", "must not be negative")
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}

	cfg.QuestionsFile = strings.TrimSpace(cfg.QuestionsFile)
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./out"
	}

	if err := collector.result(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
