package config

import (
	"waver/internal/variant"
)

// Evaluation profiles.
const (
	ProfileSingle     = "single"
	ProfileControlled = "controlled"
)

// Prompt styles. Direct and chain-of-thought use the legacy regex parsing
// regime; strict_json uses the strict-schema regime.
const (
	PromptDirect         = "direct"
	PromptChainOfThought = "cot"
	PromptStrictJSON     = "strict_json"
)

// Config is the run configuration loaded from YAML. Immutable per run.
type Config struct {
	Version               int            `yaml:"version"`
	Provider              ProviderConfig `yaml:"provider"`
	Models                []string       `yaml:"models"`
	Profile               string         `yaml:"profile"`
	PromptStyle           string         `yaml:"prompt_style"`
	StochasticTemperature float64        `yaml:"stochastic_temperature"`
	ReasoningHint         string         `yaml:"reasoning_hint"`
	Invariance            variant.Config `yaml:"invariance"`
	LabelNoisePct         float64        `yaml:"label_noise_pct"`
	Workers               int            `yaml:"workers"`
	QuestionsFile         string         `yaml:"questions_file"`
	OutputDir             string         `yaml:"output_dir"`
}

// ProviderConfig selects and configures the inference provider.
type ProviderConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}
