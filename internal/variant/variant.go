// Package variant builds the ordered family of question presentations used
// for invariance testing. Every family starts with the unperturbed baseline
// at index 0; perturbed variants follow in a fixed order so variant indices
// are reproducible across runs.
package variant

import (
	"waver/internal/rng"
)

// Type identifies how a variant perturbs the baseline presentation.
type Type string

const (
	TypeBaseline   Type = "baseline"
	TypeShuffle    Type = "shuffle"
	TypeNormalize  Type = "normalize"
	TypeIrrelevant Type = "irrelevant"
)

// MaxShuffleCount caps the number of shuffle variants per question.
const MaxShuffleCount = 5

// Config controls which perturbations are generated. Enabled is a master
// switch: when false only the baseline is produced regardless of the other
// fields.
type Config struct {
	Enabled              bool  `json:"enabled" yaml:"enabled"`
	ShuffleCount         int   `json:"shuffle_count" yaml:"shuffle_count"`
	NormalizeFormatting  bool  `json:"normalize_formatting" yaml:"normalize_formatting"`
	AddIrrelevantContext bool  `json:"add_irrelevant_context" yaml:"add_irrelevant_context"`
	Seed                 int64 `json:"seed" yaml:"seed"`
}

// Variant is one presentation of a question. Permutation maps each displayed
// choice position to the original choice index and is always a bijection
// over [0, len(Choices)).
type Variant struct {
	Type        Type
	Index       int
	Question    string
	Choices     []string
	Permutation []int
}

// distractor is the fixed content-neutral paragraph prepended by the
// irrelevant-context variant.
const distractor = "Note: The following is general context that may or may not be relevant. " +
	"Standardized assessments are administered under a variety of conditions, and examinees " +
	"are generally advised to read each item carefully before responding. Please answer the " +
	"question below.\n\n"

// Generate returns the ordered variant family for a question. The question
// text is taken as-is; any adversarial prefixing happens upstream.
//
// A shuffle of a single choice is a no-op identity permutation rather than
// an error; this mirrors how shuffle counts are clamped instead of rejected.
func Generate(questionID, questionText string, choices []string, cfg Config) []Variant {
	variants := []Variant{{
		Type:        TypeBaseline,
		Index:       0,
		Question:    questionText,
		Choices:     copyChoices(choices),
		Permutation: rng.IdentityPermutation(len(choices)),
	}}
	if !cfg.Enabled {
		return variants
	}

	shuffleCount := clampShuffleCount(cfg.ShuffleCount)
	questionHash := rng.HashString(questionID)
	for k := 1; k <= shuffleCount; k++ {
		seed := rng.CombineSeed(cfg.Seed, questionHash, int64(k))
		permutation := rng.ShufflePermutation(len(choices), rng.NewStream(seed))
		shuffled := make([]string, len(choices))
		for position, original := range permutation {
			shuffled[position] = choices[original]
		}
		variants = append(variants, Variant{
			Type:        TypeShuffle,
			Index:       len(variants),
			Question:    questionText,
			Choices:     shuffled,
			Permutation: permutation,
		})
	}

	if cfg.NormalizeFormatting {
		normalized := make([]string, len(choices))
		for i, choice := range choices {
			normalized[i] = NormalizeText(choice)
		}
		variants = append(variants, Variant{
			Type:        TypeNormalize,
			Index:       len(variants),
			Question:    NormalizeText(questionText),
			Choices:     normalized,
			Permutation: rng.IdentityPermutation(len(choices)),
		})
	}

	if cfg.AddIrrelevantContext {
		variants = append(variants, Variant{
			Type:        TypeIrrelevant,
			Index:       len(variants),
			Question:    distractor + questionText,
			Choices:     copyChoices(choices),
			Permutation: rng.IdentityPermutation(len(choices)),
		})
	}

	return variants
}

func clampShuffleCount(count int) int {
	if count < 0 {
		return 0
	}
	if count > MaxShuffleCount {
		return MaxShuffleCount
	}
	return count
}

func copyChoices(choices []string) []string {
	return append([]string(nil), choices...)
}
