package variant

import (
	"sort"
	"strings"
	"testing"
)

var fourChoices = []string{"red", "green", "blue", "yellow"}

// TestGenerateBaselineFamily verifies the documented two-shuffle family shape.
func TestGenerateBaselineFamily(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 2, Seed: 42}
	variants := Generate("q1", "Pick a color", fourChoices, cfg)
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(variants))
	}
	expectedTypes := []Type{TypeBaseline, TypeShuffle, TypeShuffle}
	for i, v := range variants {
		if v.Type != expectedTypes[i] {
			t.Fatalf("variant %d: expected type %s, got %s", i, expectedTypes[i], v.Type)
		}
		if v.Index != i {
			t.Fatalf("variant %d: expected index %d, got %d", i, i, v.Index)
		}
	}
	for i, value := range variants[0].Permutation {
		if value != i {
			t.Fatalf("baseline permutation must be identity, got %v", variants[0].Permutation)
		}
	}
}

// TestGenerateDisabledMasterSwitch verifies only the baseline is produced when disabled.
func TestGenerateDisabledMasterSwitch(t *testing.T) {
	cfg := Config{Enabled: false, ShuffleCount: 3, NormalizeFormatting: true, AddIrrelevantContext: true, Seed: 7}
	variants := Generate("q1", "Pick a color", fourChoices, cfg)
	if len(variants) != 1 {
		t.Fatalf("expected baseline only, got %d variants", len(variants))
	}
	if variants[0].Type != TypeBaseline || variants[0].Index != 0 {
		t.Fatalf("unexpected baseline variant: %+v", variants[0])
	}
}

// TestGenerateDeterministicShuffles verifies identical inputs repeat permutations.
func TestGenerateDeterministicShuffles(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 3, Seed: 42}
	first := Generate("q1", "Pick a color", fourChoices, cfg)
	second := Generate("q1", "Pick a color", fourChoices, cfg)
	for i := range first {
		for p := range first[i].Permutation {
			if first[i].Permutation[p] != second[i].Permutation[p] {
				t.Fatalf("variant %d permutation not deterministic: %v vs %v", i, first[i].Permutation, second[i].Permutation)
			}
		}
	}
}

// TestGeneratePermutationsAreBijections verifies every variant permutation covers [0..N-1].
func TestGeneratePermutationsAreBijections(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 5, NormalizeFormatting: true, AddIrrelevantContext: true, Seed: 99}
	variants := Generate("q-permutations", "Question text", fourChoices, cfg)
	for _, v := range variants {
		sorted := append([]int(nil), v.Permutation...)
		sort.Ints(sorted)
		for i, value := range sorted {
			if value != i {
				t.Fatalf("variant %d (%s): permutation %v is not a bijection", v.Index, v.Type, v.Permutation)
			}
		}
	}
}

// TestGenerateShuffleReordersChoices verifies displayed choices follow the permutation.
func TestGenerateShuffleReordersChoices(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 2, Seed: 42}
	variants := Generate("q1", "Pick a color", fourChoices, cfg)
	for _, v := range variants[1:] {
		for position, original := range v.Permutation {
			if v.Choices[position] != fourChoices[original] {
				t.Fatalf("variant %d: choice at %d should be original %d (%q), got %q",
					v.Index, position, original, fourChoices[original], v.Choices[position])
			}
		}
	}
}

// TestGenerateClampsShuffleCount verifies shuffle counts clamp to [0,5].
func TestGenerateClampsShuffleCount(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 12, Seed: 1}
	variants := Generate("q1", "Pick", fourChoices, cfg)
	if len(variants) != 1+MaxShuffleCount {
		t.Fatalf("expected %d variants for clamped count, got %d", 1+MaxShuffleCount, len(variants))
	}
	cfg.ShuffleCount = -3
	variants = Generate("q1", "Pick", fourChoices, cfg)
	if len(variants) != 1 {
		t.Fatalf("expected baseline only for negative count, got %d", len(variants))
	}
}

// TestGenerateSingleChoiceShuffle verifies a one-choice shuffle is an identity no-op.
func TestGenerateSingleChoiceShuffle(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 2, Seed: 42}
	variants := Generate("q1", "Only option", []string{"sole"}, cfg)
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(variants))
	}
	for _, v := range variants {
		if len(v.Permutation) != 1 || v.Permutation[0] != 0 {
			t.Fatalf("single-choice permutation should be identity, got %v", v.Permutation)
		}
	}
}

// TestGenerateNormalizeVariant verifies formatting canonicalization.
func TestGenerateNormalizeVariant(t *testing.T) {
	cfg := Config{Enabled: true, NormalizeFormatting: true, Seed: 1}
	messy := "What  is\t the answer?\n\n\n\nFill in _____ please.\r\n"
	variants := Generate("q1", messy, []string{"  a  choice ", "other"}, cfg)
	if len(variants) != 2 {
		t.Fatalf("expected baseline plus normalize, got %d", len(variants))
	}
	normalized := variants[1]
	if normalized.Type != TypeNormalize {
		t.Fatalf("expected normalize variant, got %s", normalized.Type)
	}
	expected := "What is the answer?\n\nFill in ____ please."
	if normalized.Question != expected {
		t.Fatalf("unexpected normalized question: %q", normalized.Question)
	}
	if normalized.Choices[0] != "a choice" {
		t.Fatalf("choice not normalized: %q", normalized.Choices[0])
	}
}

// TestGenerateIrrelevantVariant verifies the distractor prefix and untouched choices.
func TestGenerateIrrelevantVariant(t *testing.T) {
	cfg := Config{Enabled: true, AddIrrelevantContext: true, Seed: 1}
	variants := Generate("q1", "Pick a color", fourChoices, cfg)
	if len(variants) != 2 {
		t.Fatalf("expected baseline plus irrelevant, got %d", len(variants))
	}
	irrelevant := variants[1]
	if irrelevant.Type != TypeIrrelevant {
		t.Fatalf("expected irrelevant variant, got %s", irrelevant.Type)
	}
	if !strings.HasSuffix(irrelevant.Question, "Pick a color") {
		t.Fatalf("question text should be preserved after the prefix: %q", irrelevant.Question)
	}
	if irrelevant.Question == "Pick a color" {
		t.Fatalf("expected a distractor prefix")
	}
	for i, choice := range irrelevant.Choices {
		if choice != fourChoices[i] {
			t.Fatalf("choices must be unchanged, got %v", irrelevant.Choices)
		}
	}
}

// TestGenerateFixedVariantOrder verifies shuffles come before normalize and irrelevant.
func TestGenerateFixedVariantOrder(t *testing.T) {
	cfg := Config{Enabled: true, ShuffleCount: 1, NormalizeFormatting: true, AddIrrelevantContext: true, Seed: 5}
	variants := Generate("q1", "Pick", fourChoices, cfg)
	expected := []Type{TypeBaseline, TypeShuffle, TypeNormalize, TypeIrrelevant}
	if len(variants) != len(expected) {
		t.Fatalf("expected %d variants, got %d", len(expected), len(variants))
	}
	for i, v := range variants {
		if v.Type != expected[i] || v.Index != i {
			t.Fatalf("position %d: expected %s/%d, got %s/%d", i, expected[i], i, v.Type, v.Index)
		}
	}
}
