package stability

import (
	"waver/internal/variant"
)

// Accuracy is a correct/total tally with its ratio.
type Accuracy struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// FlipRate is a flips/comparisons tally with its ratio.
type FlipRate struct {
	Comparisons int     `json:"comparisons"`
	Flips       int     `json:"flips"`
	FlipRate    float64 `json:"flip_rate"`
}

// StabilitySummary aggregates flip statistics across all comparable rows.
type StabilitySummary struct {
	Comparisons              int                       `json:"comparisons"`
	Flips                    int                       `json:"flips"`
	FlipRate                 float64                   `json:"flip_rate"`
	ByVariantType            map[variant.Type]FlipRate `json:"by_variant_type,omitempty"`
	ByModel                  map[string]FlipRate       `json:"by_model,omitempty"`
	BaselineParseFailureRate float64                   `json:"baseline_parse_failure_rate"`
}

// Summary is the run-level roll-up consumed by the presentation layer.
// Accuracy figures count baseline rows only; flip figures count every row
// with a non-nil flip flag. Map keys serialize sorted, so breakdown order
// never depends on traversal order.
type Summary struct {
	Total     int                 `json:"total"`
	Correct   int                 `json:"correct"`
	Accuracy  float64             `json:"accuracy"`
	ByArm     map[Arm]Accuracy    `json:"by_arm,omitempty"`
	ByModel   map[string]Accuracy `json:"by_model,omitempty"`
	Stability StabilitySummary    `json:"stability"`
}

// Summarize rolls annotated rows up into the run summary. All ratios are 0
// when their denominator is 0.
func Summarize(rows []Row) Summary {
	summary := Summary{
		ByArm:   map[Arm]Accuracy{},
		ByModel: map[string]Accuracy{},
		Stability: StabilitySummary{
			ByVariantType: map[variant.Type]FlipRate{},
			ByModel:       map[string]FlipRate{},
		},
	}

	baselineTotal := 0
	baselineUnparseable := 0
	for _, row := range rows {
		if row.IsBaseline() {
			baselineTotal++
			if !row.Parseable() {
				baselineUnparseable++
			}
			summary.Total++
			armTally := summary.ByArm[row.Arm]
			armTally.Total++
			modelTally := summary.ByModel[row.Model]
			modelTally.Total++
			if row.Correct {
				summary.Correct++
				armTally.Correct++
				modelTally.Correct++
			}
			summary.ByArm[row.Arm] = armTally
			summary.ByModel[row.Model] = modelTally
		}

		if row.Flip != nil {
			summary.Stability.Comparisons++
			typeTally := summary.Stability.ByVariantType[row.VariantType]
			typeTally.Comparisons++
			modelTally := summary.Stability.ByModel[row.Model]
			modelTally.Comparisons++
			if *row.Flip {
				summary.Stability.Flips++
				typeTally.Flips++
				modelTally.Flips++
			}
			summary.Stability.ByVariantType[row.VariantType] = typeTally
			summary.Stability.ByModel[row.Model] = modelTally
		}
	}

	summary.Accuracy = ratio(summary.Correct, summary.Total)
	for arm, tally := range summary.ByArm {
		tally.Accuracy = ratio(tally.Correct, tally.Total)
		summary.ByArm[arm] = tally
	}
	for model, tally := range summary.ByModel {
		tally.Accuracy = ratio(tally.Correct, tally.Total)
		summary.ByModel[model] = tally
	}
	summary.Stability.FlipRate = ratio(summary.Stability.Flips, summary.Stability.Comparisons)
	for variantType, tally := range summary.Stability.ByVariantType {
		tally.FlipRate = ratio(tally.Flips, tally.Comparisons)
		summary.Stability.ByVariantType[variantType] = tally
	}
	for model, tally := range summary.Stability.ByModel {
		tally.FlipRate = ratio(tally.Flips, tally.Comparisons)
		summary.Stability.ByModel[model] = tally
	}
	summary.Stability.BaselineParseFailureRate = ratio(baselineUnparseable, baselineTotal)
	return summary
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
