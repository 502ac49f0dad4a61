// Package stability holds the evaluation row model, flip detection against
// each group's baseline, and the roll-up into accuracy and flip-rate
// statistics. Rows are never mutated after construction; derived fields are
// attached on copies in a second pass.
package stability

import (
	"waver/internal/variant"
)

// Arm identifies one parallel evaluation condition for the same variants.
type Arm string

const (
	ArmSingle        Arm = "single"
	ArmDeterministic Arm = "deterministic"
	ArmStochastic    Arm = "stochastic"
)

// Row is one evaluation outcome for a (model, question, arm, variant) cell.
// Nullable fields use pointers: PredictedID is nil when the output was
// unparseable, SchemaCompliant is nil outside the strict regime, and Flip is
// nil for baseline rows and whenever either side of the comparison is
// unparseable.
type Row struct {
	Model               string       `json:"model"`
	QuestionID          string       `json:"question_id"`
	Arm                 Arm          `json:"arm"`
	VariantType         variant.Type `json:"variant_type"`
	VariantIndex        int          `json:"variant_index"`
	Permutation         []int        `json:"permutation"`
	RawOutput           string       `json:"raw_output"`
	Answer              string       `json:"answer"`
	ParseMethod         string       `json:"parse_method"`
	SchemaCompliant     *bool        `json:"schema_compliant"`
	PredictedID         *int         `json:"predicted_id"`
	GroundTruthID       int          `json:"ground_truth_id"`
	Correct             bool         `json:"correct"`
	BaselinePredictedID *int         `json:"baseline_predicted_id"`
	Flip                *bool        `json:"flip"`
	TemperatureApplied  bool         `json:"temperature_applied"`
}

// Parseable reports whether a predicted choice id was recovered.
func (r Row) Parseable() bool {
	return r.PredictedID != nil
}

// IsBaseline reports whether the row is its family's index-0 variant.
func (r Row) IsBaseline() bool {
	return r.VariantType == variant.TypeBaseline
}
