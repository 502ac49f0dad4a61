package stability

// groupKey identifies a flip-comparison group. Rows group by model and
// question; arms compare against their own baseline so temperature
// differences never register as perturbation flips.
type groupKey struct {
	model      string
	questionID string
	arm        Arm
}

// AnnotateFlips returns a copy of rows with baseline predicted ids and flip
// flags attached. For every non-baseline row, flip is nil when either the
// baseline's or the row's predicted id is missing, and otherwise reports
// whether the two differ. Baseline rows always carry a nil flip.
//
// Callers must pass complete groups: every variant and arm row for a
// (model, question) pair has to be present before flips are computed.
func AnnotateFlips(rows []Row) []Row {
	baselines := make(map[groupKey]*int, len(rows))
	for _, row := range rows {
		if row.IsBaseline() {
			baselines[groupKey{row.Model, row.QuestionID, row.Arm}] = row.PredictedID
		}
	}

	annotated := make([]Row, len(rows))
	for i, row := range rows {
		copied := row
		baseline := baselines[groupKey{row.Model, row.QuestionID, row.Arm}]
		copied.BaselinePredictedID = baseline
		if !copied.IsBaseline() && baseline != nil && copied.PredictedID != nil {
			flip := *copied.PredictedID != *baseline
			copied.Flip = &flip
		}
		annotated[i] = copied
	}
	return annotated
}
