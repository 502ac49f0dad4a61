package question

// Spec defines the question dataset schema loaded from JSON or YAML.
type Spec struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question represents a single multiple-choice question. Correct is the
// ground-truth choice letter and must map to a valid index within Choices.
type Question struct {
	ID         string   `json:"id" yaml:"id"`
	Prompt     string   `json:"question" yaml:"question"`
	Choices    []string `json:"choices" yaml:"choices"`
	Correct    string   `json:"correct" yaml:"correct"`
	Topic      string   `json:"topic,omitempty" yaml:"topic,omitempty"`
	Subfield   string   `json:"subfield,omitempty" yaml:"subfield,omitempty"`
	Difficulty string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}
