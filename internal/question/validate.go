package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question dataset.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
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
	return fmt.Sprintf("question dataset validation failed: %s", strings.Join(parts, "; "))
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

// NormalizeSpec trims whitespace and validates a question dataset.
func NormalizeSpec(spec Spec) (Spec, error) {
	collector := &issueCollector{}
	if spec.Version == 0 {
		collector.add("version", "is required")
	} else if spec.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", spec.Version))
	}
	if len(spec.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	seenIDs := map[string]struct{}{}
	for i, item := range spec.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			collector.add(prefix+".id", "is required")
		} else {
			if _, exists := seenIDs[item.ID]; exists {
				collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", item.ID))
			} else {
				seenIDs[item.ID] = struct{}{}
			}
		}

		item.Prompt = strings.TrimSpace(item.Prompt)
		if item.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}

		item.Choices = trimStringSlice(item.Choices)
		if len(item.Choices) == 0 {
			collector.add(prefix+".choices", "must include at least one entry")
		} else if len(item.Choices) > MaxChoices {
			collector.add(prefix+".choices", fmt.Sprintf("must include at most %d entries", MaxChoices))
		} else {
			for choiceIndex, choice := range item.Choices {
				if choice == "" {
					collector.add(fmt.Sprintf("%s.choices[%d]", prefix, choiceIndex), "is required")
				}
			}
		}

		item.Correct = strings.ToUpper(strings.TrimSpace(item.Correct))
		if item.Correct == "" {
			collector.add(prefix+".correct", "is required")
		} else if _, err := GroundTruthIndex(item); err != nil {
			collector.add(prefix+".correct", fmt.Sprintf("letter %q does not map to a choice", item.Correct))
		}

		item.Topic = strings.TrimSpace(item.Topic)
		item.Subfield = strings.TrimSpace(item.Subfield)
		item.Difficulty = strings.TrimSpace(item.Difficulty)
		spec.Questions[i] = item
	}

	if err := collector.result(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func trimStringSlice(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		trimmed = append(trimmed, strings.TrimSpace(value))
	}
	return trimmed
}
