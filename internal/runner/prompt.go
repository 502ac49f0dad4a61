package runner

import (
	"strings"

	"waver/internal/config"
	"waver/internal/question"
	"waver/internal/variant"
)

// Per-style system instructions.
const (
	directInstructions = "Answer the multiple-choice question. Respond with only the letter of your chosen answer."
	cotInstructions    = "Answer the multiple-choice question. Think step by step, then state your conclusion as \"The answer is: <letter>\"."
	strictInstructions = "Answer the multiple-choice question. Respond with a single JSON object of the form {\"final_answer\":\"<letter>\"} and nothing else."
)

// buildPrompt renders the system instructions and user message for one
// variant presentation.
func buildPrompt(v variant.Variant, style string) (string, string) {
	var builder strings.Builder
	builder.WriteString(v.Question)
	builder.WriteString("\n\nChoices:\n")
	for index, choice := range v.Choices {
		letter, _ := question.LetterForIndex(index)
		builder.WriteString(letter)
		builder.WriteString(". ")
		builder.WriteString(choice)
		builder.WriteString("\n")
	}
	return instructionsFor(style), builder.String()
}

func instructionsFor(style string) string {
	switch style {
	case config.PromptChainOfThought:
		return cotInstructions
	case config.PromptStrictJSON:
		return strictInstructions
	default:
		return directInstructions
	}
}
