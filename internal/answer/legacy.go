package answer

import (
	"regexp"
	"strings"

	"waver/internal/question"
)

var (
	standaloneLetter = regexp.MustCompile(`\b([A-J])\b`)
	answerIsMarker   = regexp.MustCompile(`(?i)answer\s+is:?\s*[*_"'` + "`" + `]*\s*([A-J])\b`)
)

// ParseDirect extracts a letter from a direct-answer response: the first
// standalone A-J token within the question's range, falling back to the
// first character of the trimmed output.
func ParseDirect(output string, numChoices int) Outcome {
	for _, match := range standaloneLetter.FindAllStringSubmatch(output, -1) {
		if question.ValidLetter(match[1], numChoices) {
			return Outcome{Letter: match[1], Method: MethodLetterToken}
		}
	}
	trimmed := strings.TrimSpace(output)
	if trimmed != "" {
		first := strings.ToUpper(trimmed[:1])
		if question.ValidLetter(first, numChoices) {
			return Outcome{Letter: first, Method: MethodFirstChar}
		}
	}
	return Outcome{Letter: question.Unknown, Method: MethodUnparseable}
}

// ParseChainOfThought extracts a letter from a chain-of-thought response by
// locating an "answer is: LETTER" marker, tolerating emphasis characters.
func ParseChainOfThought(output string, numChoices int) Outcome {
	if match := answerIsMarker.FindStringSubmatch(output); match != nil {
		letter := strings.ToUpper(match[1])
		if question.ValidLetter(letter, numChoices) {
			return Outcome{Letter: letter, Method: MethodAnswerMarker}
		}
	}
	return Outcome{Letter: question.Unknown, Method: MethodUnparseable}
}
