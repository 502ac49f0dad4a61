package answer

import (
	"encoding/json"
	"regexp"
	"strings"

	"waver/internal/question"
)

var (
	finalAnswerKeyRegex    = regexp.MustCompile(`"final_answer"\s*:\s*"([A-Ja-j])"`)
	finalAnswerMarkerRegex = regexp.MustCompile(`(?i)final\s+answer\s*[:\-]?\s*[*_"'` + "`" + `]*\s*([A-J])\b`)
)

// strictStrategy is one best-effort attempt in the strict chain. It returns
// the outcome and whether it matched; on no match it may append failure tags
// to the attempt trail.
type strictStrategy func(output string, numChoices int, attempts []string) (Outcome, []string, bool)

// strictChain is the ordered strategy list; order is observable through the
// recorded method tags and must not change.
var strictChain = []strictStrategy{
	parseWholeJSON,
	parseEmbeddedJSON,
	parseJSONKeyRegex,
	parseMarkerRegex,
	parseLastLetter,
}

// ParseStrict extracts a letter under the strict-schema regime, attempting
// each strategy in order until one yields a valid letter.
func ParseStrict(output string, numChoices int) Outcome {
	attempts := []string(nil)
	for _, strategy := range strictChain {
		outcome, trail, ok := strategy(output, numChoices, attempts)
		attempts = trail
		if ok {
			outcome.Attempts = attempts
			return outcome
		}
	}
	return Outcome{
		Letter:          question.Unknown,
		Method:          MethodUnparseable,
		SchemaCompliant: boolPtr(false),
		Attempts:        attempts,
	}
}

// parseWholeJSON parses the entire trimmed output as a JSON document.
func parseWholeJSON(output string, numChoices int, attempts []string) (Outcome, []string, bool) {
	return parseJSONCandidate(strings.TrimSpace(output), numChoices, attempts, attemptJSONError, attemptJSONInvalidShape)
}

// parseEmbeddedJSON extracts the largest object-like substring (first '{' to
// last '}') and parses that.
func parseEmbeddedJSON(output string, numChoices int, attempts []string) (Outcome, []string, bool) {
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end <= start {
		return Outcome{}, attempts, false
	}
	return parseJSONCandidate(output[start:end+1], numChoices, attempts, attemptEmbeddedJSONError, attemptEmbeddedInvalidShape)
}

// parseJSONCandidate decodes one candidate document and extracts the key.
func parseJSONCandidate(candidate string, numChoices int, attempts []string, errorTag, shapeTag string) (Outcome, []string, bool) {
	var parsed jsonValue
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return Outcome{}, append(attempts, errorTag), false
	}
	letter, ok := parsed.stringField(finalAnswerKey)
	if !ok {
		return Outcome{}, append(attempts, shapeTag), false
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if !question.ValidLetter(letter, numChoices) {
		return Outcome{}, append(attempts, shapeTag), false
	}
	return Outcome{
		Letter:          letter,
		Method:          MethodJSON,
		SchemaCompliant: boolPtr(schemaCompliant(parsed)),
	}, attempts, true
}

// parseJSONKeyRegex recovers the key-value pair from malformed JSON.
func parseJSONKeyRegex(output string, numChoices int, attempts []string) (Outcome, []string, bool) {
	for _, match := range finalAnswerKeyRegex.FindAllStringSubmatch(output, -1) {
		letter := strings.ToUpper(match[1])
		if question.ValidLetter(letter, numChoices) {
			return Outcome{Letter: letter, Method: MethodJSONKeyRegex, SchemaCompliant: boolPtr(false)}, attempts, true
		}
	}
	return Outcome{}, attempts, false
}

// parseMarkerRegex matches "final answer: LETTER" in free text.
func parseMarkerRegex(output string, numChoices int, attempts []string) (Outcome, []string, bool) {
	for _, match := range finalAnswerMarkerRegex.FindAllStringSubmatch(output, -1) {
		letter := strings.ToUpper(match[1])
		if question.ValidLetter(letter, numChoices) {
			return Outcome{Letter: letter, Method: MethodMarkerRegex, SchemaCompliant: boolPtr(false)}, attempts, true
		}
	}
	return Outcome{}, attempts, false
}

// parseLastLetter takes the last standalone valid letter token anywhere.
func parseLastLetter(output string, numChoices int, attempts []string) (Outcome, []string, bool) {
	matches := standaloneLetter.FindAllStringSubmatch(output, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		letter := matches[i][1]
		if question.ValidLetter(letter, numChoices) {
			return Outcome{Letter: letter, Method: MethodFallbackLastLetter, SchemaCompliant: boolPtr(false)}, attempts, true
		}
	}
	return Outcome{}, attempts, false
}
