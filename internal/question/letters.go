package question

import (
	"fmt"
	"strings"
)

// MaxChoices caps the number of answer choices; letters run A through J.
const MaxChoices = 10

// Unknown is the canonical answer recorded when no letter could be parsed.
const Unknown = "Unknown"

const letterAlphabet = "ABCDEFGHIJ"

// LetterForIndex returns the choice letter for a zero-based index.
func LetterForIndex(index int) (string, bool) {
	if index < 0 || index >= MaxChoices {
		return "", false
	}
	return string(letterAlphabet[index]), true
}

// IndexForLetter returns the zero-based index for a choice letter. The match
// is case-insensitive and rejects anything outside A-J.
func IndexForLetter(letter string) (int, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(letter))
	if len(trimmed) != 1 {
		return 0, false
	}
	index := strings.IndexByte(letterAlphabet, trimmed[0])
	if index == -1 {
		return 0, false
	}
	return index, true
}

// ValidLetter reports whether a letter maps to an index within a question's
// choice range.
func ValidLetter(letter string, numChoices int) bool {
	index, ok := IndexForLetter(letter)
	if !ok {
		return false
	}
	return index < numChoices
}

// GroundTruthIndex resolves a question's correct letter to a choice index.
// An out-of-range letter is a configuration error for that question.
func GroundTruthIndex(item Question) (int, error) {
	index, ok := IndexForLetter(item.Correct)
	if !ok {
		return 0, fmt.Errorf("question %q: invalid ground-truth letter %q", item.ID, item.Correct)
	}
	if index >= len(item.Choices) {
		return 0, fmt.Errorf("question %q: ground-truth letter %q exceeds %d choices", item.ID, item.Correct, len(item.Choices))
	}
	return index, nil
}
