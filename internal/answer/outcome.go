// Package answer extracts a canonical choice letter from raw model output.
// Two mutually exclusive regimes exist: a legacy regex regime for free-text
// prompts and a strict-schema regime that works through an ordered chain of
// parse strategies, short-circuiting on the first match. The chain order is
// part of the contract because the recorded method tags differ.
package answer

import "waver/internal/question"

// Parse method tags recorded on evaluation rows.
const (
	MethodJSON               = "json"
	MethodJSONKeyRegex       = "json_key_regex"
	MethodMarkerRegex        = "marker_regex"
	MethodFallbackLastLetter = "fallback_last_letter"
	MethodLetterToken        = "letter_token"
	MethodFirstChar          = "first_char"
	MethodAnswerMarker       = "answer_marker"
	MethodUnparseable        = "unparseable"
)

// Attempt failure tags recorded while walking the strict chain.
const (
	attemptJSONError            = "json_error"
	attemptJSONInvalidShape     = "json_invalid_shape"
	attemptEmbeddedJSONError    = "embedded_json_error"
	attemptEmbeddedInvalidShape = "embedded_json_invalid_shape"
)

// Outcome is the tagged result of parsing one model output. SchemaCompliant
// is nil under the legacy regime; under the strict regime it reports whether
// a structured parse matched the expected single-key shape exactly.
// Regex and fallback hits are never schema-compliant.
type Outcome struct {
	Letter          string
	Method          string
	SchemaCompliant *bool
	Attempts        []string
}

// Parseable reports whether a canonical letter was recovered.
func (o Outcome) Parseable() bool {
	return o.Letter != question.Unknown && o.Letter != ""
}

func boolPtr(value bool) *bool {
	return &value
}
