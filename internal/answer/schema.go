package answer

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// finalAnswerKey is the single recognized key of a strict-schema response.
const finalAnswerKey = "final_answer"

// finalAnswerSchema describes the exact expected shape: an object with
// final_answer as its only key, holding one choice letter.
const finalAnswerSchema = `{
  "type": "object",
  "properties": {
    "final_answer": { "type": "string", "pattern": "^[A-J]$" }
  },
  "required": ["final_answer"],
  "additionalProperties": false
}`

var compiledFinalAnswerSchema = jsonschema.MustCompileString("final_answer.json", finalAnswerSchema)

// schemaCompliant reports whether a parsed payload matches the single-key
// shape exactly. Extra keys, wrong types, and out-of-alphabet letters all
// fail compliance even when a letter was still recoverable.
func schemaCompliant(parsed jsonValue) bool {
	return compiledFinalAnswerSchema.Validate(parsed.toInterface()) == nil
}
