package answer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonKind identifies the concrete type stored in a jsonValue.
type jsonKind int

const (
	jsonNull jsonKind = iota
	jsonString
	jsonNumber
	jsonBool
	jsonObject
	jsonArray
)

// jsonValue represents an arbitrary JSON value without empty interfaces, so
// the strict chain can inspect the parsed shape directly.
type jsonValue struct {
	Kind   jsonKind
	String string
	Number float64
	Bool   bool
	Object map[string]jsonValue
	Array  []jsonValue
}

// UnmarshalJSON decodes a JSON document into the typed representation.
func (v *jsonValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty json value")
	}
	switch trimmed[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v.Kind = jsonObject
		v.Object = make(map[string]jsonValue, len(raw))
		for key, value := range raw {
			var child jsonValue
			if err := json.Unmarshal(value, &child); err != nil {
				return err
			}
			v.Object[key] = child
		}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		v.Kind = jsonArray
		v.Array = make([]jsonValue, 0, len(raw))
		for _, value := range raw {
			var child jsonValue
			if err := json.Unmarshal(value, &child); err != nil {
				return err
			}
			v.Array = append(v.Array, child)
		}
		return nil
	case '"':
		v.Kind = jsonString
		return json.Unmarshal(trimmed, &v.String)
	case 't', 'f':
		v.Kind = jsonBool
		return json.Unmarshal(trimmed, &v.Bool)
	case 'n':
		if string(trimmed) != "null" {
			return fmt.Errorf("invalid json literal")
		}
		v.Kind = jsonNull
		return nil
	default:
		v.Kind = jsonNumber
		return json.Unmarshal(trimmed, &v.Number)
	}
}

// stringField returns the string stored under key when the value is an
// object holding a string there.
func (v jsonValue) stringField(key string) (string, bool) {
	if v.Kind != jsonObject {
		return "", false
	}
	child, ok := v.Object[key]
	if !ok || child.Kind != jsonString {
		return "", false
	}
	return child.String, true
}

// toInterface converts the typed value into standard Go JSON types for
// schema validation.
func (v jsonValue) toInterface() interface{} {
	switch v.Kind {
	case jsonObject:
		out := make(map[string]interface{}, len(v.Object))
		for key, value := range v.Object {
			out[key] = value.toInterface()
		}
		return out
	case jsonArray:
		out := make([]interface{}, 0, len(v.Array))
		for _, value := range v.Array {
			out = append(out, value.toInterface())
		}
		return out
	case jsonString:
		return v.String
	case jsonNumber:
		return v.Number
	case jsonBool:
		return v.Bool
	default:
		return nil
	}
}
