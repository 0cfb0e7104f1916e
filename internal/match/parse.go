package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrNoJSON is returned when the model output contains no brace-delimited
// object at all.
var ErrNoJSON = errors.New("no JSON object found in model output")

// DecodeError reports a brace-delimited span that is not valid JSON. Snippet
// carries the offending text so prompt drift can be diagnosed.
type DecodeError struct {
	Snippet string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding model JSON: %v (offending text: %s)", e.Err, e.Snippet)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Parse extracts the JSON object embedded in free-form model output. Models
// routinely wrap the object in prose or code fences, so the fences are
// stripped first and the object is taken as the span from the first "{" to
// the last "}" of the cleaned text, newlines included.
//
// Known limitation: with two separate top-level objects, or stray braces in
// surrounding prose, the greedy span swallows everything in between. The
// assumption is that the model emits exactly one object per response.
func Parse(raw string) (*Result, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end < start {
		return nil, ErrNoJSON
	}
	span := cleaned[start : end+1]

	var fields map[string]any
	if err := json.Unmarshal([]byte(span), &fields); err != nil {
		return nil, &DecodeError{Snippet: span, Err: err}
	}

	result := &Result{Raw: span}
	decodeKnownFields(fields, result)

	return result, nil
}

// decodeKnownFields fills the typed view of the object. The object itself is
// the contract; the typed view is best-effort, so a key with an unexpected
// shape leaves its field zero-valued instead of failing the parse.
func decodeKnownFields(fields map[string]any, result *Result) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return
	}
	_ = decoder.Decode(fields)
}
