// Package feedback extracts the self-critique string from raw model output.
//
// The critique stage asks for a single line of pure JSON of the shape
// {"feedback":"..."}, but in practice the model wraps it in markdown fences,
// surrounds it with prose, or leaves raw control characters inside string
// values. Extract cleans the reply before parsing.
package feedback

import (
	"encoding/json"
	"regexp"
	"strings"
)

// MalformedOutputError reports that no parseable JSON object could be found
// in the model's reply.
type MalformedOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return "malformed model output: " + e.Reason + ": " + e.Err.Error()
	}
	return "malformed model output: " + e.Reason
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// fenceRe matches markdown code-fence markers, with or without a json tag.
var fenceRe = regexp.MustCompile("```json|```")

// spanRe captures the widest brace-delimited span, from the first '{' to the
// last '}'. The reply is assumed to contain exactly one JSON object; prose
// before and after it is tolerated. Nested objects in surrounding prose
// would widen the span and fail the parse below.
var spanRe = regexp.MustCompile(`(?s)\{.*\}`)

// ctrlRe matches raw newline, carriage-return and tab bytes the model
// sometimes emits unescaped inside JSON string values.
var ctrlRe = regexp.MustCompile("[\n\r\t]")

// Extract returns the value of the "feedback" field of the JSON object
// embedded in raw.
//
// An object without a "feedback" key yields an empty string rather than an
// error, so a sloppy critique degrades softly instead of aborting the whole
// refine cycle.
func Extract(raw string) (string, error) {
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))

	span := spanRe.FindString(cleaned)
	if span == "" {
		return "", &MalformedOutputError{Reason: "no JSON object in model reply"}
	}

	span = ctrlRe.ReplaceAllString(span, " ")

	var parsed struct {
		Feedback string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(span), &parsed); err != nil {
		return "", &MalformedOutputError{Reason: "model reply is not valid JSON", Err: err}
	}

	return parsed.Feedback, nil
}
