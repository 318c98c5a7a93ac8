package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/genai"
)

// Signals that mark a temporarily overloaded service.
const (
	unavailableCode   = 503
	unavailableStatus = "UNAVAILABLE"
)

// Shaper is implemented by errors that expose a structured view of
// themselves, typically the decoded JSON error body of an API response.
type Shaper interface {
	Shape() map[string]any
}

// StatusError is an error carrying an arbitrary structured body. Transports
// that do not go through the genai SDK use it to surface raw API errors.
type StatusError struct {
	Fields map[string]any
}

// NewStatusError wraps fields as an error.
func NewStatusError(fields map[string]any) *StatusError {
	return &StatusError{Fields: fields}
}

func (e *StatusError) Error() string {
	if msg, ok := lookup(e.Fields, "error", "message").(string); ok && msg != "" {
		return fmt.Sprintf("api error: %s", msg)
	}
	if msg, ok := e.Fields["message"].(string); ok && msg != "" {
		return fmt.Sprintf("api error: %s", msg)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return "api error: " + strings.Join(parts, " ")
}

// Shape returns the error's fields.
func (e *StatusError) Shape() map[string]any {
	return e.Fields
}

// Failure is the classification of one failed attempt.
type Failure struct {
	Retryable bool
	Code      any // the probed status value, nil when none was found
	Err       error
}

// statusProbes are consulted in order; the first one holding a non-zero,
// non-empty value decides the status code.
var statusProbes = [][]string{
	{"status"},
	{"error", "code"},
	{"error", "status"},
	{"response", "status"},
}

// Classify decides whether err is worth retrying. Only a 503 or an
// "UNAVAILABLE" status is retryable; everything else, including errors that
// carry no status at all, is fatal.
func Classify(err error) Failure {
	f := Failure{Err: err}
	if err == nil {
		return f
	}
	shape := errorShape(err)
	if shape == nil {
		return f
	}
	for _, path := range statusProbes {
		if v := lookup(shape, path...); present(v) {
			f.Code = v
			break
		}
	}
	f.Retryable = isUnavailable(f.Code)
	return f
}

// errorShape returns the structured view of err, or nil when it has none.
func errorShape(err error) map[string]any {
	var shaper Shaper
	if errors.As(err, &shaper) {
		return shaper.Shape()
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErrorShape(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrorShape(*apiErrPtr)
	}
	return nil
}

func apiErrorShape(e genai.APIError) map[string]any {
	return map[string]any{
		"status": e.Code,
		"error": map[string]any{
			"code":    e.Code,
			"status":  e.Status,
			"message": e.Message,
		},
	}
}

func lookup(m map[string]any, path ...string) any {
	var cur any = m
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

// present reports whether v holds a usable status: zero numbers, empty
// strings and false are treated as missing.
func present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	}
	if f, ok := number(v); ok {
		return f != 0
	}
	return true
}

func isUnavailable(v any) bool {
	if s, ok := v.(string); ok {
		return s == unavailableStatus
	}
	f, ok := number(v)
	return ok && f == unavailableCode
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
